package lsp

import (
	"chaoslab/internal/parser"
	"chaoslab/internal/token"
)

// SemanticToken is one entry before delta encoding. Line and StartChar are
// 0-based; TokenType indexes SemanticTokenTypes and TokenModifiers is a
// bitmask over SemanticTokenModifiers.
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int
	TokenModifiers int
}

// collectSemanticTokens classifies every lexeme straight from the scanner, so
// highlighting still works for documents that fail to parse.
func collectSemanticTokens(source string) []SemanticToken {
	var tokens []SemanticToken

	scanner := parser.NewScanner(source)
	var previous token.Token
	for tok := scanner.NextToken(); tok.Kind != token.EOF; tok = scanner.NextToken() {
		tokenType, ok := classify(tok.Kind)
		if ok {
			modifiers := 0
			if tok.Kind == token.IDENTIFIER && previous.Kind == token.INT {
				modifiers |= modifierMask("declaration")
			}
			if tok.Kind == token.NUMBER {
				modifiers |= modifierMask("readonly")
			}
			tokens = append(tokens, SemanticToken{
				Line:           uint32(tok.Line - 1),
				StartChar:      uint32(tok.Column - 1),
				Length:         uint32(len(tok.Text)),
				TokenType:      indexOf(tokenType, SemanticTokenTypes),
				TokenModifiers: modifiers,
			})
		}
		previous = tok
	}

	return tokens
}

func classify(kind token.Kind) (string, bool) {
	switch {
	case kind.IsKeyword():
		return "keyword", true
	case kind == token.IDENTIFIER:
		return "variable", true
	case kind == token.NUMBER:
		return "number", true
	case kind.IsOperator(), kind == token.ASSIGN:
		return "operator", true
	default:
		return "", false
	}
}

// encodeSemanticTokens produces the LSP wire format: five integers per token,
// with line and start relative to the previous token.
func encodeSemanticTokens(tokens []SemanticToken) []uint32 {
	data := make([]uint32, 0, len(tokens)*5)
	var prevLine, prevStart uint32

	for _, tok := range tokens {
		deltaLine := tok.Line - prevLine
		deltaStart := tok.StartChar
		if deltaLine == 0 {
			deltaStart = tok.StartChar - prevStart
		}

		data = append(data, deltaLine, deltaStart, tok.Length, uint32(tok.TokenType), uint32(tok.TokenModifiers))

		prevLine = tok.Line
		prevStart = tok.StartChar
	}

	return data
}

func modifierMask(name string) int {
	return 1 << indexOf(name, SemanticTokenModifiers)
}

// indexOf returns the index of target in list, or 0 if absent
func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return 0
}
