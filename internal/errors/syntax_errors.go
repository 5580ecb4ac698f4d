package errors

import (
	"fmt"
	"strings"

	"chaoslab/internal/token"
)

// UnexpectedToken reports an expect mismatch: the parser required one token kind and saw another.
func UnexpectedToken(expected token.Kind, actual token.Token) CompilerError {
	builder := NewError(ErrorUnexpectedToken,
		fmt.Sprintf("expected %s, got %s", expected, actual.Kind), actual.Position()).
		WithLength(max(1, len(actual.Text)))

	if spelling, ok := punctuation[expected]; ok {
		builder = builder.WithSuggestion(fmt.Sprintf("insert '%s' here", spelling))
	}

	return builder.Build()
}

// UnrecognizedCharacter reports a character the lexer cannot classify
func UnrecognizedCharacter(tok token.Token) CompilerError {
	return NewError(ErrorUnrecognizedCharacter,
		fmt.Sprintf("unrecognized character %q", tok.Text), tok.Position()).
		WithLength(len(tok.Text)).
		WithHelp("the language accepts identifiers, decimal numbers and = + - * / ( ) { } ;").
		Build()
}

// UnsupportedExpression reports an initializer that is neither `term` nor `term op term`.
func UnsupportedExpression(terms []token.Token, pos token.Position) CompilerError {
	texts := make([]string, len(terms))
	for i, t := range terms {
		texts[i] = t.Text
	}

	length := 1
	if n := len(terms); n > 0 {
		last := terms[n-1]
		length = last.Offset + len(last.Text) - terms[0].Offset
	}

	builder := NewError(ErrorUnsupportedExpression,
		fmt.Sprintf("unsupported expression '%s'", strings.Join(texts, " ")), pos).
		WithLength(length).
		WithNote("an initializer is a single term or exactly one binary operation")

	if len(terms) > 3 {
		builder = builder.WithSuggestion("split the expression into several declarations")
	}

	return builder.Build()
}

// UnexpectedEOF reports input that ends before a statement is complete
func UnexpectedEOF(expected string, pos token.Position) CompilerError {
	return NewError(ErrorUnexpectedEOF,
		fmt.Sprintf("unexpected end of input, expected %s", expected), pos).
		WithHelp("every declaration and return must end with ';'").
		Build()
}

// IgnoredToken warns about a token that the parser skipped at statement level
func IgnoredToken(tok token.Token) CompilerError {
	builder := NewWarning(WarningIgnoredToken,
		fmt.Sprintf("'%s' does not start a statement and is ignored", tok.Text), tok.Position()).
		WithLength(max(1, len(tok.Text)))

	if tok.Kind == token.IDENTIFIER {
		if similar := SimilarNames(tok.Text, token.Keywords()); len(similar) > 0 {
			builder = builder.WithSuggestion(fmt.Sprintf("did you mean '%s'?", similar[0]))
		}
	}

	return builder.Build()
}

var punctuation = map[token.Kind]string{
	token.ASSIGN:    "=",
	token.SEMICOLON: ";",
	token.LPAREN:    "(",
	token.RPAREN:    ")",
	token.LBRACE:    "{",
}

// SimilarNames returns the candidates within edit distance 2 of target
func SimilarNames(target string, candidates []string) []string {
	var similar []string

	for _, candidate := range candidates {
		if candidate != target && levenshteinDistance(target, candidate) <= 2 && len(candidate) > 2 {
			similar = append(similar, candidate)
		}
	}

	return similar
}

// Simple Levenshtein distance implementation for finding similar names
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
	}

	for i := 0; i <= len(a); i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len(b); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(a)][len(b)]
}
