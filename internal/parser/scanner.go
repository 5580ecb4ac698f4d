package parser

import (
	"chaoslab/internal/token"
)

// Scanner hands out one token per NextToken call. Nothing is buffered beyond
// the cursor, so the parser pulls tokens only as it needs them.
type Scanner struct {
	source      string
	start       int
	current     int
	line        int
	column      int
	startLine   int
	startColumn int
}

func NewScanner(source string) *Scanner {
	return &Scanner{
		source: source,
		line:   1,
		column: 1,
	}
}

// NextToken skips whitespace and returns the next token. At end of input it
// keeps returning EOF tokens.
func (s *Scanner) NextToken() token.Token {
	s.skipWhitespace()

	s.start = s.current
	s.startLine = s.line
	s.startColumn = s.column

	if s.isAtEnd() {
		return token.Token{Kind: token.EOF, Text: token.EOFText, Line: s.line, Column: s.column, Offset: s.current}
	}

	c := s.advance()
	switch c {
	case '=':
		return s.makeToken(token.ASSIGN)
	case '+':
		return s.makeToken(token.PLUS)
	case '-':
		return s.makeToken(token.MINUS)
	case '*':
		return s.makeToken(token.STAR)
	case '/':
		return s.makeToken(token.SLASH)
	case '(':
		return s.makeToken(token.LPAREN)
	case ')':
		return s.makeToken(token.RPAREN)
	case '{':
		return s.makeToken(token.LBRACE)
	case '}':
		return s.makeToken(token.RBRACE)
	case ';':
		return s.makeToken(token.SEMICOLON)
	}

	switch {
	case isDigit(c):
		return s.scanNumber()
	case isAlpha(c):
		return s.scanIdentifier()
	default:
		return s.makeToken(token.ILLEGAL)
	}
}

// Tokens drains the scanner, returning every remaining token including the final EOF.
func (s *Scanner) Tokens() []token.Token {
	var tokens []token.Token
	for {
		tok := s.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens
		}
	}
}

func (s *Scanner) skipWhitespace() {
	for !s.isAtEnd() {
		switch s.peek() {
		case ' ', '\r', '\t', '\n', '\v', '\f':
			s.advance()
		default:
			return
		}
	}
}

func (s *Scanner) advance() byte {
	c := s.source[s.current]
	s.current++
	if c == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
	return c
}

func (s *Scanner) peek() byte {
	if s.isAtEnd() {
		return 0
	}
	return s.source[s.current]
}

func (s *Scanner) makeToken(kind token.Kind) token.Token {
	return token.Token{
		Kind:   kind,
		Text:   s.source[s.start:s.current],
		Line:   s.startLine,
		Column: s.startColumn,
		Offset: s.start,
	}
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

// Helper functions.

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isAlpha(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c == '_'
}

func (s *Scanner) scanIdentifier() token.Token {
	for isAlpha(s.peek()) || isDigit(s.peek()) {
		s.advance()
	}
	return s.makeToken(token.LookupIdent(s.source[s.start:s.current]))
}

func (s *Scanner) scanNumber() token.Token {
	for isDigit(s.peek()) {
		s.advance()
	}
	return s.makeToken(token.NUMBER)
}
