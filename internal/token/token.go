// Package token SPDX-License-Identifier: Apache-2.0
package token

import "fmt"

type Kind int

const (
	EOF Kind = iota

	// Keywords
	INT
	RETURN
	MAIN

	// Identifiers + literals
	IDENTIFIER
	NUMBER

	// Operators
	ASSIGN
	PLUS
	MINUS
	STAR
	SLASH

	// Delimiters
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	SEMICOLON

	// ILLEGAL marks a character the lexer does not recognize.
	ILLEGAL
)

// EOFText is the text carried by every end-of-input token.
const EOFText = "EOF"

var kindNames = [...]string{
	EOF:        "EOF",
	INT:        "INT",
	RETURN:     "RETURN",
	MAIN:       "MAIN",
	IDENTIFIER: "IDENTIFIER",
	NUMBER:     "NUMBER",
	ASSIGN:     "ASSIGN",
	PLUS:       "PLUS",
	MINUS:      "MINUS",
	STAR:       "STAR",
	SLASH:      "SLASH",
	LPAREN:     "LPAREN",
	RPAREN:     "RPAREN",
	LBRACE:     "LBRACE",
	RBRACE:     "RBRACE",
	SEMICOLON:  "SEMICOLON",
	ILLEGAL:    "UNKNOWN",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// IsOperator reports whether k is one of the four binary operators.
func (k Kind) IsOperator() bool {
	return k == PLUS || k == MINUS || k == STAR || k == SLASH
}

// IsTerm reports whether k can stand as an operand: an identifier or a numeral.
func (k Kind) IsTerm() bool {
	return k == IDENTIFIER || k == NUMBER
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool {
	return k == INT || k == RETURN || k == MAIN
}

type Position struct {
	Line   int // 1-based
	Column int // 1-based
	Offset int // 0-based absolute index in input
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Token struct {
	Kind   Kind
	Text   string
	Line   int
	Column int
	Offset int
}

func (t Token) Position() Position {
	return Position{Line: t.Line, Column: t.Column, Offset: t.Offset}
}

func (t Token) String() string {
	if t.Kind == EOF {
		return "<EOF>"
	}
	return fmt.Sprintf("<%s %q>", t.Kind, t.Text)
}
