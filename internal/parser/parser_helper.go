package parser

import (
	"fmt"

	"chaoslab/internal/errors"
	"chaoslab/internal/token"
)

// advance pulls the next token. An unrecognized character is rejected the
// moment it is pulled.
func (p *Parser) advance() (token.Token, error) {
	p.previous = p.current
	p.current = p.scanner.NextToken()
	if p.current.Kind == token.ILLEGAL {
		return p.previous, newSyntaxError(token.ILLEGAL, p.current, errors.UnrecognizedCharacter(p.current))
	}
	return p.previous, nil
}

func (p *Parser) check(kind token.Kind) bool {
	return p.current.Kind == kind
}

// consume is the parser's expect: the current token must have the given kind.
func (p *Parser) consume(kind token.Kind) (token.Token, error) {
	if p.check(kind) {
		return p.advance()
	}
	return token.Token{}, p.errorAtCurrent(kind)
}

// consumeTerm accepts an identifier or a numeral.
func (p *Parser) consumeTerm() (token.Token, error) {
	if p.current.Kind.IsTerm() {
		return p.advance()
	}
	if p.isAtEnd() {
		return token.Token{}, newSyntaxError(token.IDENTIFIER, p.current,
			errors.UnexpectedEOF("IDENTIFIER or NUMBER", p.current.Position()))
	}
	detail := errors.UnexpectedToken(token.IDENTIFIER, p.current)
	detail.Message = fmt.Sprintf("expected IDENTIFIER or NUMBER, got %s", p.current.Kind)
	return token.Token{}, newSyntaxError(token.IDENTIFIER, p.current, detail)
}

func (p *Parser) isAtEnd() bool {
	return p.current.Kind == token.EOF
}

func (p *Parser) errorAtCurrent(expected token.Kind) *SyntaxError {
	if p.isAtEnd() {
		return newSyntaxError(expected, p.current, errors.UnexpectedEOF(expected.String(), p.current.Position()))
	}
	return newSyntaxError(expected, p.current, errors.UnexpectedToken(expected, p.current))
}
