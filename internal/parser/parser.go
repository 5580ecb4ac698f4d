package parser

import (
	"chaoslab/internal/errors"
	"chaoslab/internal/ir"
	"chaoslab/internal/token"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("chaoslab.parser")

// Parser is a recursive-descent parser over the statement grammar
//
//	Program    := Statement*
//	Statement  := 'int' 'main' '(' ')' '{'
//	            | 'int' Identifier '=' Expr ';'
//	            | 'return' Term ';'
//	            | '}'
//	Expr       := Term | Term BinOp Term
//
// It lowers each statement straight to IR; there is no syntax tree.
type Parser struct {
	scanner  *Scanner
	current  token.Token
	previous token.Token
	program  *ir.Program
	warnings []errors.CompilerError
}

// ParseResult holds a parsed program plus the non-fatal findings about it
type ParseResult struct {
	Program  *ir.Program
	Warnings []errors.CompilerError
}

func NewParser(source string) *Parser {
	return &Parser{
		scanner: NewScanner(source),
		program: ir.NewProgram(),
	}
}

// Parse compiles source into IR. The error, if any, is a *SyntaxError.
func Parse(source string) (*ir.Program, error) {
	result, err := ParseSource("<input>", source)
	if err != nil {
		return nil, err
	}
	return result.Program, nil
}

func ParseSource(sourceName string, source string) (*ParseResult, error) {
	p := NewParser(source)
	program, err := p.ParseProgram()
	if err != nil {
		log.Debugf("%s: %s", sourceName, err)
		return nil, err
	}
	log.Debugf("%s: %d instructions", sourceName, program.Len())
	return &ParseResult{Program: program, Warnings: p.warnings}, nil
}

// ParseProgram consumes the whole token stream. Parsing stops at the first
// syntax error.
func (p *Parser) ParseProgram() (*ir.Program, error) {
	if _, err := p.advance(); err != nil {
		return nil, err
	}

	for !p.isAtEnd() {
		if err := p.parseStatement(); err != nil {
			return nil, err
		}
	}

	return p.program, nil
}

// Warnings returns the tokens skipped at statement level, as W0001 warnings
func (p *Parser) Warnings() []errors.CompilerError {
	return p.warnings
}

func (p *Parser) parseStatement() error {
	switch p.current.Kind {
	case token.INT:
		if _, err := p.advance(); err != nil {
			return err
		}
		if p.check(token.MAIN) {
			return p.parseEntryMarker()
		}
		return p.parseDeclaration()

	case token.RETURN:
		if _, err := p.advance(); err != nil {
			return err
		}
		return p.parseReturn()

	case token.RBRACE:
		_, err := p.advance()
		return err

	default:
		p.warnings = append(p.warnings, errors.IgnoredToken(p.current))
		_, err := p.advance()
		return err
	}
}

// 'main' '(' ')' '{' after 'int'. Emits nothing.
func (p *Parser) parseEntryMarker() error {
	for _, kind := range []token.Kind{token.MAIN, token.LPAREN, token.RPAREN, token.LBRACE} {
		if _, err := p.consume(kind); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) parseDeclaration() error {
	dest, err := p.consume(token.IDENTIFIER)
	if err != nil {
		return err
	}
	if _, err := p.consume(token.ASSIGN); err != nil {
		return err
	}

	var terms []token.Token
	for !p.check(token.SEMICOLON) {
		if p.isAtEnd() {
			return p.errorAtCurrent(token.SEMICOLON)
		}
		tok, err := p.advance()
		if err != nil {
			return err
		}
		terms = append(terms, tok)
	}

	end := p.current
	if _, err := p.consume(token.SEMICOLON); err != nil {
		return err
	}

	return p.lowerExpression(dest, terms, end)
}

func (p *Parser) lowerExpression(dest token.Token, terms []token.Token, end token.Token) error {
	switch {
	case len(terms) == 1 && terms[0].Kind.IsTerm():
		p.program.AddMove(dest.Text, terms[0].Text)
		return nil

	case len(terms) == 3 && terms[0].Kind.IsTerm() && terms[1].Kind.IsOperator() && terms[2].Kind.IsTerm():
		op, ok := ir.BinaryOpFromSymbol(terms[1].Text)
		if !ok {
			return p.unsupported(terms, end)
		}
		p.program.AddBinary(op, dest.Text, terms[0].Text, terms[2].Text)
		return nil
	}

	return p.unsupported(terms, end)
}

func (p *Parser) unsupported(terms []token.Token, end token.Token) *SyntaxError {
	at := end
	if len(terms) > 0 {
		at = terms[0]
	}
	return newSyntaxError(token.SEMICOLON, at, errors.UnsupportedExpression(terms, at.Position()))
}

func (p *Parser) parseReturn() error {
	value, err := p.consumeTerm()
	if err != nil {
		return err
	}
	if _, err := p.consume(token.SEMICOLON); err != nil {
		return err
	}
	p.program.AddPrint(value.Text)
	return nil
}
