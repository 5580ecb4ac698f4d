package grammar

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"
)

var parser = buildParser()

func buildParser() *participle.Parser[Program] {
	p, err := participle.Build[Program](
		participle.Lexer(ChaosLexer),
		participle.Elide("Whitespace"),
		participle.UseLookahead(3),
	)
	if err != nil {
		panic(fmt.Errorf("failed to build parser: %w", err))
	}

	return p
}

func Parse(sourceName string, source string) (*Program, error) {
	return parser.ParseString(sourceName, source)
}

// EBNF returns the grammar in participle's EBNF notation
func EBNF() string {
	return parser.String()
}

// FormatError renders a participle error as a caret-style message.
func FormatError(src string, err error) string {
	var pe participle.Error
	if !stderrors.As(err, &pe) {
		return color.RedString("Unexpected error: %s", err)
	}

	pos := pe.Position()
	lines := strings.Split(src, "\n")
	if pos.Line <= 0 || pos.Line > len(lines) {
		return color.RedString("Syntax error at unknown location: %s", err)
	}

	var b strings.Builder
	b.WriteString(color.RedString("Syntax error in %s at line %d, column %d:", pos.Filename, pos.Line, pos.Column))
	b.WriteString("\n")
	b.WriteString(lines[pos.Line-1])
	b.WriteString("\n")
	b.WriteString(color.HiRedString(strings.Repeat(" ", max(0, pos.Column-1)) + "^"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("→ %s\n", pe.Message()))
	return b.String()
}
