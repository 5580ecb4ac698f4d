package parser

import (
	"fmt"

	"chaoslab/internal/errors"
	"chaoslab/internal/token"
)

// SyntaxError is the single fatal failure the parser can produce. Parsing
// stops at the first one; there is no partial program.
type SyntaxError struct {
	Code     string
	Expected token.Kind // only meaningful for E0100
	Actual   token.Token
	Message  string

	detail errors.CompilerError
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Actual.Position(), e.Message)
}

// CompilerError returns the structured form for ErrorReporter and the language server.
func (e *SyntaxError) CompilerError() errors.CompilerError {
	return e.detail
}

func newSyntaxError(expected token.Kind, actual token.Token, detail errors.CompilerError) *SyntaxError {
	return &SyntaxError{
		Code:     detail.Code,
		Expected: expected,
		Actual:   actual,
		Message:  detail.Message,
		detail:   detail,
	}
}
