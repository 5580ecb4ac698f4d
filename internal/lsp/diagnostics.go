package lsp

import (
	stderrors "errors"

	"chaoslab/internal/errors"
	"chaoslab/internal/parser"
	"chaoslab/internal/token"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

const diagnosticSource = "chaoslab-parser"

// ConvertCompileError turns a failed compilation into editor diagnostics.
// Only syntax errors carry a position; anything else is reported at the top
// of the document.
func ConvertCompileError(err error) []protocol.Diagnostic {
	if err == nil {
		return nil
	}

	var syntaxErr *parser.SyntaxError
	if stderrors.As(err, &syntaxErr) {
		detail := syntaxErr.CompilerError()
		length := detail.Length
		if length <= 0 && syntaxErr.Actual.Kind != token.EOF {
			length = len(syntaxErr.Actual.Text)
		}
		return []protocol.Diagnostic{toDiagnostic(detail, length, protocol.DiagnosticSeverityError)}
	}

	return []protocol.Diagnostic{{
		Range:    protocol.Range{End: protocol.Position{Character: 1}},
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Source:   ptrString(diagnosticSource),
		Message:  err.Error(),
	}}
}

// ConvertWarnings reports the tokens the parser skipped.
func ConvertWarnings(warnings []errors.CompilerError) []protocol.Diagnostic {
	var diagnostics []protocol.Diagnostic
	for _, w := range warnings {
		diagnostics = append(diagnostics, toDiagnostic(w, w.Length, protocol.DiagnosticSeverityWarning))
	}
	return diagnostics
}

func toDiagnostic(err errors.CompilerError, length int, severity protocol.DiagnosticSeverity) protocol.Diagnostic {
	line := uint32(max(err.Position.Line-1, 0))
	start := uint32(max(err.Position.Column-1, 0))

	d := protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: start},
			End:   protocol.Position{Line: line, Character: start + uint32(max(length, 1))},
		},
		Severity: ptrSeverity(severity),
		Source:   ptrString(diagnosticSource),
		Message:  err.Message,
	}
	if err.Code != "" {
		d.Code = &protocol.IntegerOrString{Value: err.Code}
	}
	for _, s := range err.Suggestions {
		d.Message += "\n" + s.Message
	}
	return d
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
