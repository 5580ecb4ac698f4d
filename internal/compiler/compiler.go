// Package compiler runs the whole pipeline over one source buffer:
// parse, optionally transform a copy with the chaos engine, then generate
// the assembly listing. The CLI, the REPL and the language server all go
// through Compile.
package compiler

import (
	stderrors "errors"
	"fmt"
	"os"
	"time"

	"chaoslab/internal/chaos"
	"chaoslab/internal/codegen"
	"chaoslab/internal/config"
	"chaoslab/internal/diagnostics"
	"chaoslab/internal/errors"
	"chaoslab/internal/ir"
	"chaoslab/internal/parser"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("chaoslab.compiler")

// DemoSource is compiled when no input file is given.
const DemoSource = "int main() { int x = 10; int y = 20; int z = x + y; return z; }"

// Pipeline event ids.
const (
	EventParseFailed     = "PARSE_FAILED"
	EventParseWarning    = "PARSE_IGNORED_TOKEN"
	EventIRBuilt         = "IR_BUILT"
	EventIRInvalid       = "IR_INVALID"
	EventCodegenComplete = "CODEGEN_COMPLETE"
)

type Options struct {
	Chaos        bool
	ChaosOptions []chaos.Option
	Codegen      codegen.Options
	Diagnostics  *diagnostics.Manager
}

func DefaultOptions() Options {
	return Options{Codegen: codegen.DefaultOptions()}
}

// OptionsFromConfig maps a loaded configuration onto pipeline options.
func OptionsFromConfig(cfg *config.Config, dm *diagnostics.Manager) (Options, error) {
	chaosOpts, err := cfg.ChaosOptions()
	if err != nil {
		return Options{}, err
	}
	return Options{
		Chaos:        cfg.Chaos.Enabled,
		ChaosOptions: chaosOpts,
		Codegen:      codegen.Options{Comments: cfg.Codegen.Comments},
		Diagnostics:  dm,
	}, nil
}

// Result keeps every intermediate artifact of one compilation.
type Result struct {
	Name     string
	Source   string
	Original *ir.Program
	// Chaotic is nil unless the chaos stage ran.
	Chaotic     *ir.Program
	ChaosReport *chaos.Report
	Assembly    string
	Warnings    []errors.CompilerError
	Elapsed     time.Duration
}

// Final is the program the assembly was generated from.
func (r *Result) Final() *ir.Program {
	if r.Chaotic != nil {
		return r.Chaotic
	}
	return r.Original
}

// Compile runs the pipeline. A syntax error is returned unwrapped as a
// *parser.SyntaxError.
func Compile(name, source string, opts Options) (*Result, error) {
	start := time.Now()
	dm := opts.Diagnostics

	parsed, err := parser.ParseSource(name, source)
	if err != nil {
		params := diagnostics.Params{"error": err.Error()}
		var syntaxErr *parser.SyntaxError
		if stderrors.As(err, &syntaxErr) {
			params["code"] = syntaxErr.Code
			params["at"] = syntaxErr.Actual.Position().String()
		}
		dm.Emit(EventParseFailed, name, diagnostics.Error, params)
		return nil, err
	}

	for _, w := range parsed.Warnings {
		dm.Emit(EventParseWarning, name, diagnostics.Warning, diagnostics.Params{
			"code": w.Code,
			"at":   w.Position.String(),
		})
	}

	result := &Result{
		Name:     name,
		Source:   source,
		Original: parsed.Program,
		Warnings: parsed.Warnings,
	}

	if err := result.Original.Validate(); err != nil {
		dm.Emit(EventIRInvalid, name, diagnostics.Error, diagnostics.Params{"error": err.Error()})
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	dm.Emit(EventIRBuilt, name, diagnostics.Info, diagnostics.Params{"instructions": result.Original.Len()})

	if opts.Chaos {
		chaosOpts := append([]chaos.Option{chaos.WithDiagnostics(dm)}, opts.ChaosOptions...)
		result.Chaotic = result.Original.Clone()
		result.ChaosReport = chaos.New(chaosOpts...).Apply(result.Chaotic)
		log.Infof("%s: chaos seed %d added %d instructions", name, result.ChaosReport.Seed, result.ChaosReport.InstructionsAdded())
	}

	result.Assembly = codegen.GenerateString(result.Final(), opts.Codegen)
	dm.Emit(EventCodegenComplete, name, diagnostics.Info, diagnostics.Params{"instructions": result.Final().Len()})

	result.Elapsed = time.Since(start)
	log.Debugf("%s: compiled in %s", name, result.Elapsed)
	return result, nil
}

func CompileFile(path string, opts Options) (*Result, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Compile(path, string(source), opts)
}

// FormatDuration prints d with a unit that keeps the number short.
func FormatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
