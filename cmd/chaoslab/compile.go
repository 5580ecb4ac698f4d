package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"slices"

	"chaoslab/internal/compiler"
	"chaoslab/internal/diagnostics"
	"chaoslab/internal/errors"
	"chaoslab/internal/ir"
	"chaoslab/internal/parser"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Compile a source file and print its IR and assembly",
	Long:  "Compile a source file (or the built-in demo program) and print the original IR, the chaotic IR when chaos is enabled, and the generated assembly.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCompile,
}

func init() {
	compileCmd.Flags().Bool("chaos", false, "apply the chaos transformer before code generation")
	compileCmd.Flags().StringSlice("emit", []string{"ir", "asm"}, "sections to print (ir, asm)")
	compileCmd.Flags().Bool("report", false, "print the chaos pass report")
	compileCmd.Flags().Bool("events", false, "print the diagnostics event log, its explanations and validation")
	compileCmd.Flags().String("explain", string(diagnostics.Student), "explanation depth for --events (student, researcher)")
	addChaosFlags(compileCmd)
	rootCmd.AddCommand(compileCmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	name, source, err := readSource(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	explain, _ := cmd.Flags().GetString("explain")
	depth, err := diagnostics.ParseDepth(explain)
	if err != nil {
		return err
	}

	dm := diagnostics.NewManager()
	opts, err := compiler.OptionsFromConfig(cfg, dm)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	result, err := compiler.Compile(name, source, opts)
	if err != nil {
		reportCompileError(cmd.ErrOrStderr(), name, source, err)
		color.New(color.FgRed).Fprintln(cmd.ErrOrStderr(), "Compilation failed")
		return errReported
	}

	reporter := errors.NewErrorReporter(name, source)
	for _, w := range result.Warnings {
		fmt.Fprint(cmd.ErrOrStderr(), reporter.FormatError(w))
	}

	emit, _ := cmd.Flags().GetStringSlice("emit")
	emit = normalizeList(emit)
	if err := writeResult(out, result, emit); err != nil {
		return err
	}

	if report, _ := cmd.Flags().GetBool("report"); report && result.ChaosReport != nil {
		if err := result.ChaosReport.Write(out); err != nil {
			return err
		}
	}
	if events, _ := cmd.Flags().GetBool("events"); events {
		if err := writeEvents(out, dm, depth); err != nil {
			return err
		}
	}

	log.Infof("compiled %s in %s", name, compiler.FormatDuration(result.Elapsed))
	return nil
}

// writeEvents prints the event log, one explanation per chaos event and the
// outcome of validating the log.
func writeEvents(out io.Writer, dm *diagnostics.Manager, depth diagnostics.Depth) error {
	if err := dm.WriteTable(out); err != nil {
		return err
	}
	if err := dm.WriteExplanations(out, depth); err != nil {
		return err
	}

	v := dm.Validate()
	if _, err := fmt.Fprintf(out, "Event validation: %s\n", v); err != nil {
		return err
	}
	for _, msg := range v.Errors {
		color.New(color.FgRed).Fprintf(out, "  error: %s\n", msg)
	}
	for _, msg := range v.Warnings {
		color.New(color.FgYellow).Fprintf(out, "  warning: %s\n", msg)
	}
	return nil
}

// writeResult prints the requested sections with the classic driver framing.
func writeResult(out io.Writer, result *compiler.Result, emit []string) error {
	if slices.Contains(emit, "ir") {
		if err := section(out, "Original IR", ir.Print(result.Original)+"\n"); err != nil {
			return err
		}
		if result.Chaotic != nil {
			if _, err := fmt.Fprintln(out, "--- Applying Chaos ---"); err != nil {
				return err
			}
			if err := section(out, "Chaotic IR", ir.Print(result.Chaotic)+"\n"); err != nil {
				return err
			}
		}
	}
	if slices.Contains(emit, "asm") {
		return section(out, "Assembly", result.Assembly)
	}
	return nil
}

func section(out io.Writer, title, body string) error {
	_, err := fmt.Fprintf(out, "--- %s ---\n%s", title, body)
	return err
}

func reportCompileError(w io.Writer, name, source string, err error) {
	var syntaxErr *parser.SyntaxError
	if stderrors.As(err, &syntaxErr) {
		fmt.Fprint(w, errors.NewErrorReporter(name, source).FormatError(syntaxErr.CompilerError()))
		return
	}
	fmt.Fprintln(w, err)
}
