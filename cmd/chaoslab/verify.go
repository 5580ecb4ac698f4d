package main

import (
	stderrors "errors"
	"fmt"

	"chaoslab/internal/parser"
	"chaoslab/internal/verify"

	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [file]",
	Short: "Check that chaos preserves program behavior",
	Long: `Compile a source file with and without chaos and compare the simulated results.
With --ref and --chaos, run two compiled binaries instead and compare their outputs.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().String("ref", "", "reference binary")
	verifyCmd.Flags().String("chaos", "", "binary built with chaos enabled")
	addChaosFlags(verifyCmd)
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	refBinary, _ := cmd.Flags().GetString("ref")
	chaosBinary, _ := cmd.Flags().GetString("chaos")

	var (
		report *verify.Report
		err    error
	)

	switch {
	case refBinary != "" || chaosBinary != "":
		if refBinary == "" || chaosBinary == "" {
			return fmt.Errorf("--ref and --chaos must be given together")
		}
		fmt.Fprintln(out, "--- Chaos Lab Differential Verifier ---")
		runner := verify.ExecRunner{}
		report, err = verify.Differential(cmd.Context(), runner, runner, refBinary, chaosBinary)

	default:
		name, source, readErr := readSource(args)
		if readErr != nil {
			return readErr
		}
		cfg, cfgErr := loadConfig(cmd)
		if cfgErr != nil {
			return cfgErr
		}
		chaosOpts, optErr := cfg.ChaosOptions()
		if optErr != nil {
			return optErr
		}

		report, err = verify.Source(cmd.Context(), source, chaosOpts...)
		var syntaxErr *parser.SyntaxError
		if stderrors.As(err, &syntaxErr) {
			reportCompileError(cmd.ErrOrStderr(), name, source, err)
			return errReported
		}
		if err == nil && report.ChaosReport != nil {
			fmt.Fprintf(out, "Seed: %d\n", report.ChaosReport.Seed)
		}
	}
	if err != nil {
		return err
	}

	if err := report.Write(out); err != nil {
		return err
	}
	if !report.Match {
		return errReported
	}
	return nil
}
