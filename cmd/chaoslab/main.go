// SPDX-License-Identifier: Apache-2.0
package main

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"chaoslab/internal/compiler"
	"chaoslab/internal/config"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("chaoslab.cli")

var (
	verbosity  int
	configPath string
)

// errReported marks a failure whose details were already printed.
var errReported = stderrors.New("reported")

var rootCmd = &cobra.Command{
	Use:   "chaoslab",
	Short: "Chaos Lab mini-compiler",
	Long:  "A mini-compiler that lowers a tiny C-like language to three-address IR, optionally scrambles it with semantics-preserving chaos passes, and prints an assembly-like listing.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		commonlog.Configure(verbosity, nil)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity (repeatable)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultFile, "configuration file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !stderrors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "%s %s\n", color.RedString("error:"), err)
		}
		atexit.Exit(1)
	}
	atexit.Exit(0)
}

// readSource returns the file named by args, or the demo program when there is none.
func readSource(args []string) (name, source string, err error) {
	if len(args) == 0 {
		return "<demo>", compiler.DemoSource, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("failed to read file: %w", err)
	}
	return args[0], string(data), nil
}

// loadConfig reads the configuration and applies the command-line overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if f := flags.Lookup("chaos"); f != nil && f.Changed && f.Value.Type() == "bool" {
		cfg.Chaos.Enabled, _ = flags.GetBool("chaos")
	}
	if flags.Changed("seed") {
		cfg.Chaos.Seed, _ = flags.GetInt64("seed")
	}
	if flags.Changed("passes") {
		passes, _ := flags.GetStringSlice("passes")
		cfg.Chaos.Passes = normalizeList(passes)
	}
	if flags.Changed("budget") {
		cfg.Chaos.MaxNewInstructions, _ = flags.GetInt("budget")
	}
	if flags.Changed("intensity") {
		cfg.Chaos.Intensity, _ = flags.GetString("intensity")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func addChaosFlags(cmd *cobra.Command) {
	cmd.Flags().Int64("seed", 0, "seed for the chaos random stream (0 = time-derived)")
	cmd.Flags().StringSlice("passes", nil, "chaos passes to run, in order (commute, noop, encode)")
	cmd.Flags().Int("budget", 0, "maximum number of instructions chaos may add")
	cmd.Flags().String("intensity", "", "chaos intensity plan (low, medium, high)")
}

func normalizeList(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, strings.ToLower(v))
		}
	}
	return out
}
