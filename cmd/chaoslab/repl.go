package main

import (
	"chaoslab/internal/compiler"
	"chaoslab/internal/diagnostics"
	"chaoslab/repl"

	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Compile programs interactively, one line at a time",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		opts, err := compiler.OptionsFromConfig(cfg, diagnostics.NewManager())
		if err != nil {
			return err
		}

		repl.Start(cmd.InOrStdin(), cmd.OutOrStdout(), opts)
		return nil
	},
}

func init() {
	replCmd.Flags().Bool("chaos", false, "start with the chaos transformer enabled")
	addChaosFlags(replCmd)
	rootCmd.AddCommand(replCmd)
}
