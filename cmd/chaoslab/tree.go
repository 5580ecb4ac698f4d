package main

import (
	"fmt"

	"chaoslab/internal/grammar"

	"github.com/spf13/cobra"
)

var treeCmd = &cobra.Command{
	Use:   "tree [file]",
	Short: "Print the parse tree of a source file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, source, err := readSource(args)
		if err != nil {
			return err
		}

		if ebnf, _ := cmd.Flags().GetBool("ebnf"); ebnf {
			fmt.Fprintln(cmd.OutOrStdout(), grammar.EBNF())
			return nil
		}

		program, err := grammar.Parse(name, source)
		if err != nil {
			fmt.Fprint(cmd.ErrOrStderr(), grammar.FormatError(source, err))
			return errReported
		}
		fmt.Fprint(cmd.OutOrStdout(), program.String())
		return nil
	},
}

func init() {
	treeCmd.Flags().Bool("ebnf", false, "print the grammar instead of a parse tree")
	rootCmd.AddCommand(treeCmd)
}
