// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"

	"chaoslab/internal/lsp"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

const lsName = "chaoslab"

var log = commonlog.GetLogger("chaoslab.lsp.server")

var (
	verbosity int
	logPath   string
	debug     bool
)

var rootCmd = &cobra.Command{
	Use:   "chaoslab-lsp",
	Short: "Chaos Lab language server",
	Long:  "Serve the Language Server Protocol over stdio: diagnostics, completion and semantic tokens for chaoslab sources.",
	Args:  cobra.NoArgs,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		var path *string
		if logPath != "" {
			path = &logPath
		}
		commonlog.Configure(verbosity, path)
	},
	RunE:          runServer,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().IntVar(&verbosity, "verbosity", 1, "log verbosity")
	rootCmd.Flags().StringVar(&logPath, "log", "", "log file (default stderr)")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "enable glsp protocol tracing")
}

func newProtocolHandler() *protocol.Handler {
	h := lsp.NewHandler()
	return &protocol.Handler{
		Initialize:                     h.Initialize,
		Initialized:                    h.Initialized,
		Shutdown:                       h.Shutdown,
		SetTrace:                       h.SetTrace,
		TextDocumentDidOpen:            h.TextDocumentDidOpen,
		TextDocumentDidClose:           h.TextDocumentDidClose,
		TextDocumentDidChange:          h.TextDocumentDidChange,
		TextDocumentCompletion:         h.TextDocumentCompletion,
		TextDocumentSemanticTokensFull: h.TextDocumentSemanticTokensFull,
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	s := server.NewServer(newProtocolHandler(), lsName, debug)

	log.Info("starting chaoslab language server")
	if err := s.RunStdio(); err != nil {
		return fmt.Errorf("language server stopped: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Errorf("%s", err)
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
	}
	atexit.Exit(0)
}
