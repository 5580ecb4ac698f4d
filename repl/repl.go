// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"chaoslab/internal/chaos"
	"chaoslab/internal/compiler"
	"chaoslab/internal/errors"
	"chaoslab/internal/ir"
	"chaoslab/internal/parser"

	"github.com/fatih/color"
)

const PROMPT = ">> "

const help = `Each line is compiled as a complete program.
  :chaos on|off   toggle the chaos transformer
  :seed <n>       fix the chaos seed (0 = time-derived)
  :help           show this message
  :quit           leave`

// Session carries the settings that survive between lines.
type Session struct {
	Options compiler.Options
	seed    int64
	line    int
}

func NewSession(opts compiler.Options) *Session {
	return &Session{Options: opts}
}

// Start reads lines from in until EOF or :quit, writing results to out.
func Start(in io.Reader, out io.Writer, opts compiler.Options) {
	NewSession(opts).Run(in, out)
}

func (s *Session) Run(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	prompt := color.New(color.FgCyan).SprintFunc()

	for {
		fmt.Fprint(out, prompt(PROMPT))
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			if !s.command(out, line) {
				return
			}
			continue
		}

		s.Eval(out, line)
	}
}

// Eval compiles one line and prints its IR and assembly.
func (s *Session) Eval(out io.Writer, line string) {
	s.line++
	name := fmt.Sprintf("<repl:%d>", s.line)

	opts := s.Options
	if s.seed != 0 {
		opts.ChaosOptions = append(append([]chaos.Option{}, opts.ChaosOptions...), chaos.WithSeed(s.seed))
	}

	result, err := compiler.Compile(name, line, opts)
	if err != nil {
		var syntaxErr *parser.SyntaxError
		if stderrors.As(err, &syntaxErr) {
			fmt.Fprint(out, errors.NewErrorReporter(name, line).FormatError(syntaxErr.CompilerError()))
		} else {
			fmt.Fprintln(out, color.RedString("error: %s", err))
		}
		return
	}

	fmt.Fprintf(out, "IR:\n%s", ir.Print(result.Original))
	if result.Chaotic != nil {
		fmt.Fprintf(out, "Chaotic IR (seed %d):\n%s", result.ChaosReport.Seed, ir.Print(result.Chaotic))
	}
	fmt.Fprintf(out, "Assembly:\n%s", result.Assembly)
}

// command handles a ':' directive and reports whether the loop should go on.
func (s *Session) command(out io.Writer, line string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":quit", ":q":
		return false
	case ":help":
		fmt.Fprintln(out, help)
	case ":chaos":
		if len(fields) != 2 || (fields[1] != "on" && fields[1] != "off") {
			fmt.Fprintln(out, "usage: :chaos on|off")
			break
		}
		s.Options.Chaos = fields[1] == "on"
		fmt.Fprintf(out, "chaos %s\n", fields[1])
	case ":seed":
		if len(fields) != 2 {
			fmt.Fprintln(out, "usage: :seed <n>")
			break
		}
		seed, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			fmt.Fprintf(out, "invalid seed %q\n", fields[1])
			break
		}
		s.seed = seed
		fmt.Fprintf(out, "seed %d\n", seed)
	default:
		fmt.Fprintf(out, "unknown command %s (try :help)\n", fields[0])
	}
	return true
}
