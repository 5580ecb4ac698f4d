package verify

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"chaoslab/internal/ir"
)

// Runner executes a compiled artifact and returns its integer result.
type Runner interface {
	Run(ctx context.Context, artifact string) (int, error)
}

// ExecRunner runs artifact as a program. Its result is the last line of
// stdout parsed as an integer, or the exit code when stdout is empty. A
// program that prints and then exits non-zero, or that is killed by a
// signal, is an error.
type ExecRunner struct {
	Args []string
}

func (r ExecRunner) Run(ctx context.Context, artifact string) (int, error) {
	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, artifact, r.Args...)
	cmd.Stdout = &stdout

	runErr := cmd.Run()

	var exitErr *exec.ExitError
	if stderrors.As(runErr, &exitErr) && exitErr.ExitCode() < 0 {
		return 0, fmt.Errorf("%s terminated abnormally: %w", artifact, runErr)
	}

	if out := strings.TrimSpace(stdout.String()); out != "" {
		if runErr != nil {
			return 0, fmt.Errorf("%s failed after printing output: %w", artifact, runErr)
		}
		lines := strings.Split(out, "\n")
		last := strings.TrimSpace(lines[len(lines)-1])
		v, err := strconv.Atoi(last)
		if err != nil {
			return 0, fmt.Errorf("%s: output %q is not an integer", artifact, last)
		}
		return v, nil
	}

	if exitErr != nil {
		return exitErr.ExitCode(), nil
	}
	if runErr != nil {
		return 0, fmt.Errorf("failed to run %s: %w", artifact, runErr)
	}
	return 0, nil
}

// SimRunner resolves artifacts to in-memory IR programs and simulates them.
type SimRunner struct {
	Programs map[string]*ir.Program
}

func (r SimRunner) Run(ctx context.Context, artifact string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	program, ok := r.Programs[artifact]
	if !ok {
		return 0, fmt.Errorf("unknown artifact %q", artifact)
	}
	result, err := Simulate(program)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", artifact, err)
	}
	return int(result.Value()), nil
}
