// Package verify checks that the chaos stage preserved program behavior,
// either by simulating both IR programs or by running two compiled artifacts.
package verify

import (
	"context"
	"fmt"
	"io"

	"chaoslab/internal/chaos"
	"chaoslab/internal/ir"
	"chaoslab/internal/parser"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("chaoslab.verify")

const (
	ReferenceArtifact = "reference"
	ChaosArtifact     = "chaos"
)

type Report struct {
	ReferenceArtifact string
	ChaosArtifact     string
	Reference         int
	Chaos             int
	Match             bool

	// Set by Source only.
	ReferenceProgram *ir.Program
	ChaosProgram     *ir.Program
	ChaosReport      *chaos.Report
}

// Differential runs both artifacts and compares their results.
func Differential(ctx context.Context, ref, chaosRunner Runner, refArtifact, chaosArtifact string) (*Report, error) {
	refValue, err := ref.Run(ctx, refArtifact)
	if err != nil {
		return nil, fmt.Errorf("reference run failed: %w", err)
	}
	chaosValue, err := chaosRunner.Run(ctx, chaosArtifact)
	if err != nil {
		return nil, fmt.Errorf("chaos run failed: %w", err)
	}

	report := &Report{
		ReferenceArtifact: refArtifact,
		ChaosArtifact:     chaosArtifact,
		Reference:         refValue,
		Chaos:             chaosValue,
		Match:             refValue == chaosValue,
	}
	if report.Match {
		log.Infof("verification passed: %d == %d", refValue, chaosValue)
	} else {
		log.Warningf("verification failed: reference %d, chaos %d", refValue, chaosValue)
	}
	return report, nil
}

// Source compiles src once, transforms a copy with the given chaos options,
// and compares the simulated results of both programs.
func Source(ctx context.Context, src string, opts ...chaos.Option) (*Report, error) {
	reference, err := parser.Parse(src)
	if err != nil {
		return nil, err
	}

	chaotic := reference.Clone()
	chaosReport := chaos.New(opts...).Apply(chaotic)

	runner := SimRunner{Programs: map[string]*ir.Program{
		ReferenceArtifact: reference,
		ChaosArtifact:     chaotic,
	}}

	report, err := Differential(ctx, runner, runner, ReferenceArtifact, ChaosArtifact)
	if err != nil {
		return nil, err
	}
	report.ReferenceProgram = reference
	report.ChaosProgram = chaotic
	report.ChaosReport = chaosReport
	return report, nil
}

// Write renders the verdict and a comparison table.
func (r *Report) Write(w io.Writer) error {
	verdict := color.New(color.FgGreen, color.Bold).Sprint("PASSED")
	if !r.Match {
		verdict = color.New(color.FgRed, color.Bold).Sprint("FAILED")
	}

	t := table.NewWriter()
	t.SetTitle("Differential verification")
	t.AppendHeader(table.Row{"Build", "Artifact", "Instructions", "Result"})
	t.AppendRow(table.Row{"reference", r.ReferenceArtifact, instructionCount(r.ReferenceProgram), r.Reference})
	t.AppendRow(table.Row{"chaos", r.ChaosArtifact, instructionCount(r.ChaosProgram), r.Chaos})

	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Verification %s\n", verdict)
	return err
}

func instructionCount(p *ir.Program) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%d", p.Len())
}
