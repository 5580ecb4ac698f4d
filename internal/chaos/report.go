package chaos

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

type PassResult struct {
	Name        string
	Description string
	Applied     int
	Skipped     int
	Changed     bool
}

// Report summarizes one Apply call
type Report struct {
	Seed        int64
	Before      int
	After       int
	MaxNew      int
	BudgetUsed  int
	Plan        *Plan
	PassResults []PassResult
}

func (r *Report) InstructionsAdded() int {
	return r.After - r.Before
}

// Changed reports whether any pass modified the program
func (r *Report) Changed() bool {
	for _, pr := range r.PassResults {
		if pr.Changed {
			return true
		}
	}
	return false
}

// Applied returns the mutation count of the named pass
func (r *Report) Applied(name string) int {
	for _, pr := range r.PassResults {
		if pr.Name == name {
			return pr.Applied
		}
	}
	return 0
}

func (r *Report) Write(w io.Writer) error {
	t := table.NewWriter()
	title := fmt.Sprintf("Chaos report (seed %d)", r.Seed)
	if r.Plan != nil {
		title += fmt.Sprintf(" - %s, %s intensity", r.Plan.Theme.Name, r.Plan.Intensity)
	}
	t.SetTitle(title)
	t.AppendHeader(table.Row{"Pass", "Description", "Applied", "Skipped"})
	for _, pr := range r.PassResults {
		t.AppendRow(table.Row{pr.Name, pr.Description, pr.Applied, pr.Skipped})
	}
	t.AppendFooter(table.Row{"", "instructions", fmt.Sprintf("%d -> %d", r.Before, r.After),
		fmt.Sprintf("budget %d/%d", r.BudgetUsed, r.MaxNew)})

	_, err := fmt.Fprintln(w, t.Render())
	return err
}
