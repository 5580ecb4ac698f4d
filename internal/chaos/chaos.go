// Package chaos implements the obfuscation stage that sits between IR
// generation and code emission. Every pass preserves program semantics: the
// transformed program prints the same values as the original.
package chaos

import (
	"math/rand"
	"time"

	"chaoslab/internal/diagnostics"
	"chaoslab/internal/ir"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("chaoslab.chaos")

// DefaultMaxNewInstructions bounds how much a single Apply may grow a program.
const DefaultMaxNewInstructions = 30

// Transformer owns the random stream and the ordered pass list. It is not
// safe for concurrent use.
type Transformer struct {
	seed        int64
	rand        *rand.Rand
	passes      []Pass
	maxNew      int
	intensity   Intensity
	diagnostics *diagnostics.Manager
}

type Option func(*Transformer)

// WithSeed fixes the random stream. Zero keeps the wall-clock default.
func WithSeed(seed int64) Option {
	return func(t *Transformer) {
		if seed != 0 {
			t.seed = seed
		}
	}
}

// WithPasses replaces the default commute+noop pipeline
func WithPasses(passes ...Pass) Option {
	return func(t *Transformer) {
		t.passes = passes
	}
}

func WithMaxNewInstructions(n int) Option {
	return func(t *Transformer) {
		if n >= 0 {
			t.maxNew = n
		}
	}
}

// WithIntensity turns on planning. The plan picks a theme whose weight,
// scaled by the intensity, replaces the fair coin of number encoding.
func WithIntensity(in Intensity) Option {
	return func(t *Transformer) {
		t.intensity = in
	}
}

func WithDiagnostics(m *diagnostics.Manager) Option {
	return func(t *Transformer) {
		t.diagnostics = m
	}
}

func New(opts ...Option) *Transformer {
	t := &Transformer{
		seed:   time.Now().UnixNano(),
		passes: []Pass{&Commutation{}, &NoopInjection{}},
		maxNew: DefaultMaxNewInstructions,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.rand = rand.New(newMinstdSource(t.seed))
	return t
}

func (t *Transformer) Seed() int64 {
	return t.seed
}

func (t *Transformer) Passes() []Pass {
	return t.passes
}

func (t *Transformer) Intensity() Intensity {
	return t.intensity
}

// Apply rewrites program in place, running the passes in order.
func (t *Transformer) Apply(program *ir.Program) *Report {
	report := &Report{
		Seed:        t.seed,
		Before:      program.Len(),
		MaxNew:      t.maxNew,
		PassResults: make([]PassResult, 0, len(t.passes)),
	}

	env := &Env{
		Rand:        t.rand,
		Diagnostics: t.diagnostics,
		Budget:      &Budget{Max: t.maxNew},
	}

	if t.intensity != "" {
		env.Plan = t.selectPlan()
		report.Plan = env.Plan
		t.diagnostics.Emit("CHAOS_PLAN_SELECTED", "chaos.planner", diagnostics.Info, diagnostics.Params{
			"strategy":  env.Plan.Theme.Name,
			"intensity": string(t.intensity),
			"seed":      t.seed,
		})
		log.Infof("plan %q at %s intensity", env.Plan.Theme.Name, t.intensity)
	}

	if len(t.passes) == 0 {
		t.diagnostics.Emit("CHAOS_SKIPPED_DISABLED", "chaos.safety", diagnostics.Info, diagnostics.Params{
			"reason": "no_passes",
		})
	}

	for _, pass := range t.passes {
		report.PassResults = append(report.PassResults, PassResult{Name: pass.Name(), Description: pass.Description()})
		env.result = &report.PassResults[len(report.PassResults)-1]

		env.result.Changed = pass.Apply(program, env)
		log.Debugf("pass %s: applied=%d skipped=%d", pass.Name(), env.result.Applied, env.result.Skipped)
	}

	report.After = program.Len()
	report.BudgetUsed = env.Budget.Used

	t.diagnostics.Emit("CHAOS_BUDGET_SUMMARY", "chaos.budget", diagnostics.Info, diagnostics.Params{
		"instructionsAdded": report.InstructionsAdded(),
		"budgetUsed":        report.BudgetUsed,
		"maxInstructions":   t.maxNew,
		"budgetRemaining":   env.Budget.Remaining(),
	})
	return report
}
