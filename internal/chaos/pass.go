package chaos

import (
	"fmt"
	"math/rand"
	"strings"

	"chaoslab/internal/diagnostics"
	"chaoslab/internal/ir"
)

// Pass is a single semantics-preserving rewrite.
type Pass interface {
	Name() string
	Description() string
	Apply(program *ir.Program, env *Env) bool // Returns true if changes were made
}

// Env is the state shared by the passes of one Apply call.
type Env struct {
	Rand        *rand.Rand
	Diagnostics *diagnostics.Manager
	Budget      *Budget
	Plan        *Plan // nil when no intensity was requested

	result *PassResult
}

// Budget caps how many instructions the encoding pass may add in one Apply
// call. NOOP injection is not charged.
type Budget struct {
	Max  int
	Used int
}

// Take reserves n instructions and reports whether they fit.
func (b *Budget) Take(n int) bool {
	if b.Used+n > b.Max {
		return false
	}
	b.Used += n
	return true
}

// Remaining is never negative.
func (b *Budget) Remaining() int {
	return b.Max - b.Used
}

func (e *Env) applied(id, context string, params diagnostics.Params) {
	e.result.Applied++
	e.Diagnostics.Emit(id, context, diagnostics.Info, params)
}

func (e *Env) skipped(id, context string, params diagnostics.Params) {
	e.result.Skipped++
	e.Diagnostics.Emit(id, context, diagnostics.Warning, params)
}

// Pass names accepted by configuration and the --passes flag.
const (
	PassCommute = "commute"
	PassNoop    = "noop"
	PassEncode  = "encode"
)

// DefaultPassNames is the fixed order: commutation first, then NOOP injection.
func DefaultPassNames() []string {
	return []string{PassCommute, PassNoop}
}

func AvailablePassNames() []string {
	return []string{PassCommute, PassNoop, PassEncode}
}

// PassByName returns a fresh pass for a configured name
func PassByName(name string) (Pass, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case PassCommute:
		return &Commutation{}, nil
	case PassNoop:
		return &NoopInjection{}, nil
	case PassEncode:
		return &NumberEncoding{}, nil
	default:
		return nil, fmt.Errorf("unknown chaos pass %q (available: %s)", name, strings.Join(AvailablePassNames(), ", "))
	}
}

// PassesByName resolves a list of names, keeping their order
func PassesByName(names []string) ([]Pass, error) {
	passes := make([]Pass, 0, len(names))
	for _, name := range names {
		p, err := PassByName(name)
		if err != nil {
			return nil, err
		}
		passes = append(passes, p)
	}
	return passes, nil
}
