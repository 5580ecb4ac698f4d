package diagnostics

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Depth selects the audience of an explanation.
type Depth string

const (
	Student    Depth = "student"
	Researcher Depth = "researcher"
)

func ParseDepth(s string) (Depth, error) {
	switch d := Depth(strings.ToLower(strings.TrimSpace(s))); d {
	case Student, Researcher:
		return d, nil
	case "":
		return Student, nil
	default:
		return "", fmt.Errorf("unknown explanation depth %q (available: student, researcher)", s)
	}
}

type explainer struct {
	student    func(Params) string
	researcher func(Params) string
}

var explanations = map[string]explainer{
	"CHAOS_ALGEBRAIC_SWAP": {
		student: func(p Params) string {
			op, sign := opName(p)
			return fmt.Sprintf("We swapped the order of operands. Since a %s b equals b %s a, the result is identical! (%s)", sign, sign, op)
		},
		researcher: func(p Params) string {
			op, _ := opName(p)
			return fmt.Sprintf("Algebraic Commutativity Transformation: Exploiting the commutative property of %s operators to permute operand ordering.", op)
		},
	},
	"CHAOS_NUM_ENCODING": {
		student: func(p Params) string {
			return fmt.Sprintf("We replaced the constant %v with an equivalent calculation (%v). The value is the same, it is just computed at run time.", p["orig"], p["enc"])
		},
		researcher: func(p Params) string {
			return fmt.Sprintf("Integer Encoding Obfuscation: Replaced literal constant %v with dynamically computed expression %v to defend against constant scanning.", p["orig"], p["enc"])
		},
	},
	"CHAOS_NOOP_INJECTED": {
		student: func(Params) string {
			return "We added an instruction that does nothing. The program runs exactly the same, it just looks busier."
		},
		researcher: func(p Params) string {
			return fmt.Sprintf("Dead Code Insertion: Appended a semantically inert NOOP at instruction %v to perturb instruction-level signatures.", p["instr"])
		},
	},
	"CHAOS_PLAN_SELECTED": {
		student: func(p Params) string {
			return fmt.Sprintf("The chaos engine picked the %q strategy at %v intensity. It decides how often each trick is used.", p["strategy"], p["intensity"])
		},
		researcher: func(p Params) string {
			return fmt.Sprintf("Strategy Selection: Theme %q chosen at %v intensity from seed %v; pass probabilities are scaled by the theme weights.", p["strategy"], p["intensity"], p["seed"])
		},
	},
	"CHAOS_SKIPPED_BUDGET": {
		student: func(p Params) string {
			return fmt.Sprintf("We wanted to apply %v here, but the program already grew as much as allowed.", p["pass"])
		},
		researcher: func(p Params) string {
			return fmt.Sprintf("Budget Constraint: Transformation %v suppressed (%v) to bound code growth.", p["pass"], p["reason"])
		},
	},
	"CHAOS_SKIPPED_SAFETY": {
		student: func(p Params) string {
			return fmt.Sprintf("We skipped a change because the name %v is already used by the program.", p["name"])
		},
		researcher: func(p Params) string {
			return fmt.Sprintf("Safety Guard: Transformation suppressed (%v) to avoid a binding collision on %v.", p["reason"], p["name"])
		},
	},
	"CHAOS_BUDGET_SUMMARY": {
		student: func(p Params) string {
			return fmt.Sprintf("In total the chaos engine added %v instructions.", p["instructionsAdded"])
		},
		researcher: func(p Params) string {
			return fmt.Sprintf("Growth Accounting: %v instructions added, %v of %v budget units consumed.", p["instructionsAdded"], p["budgetUsed"], p["maxInstructions"])
		},
	},
	"COMPILE_CLEAN": {
		student: func(Params) string {
			return "Compilation finished without any chaos. The output matches the original program."
		},
		researcher: func(Params) string {
			return "Identity Compilation: No transformations were applied; the emitted code is the canonical lowering of the IR."
		},
	},
}

func opName(p Params) (name, sign string) {
	switch p["op"] {
	case "MUL":
		return "multiplication", "×"
	default:
		return "addition", "+"
	}
}

// Explain renders ev for the given audience. Unknown ids get a generic line.
func Explain(ev Event, depth Depth) string {
	e, ok := explanations[ev.ID]
	if !ok {
		return fmt.Sprintf("Transformation '%s' applied. Semantic equivalence maintained.", ev.ID)
	}
	if depth == Researcher {
		return e.researcher(ev.Params)
	}
	return e.student(ev.Params)
}

// WriteExplanations renders one explanation per chaos event. A log without
// chaos events is explained as a clean compile.
func (m *Manager) WriteExplanations(w io.Writer, depth Depth) error {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("Explanations (%s)", depth))
	t.AppendHeader(table.Row{"#", "ID", "Explanation"})

	events := m.WithPrefix(PrefixChaos)
	if len(events) == 0 {
		events = []Event{{ID: "COMPILE_CLEAN"}}
	}
	for i, ev := range events {
		t.AppendRow(table.Row{i + 1, ev.ID, Explain(ev, depth)})
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}
