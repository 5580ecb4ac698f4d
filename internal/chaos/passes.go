package chaos

import (
	"fmt"
	"strconv"

	"chaoslab/internal/diagnostics"
	"chaoslab/internal/ir"
)

// Commutation flips a fair coin for every ADD and MUL and swaps the source
// operands on heads. SUB and DIV are never touched.
type Commutation struct {
	env     *Env
	index   int
	changed bool
}

func (c *Commutation) Name() string { return PassCommute }
func (c *Commutation) Description() string {
	return "Swap the operands of commutative instructions"
}

func (c *Commutation) Apply(program *ir.Program, env *Env) bool {
	c.env, c.changed = env, false
	for i, inst := range program.Instructions {
		c.index = i
		inst.Accept(c)
	}
	return c.changed
}

func (c *Commutation) VisitBinary(b *ir.Binary) {
	if !b.Op.IsCommutative() {
		return
	}
	if c.env.Rand.Intn(2) != 0 {
		return
	}
	b.Swap()
	c.changed = true
	c.env.applied("CHAOS_ALGEBRAIC_SWAP", "chaos.algebraic", diagnostics.Params{
		"op":    b.Op.String(),
		"instr": c.index,
	})
}

func (c *Commutation) VisitMove(*ir.Move)   {}
func (c *Commutation) VisitPrint(*ir.Print) {}
func (c *Commutation) VisitNoop(*ir.Noop)   {}

// NoopInjection appends one NOOP to the end of the program with probability
// 1/3. The NOOP is free: it never draws on the instruction budget.
type NoopInjection struct{}

func (n *NoopInjection) Name() string        { return PassNoop }
func (n *NoopInjection) Description() string { return "Append a dead NOOP instruction" }

func (n *NoopInjection) Apply(program *ir.Program, env *Env) bool {
	if env.Rand.Intn(3) != 0 {
		return false
	}
	program.AddNoop()
	env.applied("CHAOS_NOOP_INJECTED", "chaos.dead_code", diagnostics.Params{
		"instr": program.Len() - 1,
	})
	return true
}

const (
	encodingCost      = 2
	maxEncodingOffset = 10
)

// NumberEncoding hides numeric constants:
//
//	x = 10   becomes   enc_add_0 = 10 + k
//	                   x = enc_add_0 - k
//
// with k drawn from 1..10. Each encoding costs two instructions of budget.
type NumberEncoding struct{}

func (n *NumberEncoding) Name() string        { return PassEncode }
func (n *NumberEncoding) Description() string { return "Replace numeric constants with offset arithmetic" }

func (n *NumberEncoding) Apply(program *ir.Program, env *Env) bool {
	names := usedNames(program)
	out := make([]ir.Instruction, 0, program.Len())
	changed := false

	for i, inst := range program.Instructions {
		m, ok := inst.(*ir.Move)
		if !ok || !ir.IsNumeral(m.Src1) || !n.fires(env) {
			out = append(out, inst)
			continue
		}

		temp := fmt.Sprintf("enc_add_%d", i)
		if names[temp] {
			env.skipped("CHAOS_SKIPPED_SAFETY", "chaos.safety", diagnostics.Params{
				"reason": "name_in_use",
				"name":   temp,
			})
			out = append(out, inst)
			continue
		}
		if !env.Budget.Take(encodingCost) {
			env.skipped("CHAOS_SKIPPED_BUDGET", "chaos.safety", diagnostics.Params{
				"reason":    "encoding_budget_exceeded",
				"pass":      PassEncode,
				"remaining": env.Budget.Remaining(),
			})
			out = append(out, inst)
			continue
		}

		offset := strconv.Itoa(env.Rand.Intn(maxEncodingOffset) + 1)
		names[temp] = true
		out = append(out,
			&ir.Binary{Op: ir.Add, Dest: temp, Src1: m.Src1, Src2: offset},
			&ir.Binary{Op: ir.Sub, Dest: m.Dest, Src1: temp, Src2: offset},
		)
		changed = true
		env.applied("CHAOS_NUM_ENCODING", "chaos.data.encoding", diagnostics.Params{
			"orig":     m.Src1,
			"enc":      temp + " - " + offset,
			"strategy": "offset",
		})
	}

	program.Instructions = out
	return changed
}

// fires is a fair coin unless a plan sets the probability.
func (n *NumberEncoding) fires(env *Env) bool {
	if env.Plan == nil {
		return env.Rand.Intn(2) == 0
	}
	return env.Rand.Float64() < env.Plan.EncodingProbability()
}

func usedNames(program *ir.Program) map[string]bool {
	names := make(map[string]bool)
	for _, inst := range program.Instructions {
		if d := inst.GetDest(); d != "" {
			names[d] = true
		}
		for _, op := range inst.GetOperands() {
			names[op] = true
		}
	}
	return names
}
