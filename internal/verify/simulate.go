package verify

import (
	"fmt"
	"sort"

	"chaoslab/internal/errors"
	"chaoslab/internal/ir"
)

// Result is the observable behavior of a simulated program
type Result struct {
	Outputs []int64          // every PRINT, in order
	Vars    map[string]int64 // final variable values
}

// Value is the program's result: the last printed value, or 0.
func (r *Result) Value() int64 {
	if len(r.Outputs) == 0 {
		return 0
	}
	return r.Outputs[len(r.Outputs)-1]
}

// SimulationError reports the instruction at which evaluation failed
type SimulationError struct {
	Code        string
	Index       int
	Instruction string
	Message     string
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("instruction %d (%s): %s[%s]", e.Index, e.Instruction, e.Message, e.Code)
}

type simulator struct {
	result *Result
	index  int
	inst   ir.Instruction
	err    error
}

// Simulate evaluates the IR over int64 variables. DIV truncates toward zero
// and NOOP does nothing.
func Simulate(program *ir.Program) (*Result, error) {
	s := &simulator{result: &Result{Vars: make(map[string]int64)}}
	for i, inst := range program.Instructions {
		s.index, s.inst = i, inst
		inst.Accept(s)
		if s.err != nil {
			return nil, s.err
		}
	}
	return s.result, nil
}

func (s *simulator) fail(code, format string, args ...any) {
	s.err = &SimulationError{
		Code:        code,
		Index:       s.index,
		Instruction: s.inst.String(),
		Message:     fmt.Sprintf(format, args...),
	}
}

func (s *simulator) value(operand string) (int64, bool) {
	if ir.IsNumeral(operand) {
		v, err := ir.NumeralValue(operand)
		if err != nil {
			s.fail(errors.ErrorNumeralOutOfRange, "numeral %s out of range", operand)
			return 0, false
		}
		return v, true
	}

	v, ok := s.result.Vars[operand]
	if !ok {
		msg := fmt.Sprintf("undefined variable '%s'", operand)
		if similar := errors.SimilarNames(operand, s.defined()); len(similar) > 0 {
			msg += fmt.Sprintf(" (did you mean '%s'?)", similar[0])
		}
		s.fail(errors.ErrorUndefinedVariable, "%s", msg)
		return 0, false
	}
	return v, true
}

func (s *simulator) defined() []string {
	names := make([]string, 0, len(s.result.Vars))
	for name := range s.result.Vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *simulator) VisitMove(m *ir.Move) {
	if v, ok := s.value(m.Src1); ok {
		s.result.Vars[m.Dest] = v
	}
}

func (s *simulator) VisitBinary(b *ir.Binary) {
	x, ok := s.value(b.Src1)
	if !ok {
		return
	}
	y, ok := s.value(b.Src2)
	if !ok {
		return
	}

	var v int64
	switch b.Op {
	case ir.Add:
		v = x + y
	case ir.Sub:
		v = x - y
	case ir.Mul:
		v = x * y
	case ir.Div:
		if y == 0 {
			s.fail(errors.ErrorDivisionByZero, "division by zero")
			return
		}
		v = x / y
	}
	s.result.Vars[b.Dest] = v
}

func (s *simulator) VisitPrint(p *ir.Print) {
	if v, ok := s.value(p.Src1); ok {
		s.result.Outputs = append(s.result.Outputs, v)
	}
}

func (s *simulator) VisitNoop(*ir.Noop) {}
