package ir

import (
	"fmt"
	"strconv"
)

// Helper methods used by the parser and the chaos passes to grow a program.

// AddMove appends `dest = src`
func (p *Program) AddMove(dest, src string) *Move {
	m := &Move{Dest: dest, Src1: src}
	p.Append(m)
	return m
}

// AddBinary appends `dest = src1 <op> src2`
func (p *Program) AddBinary(op BinaryOp, dest, src1, src2 string) *Binary {
	b := &Binary{Op: op, Dest: dest, Src1: src1, Src2: src2}
	p.Append(b)
	return b
}

// AddPrint appends `PRINT src`
func (p *Program) AddPrint(src string) *Print {
	pr := &Print{Src1: src}
	p.Append(pr)
	return pr
}

// AddNoop appends a NOOP
func (p *Program) AddNoop() *Noop {
	n := &Noop{}
	p.Append(n)
	return n
}

// AddInstruction is the untyped constructor: it builds the instruction for op
// from the three operand slots and checks the operand invariants of that op.
// Empty strings stand for absent operands.
func (p *Program) AddInstruction(op Opcode, dest, src1, src2 string) (Instruction, error) {
	inst, err := NewInstruction(op, dest, src1, src2)
	if err != nil {
		return nil, err
	}
	p.Append(inst)
	return inst, nil
}

// NewInstruction builds a single instruction from an opcode and operand slots
func NewInstruction(op Opcode, dest, src1, src2 string) (Instruction, error) {
	var inst Instruction
	switch op {
	case MOVE:
		inst = &Move{Dest: dest, Src1: src1}
	case ADD:
		inst = &Binary{Op: Add, Dest: dest, Src1: src1, Src2: src2}
	case SUB:
		inst = &Binary{Op: Sub, Dest: dest, Src1: src1, Src2: src2}
	case MUL:
		inst = &Binary{Op: Mul, Dest: dest, Src1: src1, Src2: src2}
	case DIV:
		inst = &Binary{Op: Div, Dest: dest, Src1: src1, Src2: src2}
	case PRINT:
		inst = &Print{Src1: src1}
	case NOOP:
		inst = &Noop{}
	default:
		return nil, fmt.Errorf("unknown opcode %s", op)
	}

	if err := checkOperands(op, dest, src1, src2); err != nil {
		return nil, err
	}
	return inst, nil
}

func checkOperands(op Opcode, dest, src1, src2 string) error {
	want := operandShape(op)
	if (dest != "") != want.dest {
		return fmt.Errorf("%s: dest operand %s", op, presence(want.dest))
	}
	if (src1 != "") != want.src1 {
		return fmt.Errorf("%s: src1 operand %s", op, presence(want.src1))
	}
	if (src2 != "") != want.src2 {
		return fmt.Errorf("%s: src2 operand %s", op, presence(want.src2))
	}
	return nil
}

type shape struct{ dest, src1, src2 bool }

func operandShape(op Opcode) shape {
	switch op {
	case MOVE:
		return shape{dest: true, src1: true}
	case PRINT:
		return shape{src1: true}
	case NOOP:
		return shape{}
	default:
		return shape{dest: true, src1: true, src2: true}
	}
}

func presence(required bool) string {
	if required {
		return "is required"
	}
	return "must be empty"
}

// Validate checks every instruction against the operand invariants
func (p *Program) Validate() error {
	for i, inst := range p.Instructions {
		dest, src1, src2 := Slots(inst)
		if err := checkOperands(inst.Opcode(), dest, src1, src2); err != nil {
			return fmt.Errorf("instruction %d: %w", i, err)
		}
	}
	return nil
}

// Slots flattens an instruction back into its dest/src1/src2 text slots
func Slots(inst Instruction) (dest, src1, src2 string) {
	ops := inst.GetOperands()
	dest = inst.GetDest()
	if len(ops) > 0 {
		src1 = ops[0]
	}
	if len(ops) > 1 {
		src2 = ops[1]
	}
	return dest, src1, src2
}

// IsNumeral reports whether an operand is a decimal literal rather than a name
func IsNumeral(operand string) bool {
	if operand == "" {
		return false
	}
	for i := 0; i < len(operand); i++ {
		if operand[i] < '0' || operand[i] > '9' {
			return false
		}
	}
	return true
}

// NumeralValue parses a decimal literal operand
func NumeralValue(operand string) (int64, error) {
	if !IsNumeral(operand) {
		return 0, fmt.Errorf("%q is not a numeral", operand)
	}
	return strconv.ParseInt(operand, 10, 64)
}
