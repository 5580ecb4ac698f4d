package ir

// This file provides the Program container: an ordered instruction stream owned
// by whoever built it. The chaos pass mutates it in place; codegen reads it.

const initialCapacity = 10

// Program represents an entire compiled source buffer in IR form
type Program struct {
	Instructions []Instruction
}

// NewProgram creates an empty program with a small initial capacity
func NewProgram() *Program {
	return &Program{Instructions: make([]Instruction, 0, initialCapacity)}
}

// Len returns the number of instructions
func (p *Program) Len() int {
	return len(p.Instructions)
}

// Append adds an instruction to the end of the stream
func (p *Program) Append(inst Instruction) {
	p.Instructions = append(p.Instructions, inst)
}

// Walk dispatches every instruction to v in program order
func (p *Program) Walk(v Visitor) {
	for _, inst := range p.Instructions {
		inst.Accept(v)
	}
}

// Clone returns a deep copy; mutating the copy never affects p.
func (p *Program) Clone() *Program {
	c := &Program{Instructions: make([]Instruction, 0, max(len(p.Instructions), initialCapacity))}
	for _, inst := range p.Instructions {
		c.Instructions = append(c.Instructions, inst.clone())
	}
	return c
}

// StripNoops returns a copy of p with every NOOP removed
func (p *Program) StripNoops() *Program {
	c := NewProgram()
	for _, inst := range p.Instructions {
		if _, ok := inst.(*Noop); ok {
			continue
		}
		c.Instructions = append(c.Instructions, inst.clone())
	}
	return c
}

// Count returns how many instructions carry the given opcode
func (p *Program) Count(op Opcode) int {
	n := 0
	for _, inst := range p.Instructions {
		if inst.Opcode() == op {
			n++
		}
	}
	return n
}

// PrintProgram returns a pretty-printed representation of the IR
func PrintProgram(program *Program) string {
	return Print(program)
}
