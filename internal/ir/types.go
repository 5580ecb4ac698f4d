package ir

import "fmt"

// IR types for the chaoslab pipeline.
// The IR is a linear three-address instruction stream: no blocks, no branches.
// Operands are plain text; a numeral and a variable name are told apart only by
// the context they were parsed in.

// Opcode names the operation an instruction performs.
type Opcode int

const (
	MOVE Opcode = iota
	ADD
	SUB
	MUL
	DIV
	PRINT
	NOOP
)

var opcodeNames = [...]string{
	MOVE:  "MOVE",
	ADD:   "ADD",
	SUB:   "SUB",
	MUL:   "MUL",
	DIV:   "DIV",
	PRINT: "PRINT",
	NOOP:  "NOOP",
}

func (o Opcode) String() string {
	if o < 0 || int(o) >= len(opcodeNames) {
		return fmt.Sprintf("Opcode(%d)", int(o))
	}
	return opcodeNames[o]
}

// BinaryOp selects the arithmetic performed by a Binary instruction.
type BinaryOp int

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div

	numBinaryOps
)

type binaryOpInfo struct {
	opcode      Opcode
	symbol      string
	commutative bool
}

// Every BinaryOp must have an entry here; TestBinaryOpTable guards it.
var binaryOps = [numBinaryOps]binaryOpInfo{
	Add: {opcode: ADD, symbol: "+", commutative: true},
	Sub: {opcode: SUB, symbol: "-"},
	Mul: {opcode: MUL, symbol: "*", commutative: true},
	Div: {opcode: DIV, symbol: "/"},
}

// BinaryOps returns every arithmetic operator in declaration order.
func BinaryOps() []BinaryOp {
	return []BinaryOp{Add, Sub, Mul, Div}
}

func (b BinaryOp) Opcode() Opcode { return binaryOps[b].opcode }
func (b BinaryOp) Symbol() string { return binaryOps[b].symbol }
func (b BinaryOp) String() string { return binaryOps[b].opcode.String() }

// IsCommutative reports whether the two source operands may be exchanged
// without changing the computed value. Only ADD and MUL qualify.
func (b BinaryOp) IsCommutative() bool { return binaryOps[b].commutative }

// BinaryOpFromSymbol maps an operator's source spelling to its BinaryOp.
func BinaryOpFromSymbol(symbol string) (BinaryOp, bool) {
	for _, op := range BinaryOps() {
		if op.Symbol() == symbol {
			return op, true
		}
	}
	return 0, false
}

// Instruction is one of *Move, *Binary, *Print or *Noop. The set is closed:
// the unexported clone method keeps other packages from adding members, and
// consumers dispatch through Visitor so a new member cannot go unhandled.
type Instruction interface {
	Opcode() Opcode
	GetDest() string
	GetOperands() []string
	Accept(v Visitor)
	String() string
	clone() Instruction
}

// Move copies a variable or numeral into Dest: `dest = src1`.
type Move struct {
	Dest string
	Src1 string
}

// Binary computes `dest = src1 <op> src2`.
type Binary struct {
	Op   BinaryOp
	Dest string
	Src1 string
	Src2 string
}

// Print emits a value. `return v;` lowers to Print.
type Print struct {
	Src1 string
}

// Noop has no effect. Only the chaos pass creates it.
type Noop struct{}

// Implementation of interfaces

func (m *Move) Opcode() Opcode        { return MOVE }
func (m *Move) GetDest() string       { return m.Dest }
func (m *Move) GetOperands() []string { return []string{m.Src1} }
func (m *Move) Accept(v Visitor)      { v.VisitMove(m) }
func (m *Move) String() string        { return fmt.Sprintf("%s = %s", m.Dest, m.Src1) }
func (m *Move) clone() Instruction    { return &Move{Dest: m.Dest, Src1: m.Src1} }

func (b *Binary) Opcode() Opcode        { return b.Op.Opcode() }
func (b *Binary) GetDest() string       { return b.Dest }
func (b *Binary) GetOperands() []string { return []string{b.Src1, b.Src2} }
func (b *Binary) Accept(v Visitor)      { v.VisitBinary(b) }
func (b *Binary) clone() Instruction {
	return &Binary{Op: b.Op, Dest: b.Dest, Src1: b.Src1, Src2: b.Src2}
}

func (p *Print) Opcode() Opcode        { return PRINT }
func (p *Print) GetDest() string       { return "" }
func (p *Print) GetOperands() []string { return []string{p.Src1} }
func (p *Print) Accept(v Visitor)      { v.VisitPrint(p) }
func (p *Print) String() string        { return fmt.Sprintf("PRINT %s", p.Src1) }
func (p *Print) clone() Instruction    { return &Print{Src1: p.Src1} }

func (n *Noop) Opcode() Opcode        { return NOOP }
func (n *Noop) GetDest() string       { return "" }
func (n *Noop) GetOperands() []string { return nil }
func (n *Noop) Accept(v Visitor)      { v.VisitNoop(n) }
func (n *Noop) String() string        { return "NOOP" }
func (n *Noop) clone() Instruction    { return &Noop{} }

func (b *Binary) String() string {
	return fmt.Sprintf("%s = %s %s %s", b.Dest, b.Src1, b.Op.Symbol(), b.Src2)
}

// Swap exchanges the source operands in place.
func (b *Binary) Swap() {
	b.Src1, b.Src2 = b.Src2, b.Src1
}

// Visitor is implemented by every IR consumer. Adding an instruction type adds
// a method here, which breaks the build of any consumer that does not handle it.
type Visitor interface {
	VisitMove(m *Move)
	VisitBinary(b *Binary)
	VisitPrint(p *Print)
	VisitNoop(n *Noop)
}
