package ir

import (
	"fmt"
	"io"
	"strings"
)

// Printer provides pretty-printing for IR
type Printer struct {
	indent int
	output strings.Builder
}

// NewPrinter creates a new IR printer
func NewPrinter() *Printer {
	return &Printer{indent: 0}
}

// NewIndentedPrinter creates a printer that prefixes every line with depth levels of indentation
func NewIndentedPrinter(depth int) *Printer {
	return &Printer{indent: depth}
}

// Print returns the string representation of an IR program
func Print(program *Program) string {
	p := NewPrinter()
	p.printProgram(program)
	return p.output.String()
}

// Fprint writes the listing of program to w
func Fprint(w io.Writer, program *Program) error {
	_, err := io.WriteString(w, Print(program))
	return err
}

// Helper methods

func (p *Printer) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.output.WriteString("  ")
	}
}

func (p *Printer) writeLine(format string, args ...interface{}) {
	p.writeIndent()
	p.output.WriteString(fmt.Sprintf(format, args...))
	p.output.WriteString("\n")
}

// String returns everything printed so far
func (p *Printer) String() string {
	return p.output.String()
}

func (p *Printer) printProgram(program *Program) {
	if program == nil {
		return
	}
	program.Walk(p)
}

func (p *Printer) VisitMove(m *Move) {
	p.writeLine("%s = %s", m.Dest, m.Src1)
}

func (p *Printer) VisitBinary(b *Binary) {
	p.writeLine("%s = %s %s %s", b.Dest, b.Src1, b.Op.Symbol(), b.Src2)
}

func (p *Printer) VisitPrint(pr *Print) {
	p.writeLine("PRINT %s", pr.Src1)
}

func (p *Printer) VisitNoop(*Noop) {
	p.writeLine("NOOP")
}
