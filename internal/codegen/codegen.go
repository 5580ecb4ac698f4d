// Package codegen renders IR as a didactic assembly listing. The output is
// never assembled; registers are named round-robin from a fixed pool of eight.
package codegen

import (
	"fmt"
	"io"
	"strings"

	"chaoslab/internal/ir"
)

var registerNames = [...]string{"R0", "R1", "R2", "R3", "R4", "R5", "R6", "R7"}

// RegisterFor names the register used by the instruction at index.
func RegisterFor(index int) string {
	return registerNames[index%len(registerNames)]
}

type Options struct {
	// Comments emits a "; <ir>" line ahead of each instruction block.
	Comments bool
}

func DefaultOptions() Options {
	return Options{Comments: true}
}

type generator struct {
	out   io.Writer
	opts  Options
	index int
	err   error
}

// Generate writes the listing for program to out.
func Generate(out io.Writer, program *ir.Program, opts Options) error {
	g := &generator{out: out, opts: opts}

	g.preamble()
	for i, inst := range program.Instructions {
		g.index = i
		if opts.Comments {
			g.line("    ; %s", inst)
		}
		inst.Accept(g)
	}
	g.epilogue()

	return g.err
}

// GenerateString is Generate into a string.
func GenerateString(program *ir.Program, opts Options) string {
	var sb strings.Builder
	_ = Generate(&sb, program, opts)
	return sb.String()
}

func (g *generator) line(format string, args ...any) {
	if g.err != nil {
		return
	}
	_, g.err = fmt.Fprintf(g.out, format+"\n", args...)
}

func (g *generator) preamble() {
	g.line("; Chaos Lab Assembly Output")
	g.line("section .text")
	g.line("global _start")
	g.line("")
	g.line("_start:")
}

func (g *generator) epilogue() {
	g.line("")
	g.line("    ; Exit")
	g.line("    MOV R7, #1")
	g.line("    SWI 0")
}

func (g *generator) VisitMove(m *ir.Move) {
	g.line("    MOV %s, %s", RegisterFor(g.index), m.Src1)
}

func (g *generator) VisitBinary(b *ir.Binary) {
	reg := RegisterFor(g.index)
	mnemonic := b.Op.String()
	switch b.Op {
	case ir.Add, ir.Sub:
		g.line("    MOV %s, %s", reg, b.Src1)
		g.line("    %s %s, %s", mnemonic, reg, b.Src2)
	default:
		g.line("    %s %s, %s, %s", mnemonic, reg, b.Src1, b.Src2)
	}
}

func (g *generator) VisitPrint(p *ir.Print) {
	g.line("    PRINT %s", p.Src1)
}

func (g *generator) VisitNoop(*ir.Noop) {
	g.line("    ; NOP (chaos)")
}
