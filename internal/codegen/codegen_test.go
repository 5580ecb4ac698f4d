package codegen

import (
	"errors"
	"strings"
	"testing"

	"chaoslab/internal/ir"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func demoProgram() *ir.Program {
	p := ir.NewProgram()
	p.AddMove("x", "10")
	p.AddMove("y", "20")
	p.AddBinary(ir.Add, "z", "x", "y")
	p.AddPrint("z")
	return p
}

func TestRegisterFor(t *testing.T) {
	assert.Equal(t, "R0", RegisterFor(0))
	assert.Equal(t, "R7", RegisterFor(7))
	assert.Equal(t, "R0", RegisterFor(8))
	assert.Equal(t, "R3", RegisterFor(19))
}

func TestGenerateDemo(t *testing.T) {
	out := GenerateString(demoProgram(), Options{})

	expected := `; Chaos Lab Assembly Output
section .text
global _start

_start:
    MOV R0, 10
    MOV R1, 20
    MOV R2, x
    ADD R2, y
    PRINT z

    ; Exit
    MOV R7, #1
    SWI 0
`
	assert.Equal(t, expected, out)
}

func TestAddUsesPositionalRegister(t *testing.T) {
	lines := strings.Split(GenerateString(demoProgram(), DefaultOptions()), "\n")

	found := false
	for i := 0; i+1 < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "MOV R2, x" {
			assert.Equal(t, "ADD R2, y", strings.TrimSpace(lines[i+1]))
			found = true
		}
	}
	assert.True(t, found, "expected MOV R2, x in output")
}

func TestTemplatesPerOpcode(t *testing.T) {
	p := ir.NewProgram()
	p.AddBinary(ir.Sub, "a", "b", "c")
	p.AddBinary(ir.Mul, "d", "e", "f")
	p.AddBinary(ir.Div, "g", "h", "2")
	p.AddNoop()

	out := GenerateString(p, Options{})
	assert.Contains(t, out, "    MOV R0, b\n    SUB R0, c\n")
	assert.Contains(t, out, "    MUL R1, e, f\n")
	assert.Contains(t, out, "    DIV R2, h, 2\n")
	assert.Contains(t, out, "    ; NOP (chaos)\n")
}

func TestComments(t *testing.T) {
	out := GenerateString(demoProgram(), DefaultOptions())
	assert.Contains(t, out, "    ; z = x + y\n    MOV R2, x\n    ADD R2, y\n")
	assert.Contains(t, out, "    ; PRINT z\n    PRINT z\n")
}

func TestRegisterWrapsAfterEight(t *testing.T) {
	p := ir.NewProgram()
	for i := 0; i < 9; i++ {
		p.AddMove("v", "1")
	}
	out := GenerateString(p, Options{})
	assert.Equal(t, 2, strings.Count(out, "MOV R0, 1"))
}

func TestEmptyProgram(t *testing.T) {
	out := GenerateString(ir.NewProgram(), Options{})
	assert.True(t, strings.HasPrefix(out, "; Chaos Lab Assembly Output\n"))
	assert.True(t, strings.HasSuffix(out, "    MOV R7, #1\n    SWI 0\n"))
}

type failingWriter struct{ n int }

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.n == 0 {
		return 0, errors.New("disk full")
	}
	w.n--
	return len(p), nil
}

func TestGeneratePropagatesWriteError(t *testing.T) {
	err := Generate(&failingWriter{n: 3}, demoProgram(), Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
