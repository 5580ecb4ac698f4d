package repl

import (
	"bytes"
	"strings"
	"testing"

	"chaoslab/internal/compiler"

	"github.com/stretchr/testify/assert"
)

func run(input string) string {
	var out bytes.Buffer
	Start(strings.NewReader(input), &out, compiler.DefaultOptions())
	return out.String()
}

func TestEvalPrintsIRAndAssembly(t *testing.T) {
	out := run("int a = 1 + 2; return a;\n")

	assert.Contains(t, out, "IR:\na = 1 + 2\nPRINT a\n")
	assert.Contains(t, out, "Assembly:\n; Chaos Lab Assembly Output")
	assert.NotContains(t, out, "Chaotic IR")
}

func TestChaosToggle(t *testing.T) {
	out := run(":chaos on\n:seed 5\nint a = 1;\n:chaos off\nint b = 2;\n")

	assert.Contains(t, out, "chaos on")
	assert.Contains(t, out, "seed 5")
	assert.Equal(t, 1, strings.Count(out, "Chaotic IR (seed 5)"))
	assert.Contains(t, out, "chaos off")
}

func TestSyntaxErrorKeepsSessionAlive(t *testing.T) {
	out := run("int x 1;\nreturn 3;\n")

	assert.Contains(t, out, "E0100")
	assert.Contains(t, out, "PRINT 3")
}

func TestQuitStopsReading(t *testing.T) {
	out := run(":quit\nreturn 3;\n")
	assert.NotContains(t, out, "PRINT 3")
}

func TestCommandUsage(t *testing.T) {
	out := run(":chaos maybe\n:seed x\n:bogus\n:help\n")

	assert.Contains(t, out, "usage: :chaos on|off")
	assert.Contains(t, out, `invalid seed "x"`)
	assert.Contains(t, out, "unknown command :bogus")
	assert.Contains(t, out, ":quit")
}
