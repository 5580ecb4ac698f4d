package compiler_test

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"chaoslab/internal/chaos"
	"chaoslab/internal/codegen"
	"chaoslab/internal/compiler"
	"chaoslab/internal/config"
	"chaoslab/internal/diagnostics"
	"chaoslab/internal/ir"
	"chaoslab/internal/parser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileDemoWithoutChaos(t *testing.T) {
	dm := diagnostics.NewManager()
	opts := compiler.DefaultOptions()
	opts.Diagnostics = dm

	result, err := compiler.Compile("demo", compiler.DemoSource, opts)
	require.NoError(t, err)

	assert.Nil(t, result.Chaotic)
	assert.Nil(t, result.ChaosReport)
	assert.Same(t, result.Original, result.Final())
	assert.Equal(t, "x = 10\ny = 20\nz = x + y\nPRINT z\n", ir.Print(result.Original))
	assert.Equal(t, codegen.GenerateString(result.Original, codegen.DefaultOptions()), result.Assembly)

	assert.Equal(t, 1, dm.Count(compiler.EventIRBuilt))
	assert.Equal(t, 1, dm.Count(compiler.EventCodegenComplete))
	assert.Empty(t, dm.WithPrefix(diagnostics.PrefixChaos))
}

func TestCompileWithChaosLeavesOriginalIntact(t *testing.T) {
	dm := diagnostics.NewManager()
	opts := compiler.DefaultOptions()
	opts.Chaos = true
	opts.Diagnostics = dm
	opts.ChaosOptions = []chaos.Option{chaos.WithSeed(7)}

	result, err := compiler.Compile("demo", compiler.DemoSource, opts)
	require.NoError(t, err)
	require.NotNil(t, result.Chaotic)
	require.NotNil(t, result.ChaosReport)

	assert.Equal(t, 4, result.Original.Len())
	assert.Same(t, result.Chaotic, result.Final())
	assert.Equal(t, int64(7), result.ChaosReport.Seed)
	assert.Equal(t, result.Original.Len()+result.ChaosReport.InstructionsAdded(), result.Chaotic.Len())
	assert.NotEmpty(t, dm.WithPrefix(diagnostics.PrefixChaos))
	assert.Equal(t, codegen.GenerateString(result.Chaotic, opts.Codegen), result.Assembly)
}

func TestCompileSyntaxError(t *testing.T) {
	dm := diagnostics.NewManager()
	opts := compiler.DefaultOptions()
	opts.Diagnostics = dm

	_, err := compiler.Compile("bad", "int x 10;", opts)
	require.Error(t, err)

	var syntaxErr *parser.SyntaxError
	require.True(t, stderrors.As(err, &syntaxErr))
	assert.Equal(t, "E0100", syntaxErr.Code)

	events := dm.WithPrefix(diagnostics.PrefixParse)
	require.Len(t, events, 1)
	assert.Equal(t, compiler.EventParseFailed, events[0].ID)
	assert.Equal(t, diagnostics.Error, events[0].Severity)
	assert.Equal(t, "1:7", events[0].Params["at"])
}

func TestCompileReportsIgnoredTokens(t *testing.T) {
	dm := diagnostics.NewManager()
	opts := compiler.DefaultOptions()
	opts.Diagnostics = dm

	result, err := compiler.Compile("stray", "x ; int a = 1;", opts)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Warnings)
	assert.Equal(t, len(result.Warnings), dm.Count(compiler.EventParseWarning))
}

func TestCompileNilDiagnostics(t *testing.T) {
	result, err := compiler.Compile("demo", compiler.DemoSource, compiler.Options{Chaos: true})
	require.NoError(t, err)
	assert.NotNil(t, result.Chaotic)
}

func TestOptionsFromConfig(t *testing.T) {
	cfg, err := config.Parse(strings.NewReader("chaos:\n  enabled: true\n  seed: 3\n  passes: [encode]\ncodegen:\n  comments: false\n"))
	require.NoError(t, err)

	opts, err := compiler.OptionsFromConfig(cfg, nil)
	require.NoError(t, err)
	assert.True(t, opts.Chaos)
	assert.False(t, opts.Codegen.Comments)

	result, err := compiler.Compile("demo", compiler.DemoSource, opts)
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.ChaosReport.Seed)
	assert.Zero(t, result.ChaosReport.Applied(chaos.PassCommute))
	assert.NotContains(t, result.Assembly, "    ; x = 10")
}

func TestCompileFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.cl")
	require.NoError(t, os.WriteFile(path, []byte("int a = 6;\nint b = a * 7;\nreturn b;\n"), 0o644))

	result, err := compiler.CompileFile(path, compiler.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, path, result.Name)
	assert.Equal(t, 3, result.Original.Len())

	_, err = compiler.CompileFile(filepath.Join(t.TempDir(), "missing.cl"), compiler.DefaultOptions())
	assert.ErrorContains(t, err, "failed to read file")
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "500ns", compiler.FormatDuration(500*time.Nanosecond))
	assert.Equal(t, "1.5μs", compiler.FormatDuration(1500*time.Nanosecond))
	assert.Equal(t, "2.0ms", compiler.FormatDuration(2*time.Millisecond))
	assert.Equal(t, "1.50s", compiler.FormatDuration(1500*time.Millisecond))
}
