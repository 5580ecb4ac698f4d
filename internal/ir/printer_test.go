package ir

import (
	"bytes"
	"testing"
)

func TestNewPrinter(t *testing.T) {
	printer := NewPrinter()

	if printer == nil {
		t.Fatal("NewPrinter should not return nil")
	}

	if printer.indent != 0 {
		t.Errorf("NewPrinter should have indent 0, got %d", printer.indent)
	}

	if printer.output.Len() != 0 {
		t.Error("NewPrinter should have empty output buffer")
	}
}

func TestPrint(t *testing.T) {
	program := sampleProgram()
	program.AddNoop()

	expected := "x = 10\ny = 20\nz = x + y\nPRINT z\nNOOP\n"
	if got := Print(program); got != expected {
		t.Errorf("Print() =\n%s\nexpected\n%s", got, expected)
	}
}

func TestPrintEmptyProgram(t *testing.T) {
	if got := Print(NewProgram()); got != "" {
		t.Errorf("empty program printed %q", got)
	}
	if got := Print(nil); got != "" {
		t.Errorf("nil program printed %q", got)
	}
}

func TestIndentedPrinter(t *testing.T) {
	p := NewIndentedPrinter(1)
	sampleProgram().Walk(p)

	expected := "  x = 10\n  y = 20\n  z = x + y\n  PRINT z\n"
	if p.String() != expected {
		t.Errorf("indented output = %q", p.String())
	}
}

func TestFprint(t *testing.T) {
	var buf bytes.Buffer
	if err := Fprint(&buf, sampleProgram()); err != nil {
		t.Fatalf("Fprint returned %v", err)
	}
	if buf.String() != PrintProgram(sampleProgram()) {
		t.Errorf("Fprint and PrintProgram disagree: %q", buf.String())
	}
}
