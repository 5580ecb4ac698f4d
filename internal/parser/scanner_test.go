package parser

import (
	"strings"
	"testing"
	"unicode"

	"chaoslab/internal/token"
)

func TestKeywordsAndIdentifiers(t *testing.T) {
	input := "int return main integer mainly _tmp x1 returnValue"
	expected := []token.Kind{
		token.INT, token.RETURN, token.MAIN,
		token.IDENTIFIER, token.IDENTIFIER, token.IDENTIFIER, token.IDENTIFIER, token.IDENTIFIER,
		token.EOF,
	}

	tokens := NewScanner(input).Tokens()

	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(tokens))
	}

	for i, exp := range expected {
		if tokens[i].Kind != exp {
			t.Errorf("token %d: expected %s, got %s", i, exp, tokens[i].Kind)
		}
	}
}

func TestIntegerIsOneIdentifier(t *testing.T) {
	s := NewScanner("integer")

	tok := s.NextToken()
	if tok.Kind != token.IDENTIFIER || tok.Text != "integer" {
		t.Errorf("expected IDENTIFIER \"integer\", got %s", tok)
	}
	if next := s.NextToken(); next.Kind != token.EOF {
		t.Errorf("expected EOF after identifier, got %s", next)
	}
}

func TestNumbers(t *testing.T) {
	tokens := NewScanner("42 0 12345 007").Tokens()
	expectedTexts := []string{"42", "0", "12345", "007"}

	for i, text := range expectedTexts {
		if tokens[i].Kind != token.NUMBER || tokens[i].Text != text {
			t.Errorf("expected NUMBER %q, got %s", text, tokens[i])
		}
	}
}

func TestNumberThenIdentifier(t *testing.T) {
	tokens := NewScanner("10abc").Tokens()

	if tokens[0].Kind != token.NUMBER || tokens[0].Text != "10" {
		t.Errorf("expected NUMBER 10, got %s", tokens[0])
	}
	if tokens[1].Kind != token.IDENTIFIER || tokens[1].Text != "abc" {
		t.Errorf("expected IDENTIFIER abc, got %s", tokens[1])
	}
}

func TestOperatorsAndBrackets(t *testing.T) {
	input := `=+-*/(){};`
	expected := []token.Kind{
		token.ASSIGN, token.PLUS, token.MINUS, token.STAR, token.SLASH,
		token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE, token.SEMICOLON,
	}

	tokens := NewScanner(input).Tokens()

	for i, exp := range expected {
		if tokens[i].Kind != exp {
			t.Errorf("expected %s, got %s", exp, tokens[i].Kind)
		}
		if tokens[i].Text != string(input[i]) {
			t.Errorf("expected text %q, got %q", input[i], tokens[i].Text)
		}
	}
}

func TestEOFIsSticky(t *testing.T) {
	s := NewScanner("  \n\t ")
	for i := 0; i < 3; i++ {
		tok := s.NextToken()
		if tok.Kind != token.EOF || tok.Text != token.EOFText {
			t.Fatalf("call %d: expected EOF sentinel, got %s", i, tok)
		}
	}
}

func TestUnrecognizedCharacter(t *testing.T) {
	tokens := NewScanner("x @ y").Tokens()

	if tokens[1].Kind != token.ILLEGAL {
		t.Fatalf("expected ILLEGAL, got %s", tokens[1].Kind)
	}
	if tokens[1].Text != "@" {
		t.Errorf("expected text @, got %q", tokens[1].Text)
	}
	if tokens[1].Kind.String() != "UNKNOWN" {
		t.Errorf("ILLEGAL should print as UNKNOWN, got %s", tokens[1].Kind)
	}
	if tokens[2].Kind != token.IDENTIFIER {
		t.Errorf("scanning should continue after an unrecognized character, got %s", tokens[2])
	}
}

func TestPositions(t *testing.T) {
	input := "int main() {\n  int x = 10;\n}"
	tokens := NewScanner(input).Tokens()

	testCases := []struct {
		index  int
		text   string
		line   int
		column int
	}{
		{0, "int", 1, 1},
		{1, "main", 1, 5},
		{4, "{", 1, 12},
		{5, "int", 2, 3},
		{6, "x", 2, 7},
		{8, "10", 2, 11},
		{10, "}", 3, 1},
	}

	for _, tc := range testCases {
		tok := tokens[tc.index]
		if tok.Text != tc.text || tok.Line != tc.line || tok.Column != tc.column {
			t.Errorf("token %d: expected %q at %d:%d, got %q at %d:%d",
				tc.index, tc.text, tc.line, tc.column, tok.Text, tok.Line, tok.Column)
		}
		if input[tok.Offset:tok.Offset+len(tok.Text)] != tok.Text {
			t.Errorf("token %d: offset %d does not point at %q", tc.index, tok.Offset, tok.Text)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"int main() { int x = 10; int y = 20; int z = x + y; return z; }",
		"int\ta=1;\n\nint b = a*a ;return b;}",
		"int integer = main_value / 3;",
		"",
	}

	for _, input := range inputs {
		var rebuilt strings.Builder
		s := NewScanner(input)
		for tok := s.NextToken(); tok.Kind != token.EOF; tok = s.NextToken() {
			rebuilt.WriteString(tok.Text)
		}

		expected := strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return -1
			}
			return r
		}, input)

		if rebuilt.String() != expected {
			t.Errorf("round trip of %q produced %q", input, rebuilt.String())
		}
	}
}
