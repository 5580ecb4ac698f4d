package grammar

import (
	"fmt"
	"strings"
)

func indent(level int) string {
	return strings.Repeat("    ", level)
}

func (p *Program) String() string {
	var b strings.Builder
	b.WriteString("Program\n")
	for _, s := range p.Statements {
		b.WriteString(s.StringWithIndent(1))
	}
	return b.String()
}

func (s *Statement) StringWithIndent(level int) string {
	switch {
	case s.Entry != nil:
		return s.Entry.StringWithIndent(level)
	case s.Decl != nil:
		return s.Decl.StringWithIndent(level)
	case s.Return != nil:
		return s.Return.StringWithIndent(level)
	case s.Close != nil:
		return fmt.Sprintf("%sClose } (%d:%d)\n", indent(level), s.Close.Pos.Line, s.Close.Pos.Column)
	}
	return ""
}

func (e *EntryMarker) StringWithIndent(level int) string {
	return fmt.Sprintf("%sEntry %s() (%d:%d)\n", indent(level), e.Name, e.Pos.Line, e.Pos.Column)
}

func (d *Declaration) StringWithIndent(level int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%sDeclaration %s (%d:%d)\n", indent(level), d.Name, d.Pos.Line, d.Pos.Column))
	b.WriteString(d.Expr.StringWithIndent(level + 1))
	return b.String()
}

func (r *Return) StringWithIndent(level int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%sReturn (%d:%d)\n", indent(level), r.Pos.Line, r.Pos.Column))
	b.WriteString(r.Value.StringWithIndent(level + 1))
	return b.String()
}

func (e *Expr) StringWithIndent(level int) string {
	if !e.IsBinary() {
		return e.Left.StringWithIndent(level)
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%sBinary %s\n", indent(level), e.Op))
	b.WriteString(e.Left.StringWithIndent(level + 1))
	b.WriteString(e.Right.StringWithIndent(level + 1))
	return b.String()
}

func (t *Term) StringWithIndent(level int) string {
	kind := "Ident"
	if t.Number != nil {
		kind = "Number"
	}
	return fmt.Sprintf("%s%s %s\n", indent(level), kind, t.Text())
}

// Source renders the tree back as one statement per line
func (p *Program) Source() string {
	var b strings.Builder
	for _, s := range p.Statements {
		switch {
		case s.Entry != nil:
			b.WriteString("int main() {\n")
		case s.Decl != nil:
			b.WriteString(fmt.Sprintf("int %s = %s;\n", s.Decl.Name, s.Decl.Expr))
		case s.Return != nil:
			b.WriteString(fmt.Sprintf("return %s;\n", s.Return.Value.Text()))
		case s.Close != nil:
			b.WriteString("}\n")
		}
	}
	return b.String()
}

func (e *Expr) String() string {
	if !e.IsBinary() {
		return e.Left.Text()
	}
	return fmt.Sprintf("%s %s %s", e.Left.Text(), e.Op, e.Right.Text())
}
