package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Program is the parse tree of a whole source buffer. Unlike the compiling
// parser, the grammar is strict: a stray token is a parse error.
type Program struct {
	Pos        lexer.Position
	Statements []*Statement `@@*`
}

type Statement struct {
	Pos    lexer.Position
	Entry  *EntryMarker `  @@`
	Decl   *Declaration `| @@`
	Return *Return      `| @@`
	Close  *Close       `| @@`
}

// EntryMarker is `int main() {`
type EntryMarker struct {
	Pos  lexer.Position
	Name string `"int" @"main" "(" ")" "{"`
}

type Declaration struct {
	Pos  lexer.Position
	Name string `"int" @Ident "="`
	Expr *Expr  `@@ ";"`
}

type Return struct {
	Pos   lexer.Position
	Value *Term `"return" @@ ";"`
}

type Close struct {
	Pos   lexer.Position
	Brace string `@"}"`
}

// Expr is a single term or exactly one binary operation
type Expr struct {
	Pos   lexer.Position
	Left  *Term  `@@`
	Op    string `[ @("+" | "-" | "*" | "/")`
	Right *Term  `  @@ ]`
}

type Term struct {
	Pos    lexer.Position
	Ident  *string `  @Ident`
	Number *string `| @Integer`
}

func (t *Term) Text() string {
	if t.Ident != nil {
		return *t.Ident
	}
	if t.Number != nil {
		return *t.Number
	}
	return ""
}

func (e *Expr) IsBinary() bool {
	return e.Op != ""
}
