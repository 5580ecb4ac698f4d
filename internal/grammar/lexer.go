package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

var ChaosLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		// Keywords must win over identifiers, but only as whole words
		{"Keyword", `(int|return|main)\b`, nil},

		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},

		{"Integer", `[0-9]+`, nil},

		{"Operator", `[-+*/=]`, nil},

		{"Punctuation", `[(){};]`, nil},

		{"Whitespace", `[ \t\r\n\v\f]+`, nil},
	},
})
