package token

var keywords = map[string]Kind{
	"int":    INT,
	"return": RETURN,
	"main":   MAIN,
}

// Keywords returns the reserved words in a stable order.
func Keywords() []string {
	return []string{"int", "return", "main"}
}

func LookupIdent(ident string) Kind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return IDENTIFIER
}
