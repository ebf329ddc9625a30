package query

// Kind identifies the category of a token.
type Kind int

const (
	EOF Kind = iota
	TAG
	AND
	OR
	XOR
	NOT
	LPAREN
	RPAREN
)

var kindNames = [...]string{
	EOF:    "end of query",
	TAG:    "tag",
	AND:    "'and'",
	OR:     "'or'",
	XOR:    "'xor'",
	NOT:    "'not'",
	LPAREN: "'('",
	RPAREN: "')'",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Token is a single lexical unit. Text holds the tag name for TAG tokens
// and the source spelling for operators. Pos is the 1-based rune column of
// the token's first character.
type Token struct {
	Kind Kind
	Text string
	Pos  int
}

// describe renders the token for error messages.
func (t Token) describe() string {
	switch t.Kind {
	case EOF:
		return "end of query"
	case TAG:
		return "tag " + quote(t.Text)
	default:
		return quote(t.Text)
	}
}

func quote(s string) string { return "'" + s + "'" }
