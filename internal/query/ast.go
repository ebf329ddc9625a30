// ast.go defines the immutable expression tree produced by Parse.
//
// Each node renders itself in a fully parenthesised canonical form, so two
// queries that parse to the same tree print identically regardless of the
// operator spelling or redundant parentheses in the source text.

package query

// Expr is a node of a parsed query.
type Expr interface {
	String() string
	expr()
}

// Tag matches paths carrying Name.
type Tag struct{ Name string }

// And matches paths matched by both L and R.
type And struct{ L, R Expr }

// Or matches paths matched by L, R or both.
type Or struct{ L, R Expr }

// Xor matches paths matched by exactly one of L and R.
type Xor struct{ L, R Expr }

// Not matches tagged paths not matched by X.
type Not struct{ X Expr }

func (Tag) expr() {}
func (And) expr() {}
func (Or) expr()  {}
func (Xor) expr() {}
func (Not) expr() {}

func (e Tag) String() string { return e.Name }
func (e And) String() string { return "(" + e.L.String() + " and " + e.R.String() + ")" }
func (e Or) String() string  { return "(" + e.L.String() + " or " + e.R.String() + ")" }
func (e Xor) String() string { return "(" + e.L.String() + " xor " + e.R.String() + ")" }
func (e Not) String() string { return "(not " + e.X.String() + ")" }

// Tags returns the distinct tag names referenced by e in first-seen order.
func Tags(e Expr) []string {
	seen := make(map[string]bool)
	var out []string
	var walk func(Expr)
	walk = func(e Expr) {
		switch n := e.(type) {
		case Tag:
			if !seen[n.Name] {
				seen[n.Name] = true
				out = append(out, n.Name)
			}
		case And:
			walk(n.L)
			walk(n.R)
		case Or:
			walk(n.L)
			walk(n.R)
		case Xor:
			walk(n.L)
			walk(n.R)
		case Not:
			walk(n.X)
		}
	}
	walk(e)
	return out
}
