// parser.go implements a recursive descent parser over Lex output.
//
// Grammar, lowest precedence first:
//
//	expr    := orExpr
//	orExpr  := xorExpr (OR xorExpr)*
//	xorExpr := andExpr (XOR andExpr)*
//	andExpr := notExpr (AND notExpr)*
//	notExpr := NOT notExpr | atom
//	atom    := TAG | LPAREN expr RPAREN
//
// Each level loops rather than recursing on its right operand, which makes
// the binary operators left-associative.

package query

import (
	"slices"
	"unicode/utf8"
)

// maxDepth bounds nesting of parentheses and NOT so a hostile query cannot
// exhaust the goroutine stack.
const maxDepth = 1000

// Parse lexes and parses input into an expression tree.
func Parse(input string) (Expr, error) {
	toks, err := Lex(input)
	if err != nil {
		return nil, err
	}
	return ParseTokens(toks)
}

// ParseTokens parses a token slice produced by Lex. A missing trailing EOF
// is supplied without modifying toks.
func ParseTokens(toks []Token) (Expr, error) {
	if len(toks) == 0 || toks[len(toks)-1].Kind != EOF {
		end := 1
		if n := len(toks); n > 0 {
			last := toks[n-1]
			end = last.Pos + utf8.RuneCountInString(last.Text)
		}
		toks = append(slices.Clip(toks), Token{Kind: EOF, Pos: end})
	}
	p := &parser{toks: toks}
	if p.peek().Kind == EOF {
		return nil, p.fail("an expression")
	}
	e, err := p.orExpr()
	if err != nil {
		return nil, err
	}
	if p.peek().Kind != EOF {
		return nil, p.fail("an operator or end of query")
	}
	return e, nil
}

type parser struct {
	toks  []Token
	pos   int
	depth int
}

func (p *parser) peek() Token { return p.toks[p.pos] }

func (p *parser) next() Token {
	t := p.toks[p.pos]
	if t.Kind != EOF {
		p.pos++
	}
	return t
}

func (p *parser) fail(expected string) *ParseError {
	t := p.peek()
	return &ParseError{Pos: t.Pos, Expected: expected, Found: t.describe()}
}

func (p *parser) orExpr() (Expr, error) {
	l, err := p.xorExpr()
	if err != nil {
		return nil, err
	}
	for p.peek().Kind == OR {
		p.next()
		r, err := p.xorExpr()
		if err != nil {
			return nil, err
		}
		l = Or{L: l, R: r}
	}
	return l, nil
}

func (p *parser) xorExpr() (Expr, error) {
	l, err := p.andExpr()
	if err != nil {
		return nil, err
	}
	for p.peek().Kind == XOR {
		p.next()
		r, err := p.andExpr()
		if err != nil {
			return nil, err
		}
		l = Xor{L: l, R: r}
	}
	return l, nil
}

func (p *parser) andExpr() (Expr, error) {
	l, err := p.notExpr()
	if err != nil {
		return nil, err
	}
	for p.peek().Kind == AND {
		p.next()
		r, err := p.notExpr()
		if err != nil {
			return nil, err
		}
		l = And{L: l, R: r}
	}
	return l, nil
}

func (p *parser) notExpr() (Expr, error) {
	if p.peek().Kind != NOT {
		return p.atom()
	}
	p.next()
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	x, err := p.notExpr()
	if err != nil {
		return nil, err
	}
	return Not{X: x}, nil
}

func (p *parser) atom() (Expr, error) {
	switch t := p.peek(); t.Kind {
	case TAG:
		p.next()
		return Tag{Name: t.Text}, nil
	case LPAREN:
		p.next()
		if err := p.enter(); err != nil {
			return nil, err
		}
		defer p.leave()
		e, err := p.orExpr()
		if err != nil {
			return nil, err
		}
		if p.peek().Kind != RPAREN {
			return nil, p.fail("')'")
		}
		p.next()
		return e, nil
	default:
		return nil, p.fail("a tag, 'not' or '('")
	}
}

func (p *parser) enter() error {
	p.depth++
	if p.depth > maxDepth {
		return p.fail("less deeply nested expression")
	}
	return nil
}

func (p *parser) leave() { p.depth-- }
