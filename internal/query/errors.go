// errors.go defines the positioned errors returned by Lex and Parse.
//
// Both carry a 1-based rune column so callers can point at the offending
// character of the original query string.

package query

import "fmt"

// LexError reports input the lexer cannot tokenise: invalid UTF-8 or a
// NUL byte.
type LexError struct {
	Pos int
	Msg string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at column %d: %s", e.Pos, e.Msg)
}

// ParseError reports a token sequence that does not form an expression:
// unmatched parentheses, missing operands, trailing tokens or empty input.
type ParseError struct {
	Pos      int
	Expected string
	Found    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at column %d: expected %s, found %s", e.Pos, e.Expected, e.Found)
}
