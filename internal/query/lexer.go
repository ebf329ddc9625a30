// lexer.go turns a query string into tokens.
//
// The lexer is a single forward pass over runes. Whitespace separates
// tokens but is otherwise ignored; the six reserved characters always form
// a token of their own, so "a&b" and "a & b" lex identically.

package query

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

var symbols = map[rune]Kind{
	'&': AND,
	'|': OR,
	'^': XOR,
	'!': NOT,
	'(': LPAREN,
	')': RPAREN,
}

var words = map[string]Kind{
	"and": AND,
	"or":  OR,
	"xor": XOR,
	"not": NOT,
}

// Lex tokenises input. The returned slice always ends with an EOF token.
func Lex(input string) ([]Token, error) {
	var toks []Token
	col := 0
	i := 0
	for i < len(input) {
		r, size := utf8.DecodeRuneInString(input[i:])
		col++
		if r == utf8.RuneError && size == 1 {
			return nil, &LexError{Pos: col, Msg: "invalid UTF-8"}
		}
		if r == 0 {
			return nil, &LexError{Pos: col, Msg: "NUL byte"}
		}

		if unicode.IsSpace(r) {
			i += size
			continue
		}
		if k, ok := symbols[r]; ok {
			toks = append(toks, Token{Kind: k, Text: string(r), Pos: col})
			i += size
			continue
		}

		// Word: read until whitespace, a reserved character or end of input
		start, startCol := i, col
		i += size
		for i < len(input) {
			r, size = utf8.DecodeRuneInString(input[i:])
			if r == utf8.RuneError && size == 1 {
				return nil, &LexError{Pos: col + 1, Msg: "invalid UTF-8"}
			}
			if r == 0 {
				return nil, &LexError{Pos: col + 1, Msg: "NUL byte"}
			}
			if unicode.IsSpace(r) || isSymbol(r) {
				break
			}
			col++
			i += size
		}

		text := input[start:i]
		if k, ok := words[strings.ToLower(text)]; ok {
			toks = append(toks, Token{Kind: k, Text: text, Pos: startCol})
		} else {
			toks = append(toks, Token{Kind: TAG, Text: text, Pos: startCol})
		}
	}
	toks = append(toks, Token{Kind: EOF, Pos: col + 1})
	return toks, nil
}

func isSymbol(r rune) bool {
	_, ok := symbols[r]
	return ok
}
