// Package query implements genie's tag-query expression language.
//
// A query is a boolean expression over tag names:
//
//	photo and (beach or sunset) and not blurry
//	work ^ personal
//	!draft & (2019 | 2020)
//
// Operators have word and symbol forms which are interchangeable. Words are
// matched case-insensitively; tag names are not.
//
//	OR   or  |     lowest precedence
//	XOR  xor ^
//	AND  and &
//	NOT  not !     highest precedence (prefix)
//
// Binary operators are left-associative. Parentheses group. Any maximal run
// of characters that is neither whitespace nor one of & | ! ^ ( ) and is not
// an operator word names a tag.
//
// Processing is split into three pure stages: Lex turns text into tokens,
// Parse builds an immutable Expr tree, and Eval reduces a tree to a set of
// paths against a Source. None of them perform I/O.
package query
