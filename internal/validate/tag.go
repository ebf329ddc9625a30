// tag.go implements tag string validation.
//
// Tags are opaque labels compared exactly. Surrounding whitespace is not
// part of a tag, so "beach " and "beach" are the same label, but case is
// preserved: "Beach" and "beach" are different.

package validate

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// reserved holds the characters the query language gives meaning to.
const reserved = "&|!^()"

// Tag validates a tag string and returns its trimmed form.
//
// Validation rules:
//   - Surrounding whitespace is trimmed
//   - Empty tags rejected (meaningless label)
//   - Null bytes and invalid UTF-8 rejected
//   - Max length (in bytes) enforced if maxLen > 0
func Tag(t string, maxLen int) (string, error) {
	t = strings.TrimSpace(t)
	if t == "" {
		return "", fmt.Errorf("%w: empty tag", ErrInvalidTag)
	}
	if strings.ContainsRune(t, 0) {
		return "", fmt.Errorf("%w: null byte in tag", ErrInvalidTag)
	}
	if !utf8.ValidString(t) {
		return "", fmt.Errorf("%w: tag is not valid UTF-8", ErrInvalidTag)
	}
	if maxLen > 0 && len(t) > maxLen {
		return "", fmt.Errorf("%w: tag exceeds %d bytes", ErrTooLong, maxLen)
	}
	return t, nil
}

// Queryable reports whether t can be referenced from a search expression.
// Tags holding whitespace or operator characters can be stored and listed
// but never matched by a query, because the lexer splits them apart.
func Queryable(t string) bool {
	if t == "" {
		return false
	}
	for _, r := range t {
		if unicode.IsSpace(r) || strings.ContainsRune(reserved, r) {
			return false
		}
	}
	switch strings.ToLower(t) {
	case "and", "or", "not", "xor":
		return false
	}
	return true
}
