package query

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"a", "a"},
		{"(a)", "a"},
		{"((a))", "a"},
		{"a and b", "(a and b)"},
		{"a & b", "(a and b)"},
		{"not a", "(not a)"},
		{"!a", "(not a)"},
		{"not not a", "(not (not a))"},

		// Precedence: OR < XOR < AND < NOT
		{"a or b and c", "(a or (b and c))"},
		{"a and b or c", "((a and b) or c)"},
		{"a xor b and c", "(a xor (b and c))"},
		{"a or b xor c", "(a or (b xor c))"},
		{"not a and b", "((not a) and b)"},
		{"a | b ^ c & !d", "(a or (b xor (c and (not d))))"},

		// Left associativity
		{"a and b and c", "((a and b) and c)"},
		{"a or b or c", "((a or b) or c)"},
		{"a xor b xor c", "((a xor b) xor c)"},

		// Grouping overrides precedence
		{"(a or b) and c", "((a or b) and c)"},
		{"photo and (beach or sunset) and not blurry", "((photo and (beach or sunset)) and (not blurry))"},

		// Keyword case and tag case
		{"Beach AND NOT Sunset", "(Beach and (not Sunset))"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			e, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, e.String())
		})
	}
}

func TestParse_CanonicalFormReparses(t *testing.T) {
	for _, q := range []string{"a | b ^ c & !d", "not (a or b) and c", "x"} {
		e, err := Parse(q)
		require.NoError(t, err)
		again, err := Parse(e.String())
		require.NoError(t, err)
		assert.Equal(t, e, again, "canonical form of %q does not reparse to the same tree", q)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		input string
		pos   int
	}{
		{"", 1},
		{"   ", 4},
		{"a and", 6},
		{"and a", 1},
		{"(a", 3},
		{"a)", 2},
		{"()", 2},
		{"a b", 3},
		{"a and or b", 7},
		{"a && b", 4},
		{"not", 4},
		{"(a or b))", 9},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			var pe *ParseError
			require.True(t, errors.As(err, &pe), "want *ParseError, got %T: %v", err, err)
			assert.Equal(t, tt.pos, pe.Pos)
			assert.NotEmpty(t, pe.Expected)
			assert.NotEmpty(t, pe.Found)
		})
	}
}

func TestParseTokens_MissingEOF(t *testing.T) {
	toks := make([]Token, 2, 8)
	toks[0] = Token{Kind: TAG, Text: "beach", Pos: 1}
	toks[1] = Token{Kind: AND, Text: "and", Pos: 7}
	spare := toks[:3]
	spare[2] = Token{Kind: TAG, Text: "sentinel", Pos: 99}

	_, err := ParseTokens(toks)
	var pe *ParseError
	require.True(t, errors.As(err, &pe), "want *ParseError, got %T: %v", err, err)
	assert.Equal(t, 10, pe.Pos, "EOF sits one past the last token")
	assert.Equal(t, "end of query", pe.Found)

	assert.Equal(t, Token{Kind: TAG, Text: "sentinel", Pos: 99}, spare[2], "caller's backing array untouched")
}

func TestParseTokens_Empty(t *testing.T) {
	_, err := ParseTokens(nil)
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 1, pe.Pos)
}

func TestParse_LexErrorPassesThrough(t *testing.T) {
	_, err := Parse("a and \x00")
	var le *LexError
	assert.True(t, errors.As(err, &le))
}

func TestParse_DepthLimit(t *testing.T) {
	deep := ""
	for i := 0; i < maxDepth+1; i++ {
		deep += "("
	}
	_, err := Parse(deep + "a")
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
}

func TestTags(t *testing.T) {
	e, err := Parse("a and (b or not a) xor c")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, Tags(e))
}
