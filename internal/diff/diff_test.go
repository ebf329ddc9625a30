package diff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLines_Identical(t *testing.T) {
	assert.Empty(t, Lines("a\nb\n", "a\nb\n"))
}

func TestLines_WholeLines(t *testing.T) {
	got := Lines("a\nbeach\nc\n", "a\nbeach\nbeaches\nc\n")
	assert.Equal(t, "  a\n  beach\n+ beaches\n  c\n", got)
}

func TestLines_Removed(t *testing.T) {
	got := Lines("a\nb\nc\n", "a\nc\n")
	assert.Equal(t, "  a\n- b\n  c\n", got)
}

func TestLines_CollapsesContext(t *testing.T) {
	var old []string
	for i := range 20 {
		old = append(old, strings.Repeat("x", i+1))
	}
	oldText := strings.Join(old, "\n") + "\n"
	newText := oldText + "added\n"

	got := Lines(oldText, newText)
	assert.True(t, strings.HasPrefix(got, "  ...\n"), got)
	assert.True(t, strings.HasSuffix(got, "+ added\n"), got)
	assert.Equal(t, 5, strings.Count(got, "\n"), "ellipsis, three context lines and the insert")
}
