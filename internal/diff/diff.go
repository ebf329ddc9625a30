// Package diff renders line diffs between two tag documents, used by
// "genie import --dry-run" to show what an import would change.
package diff

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// contextLines is the number of unchanged lines shown before/after changes.
// When equal sections exceed 2*contextLines, they're collapsed with "...".
const contextLines = 3

// Lines returns a unified-style diff of old and new, compared line by line.
// Removed lines start with "- ", added lines with "+ ". Identical inputs
// produce an empty string.
func Lines(oldText, newText string) string {
	if oldText == newText {
		return ""
	}
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(oldText, newText)
	d := dmp.DiffMain(a, b, false)
	return format(dmp.DiffCharsToLines(d, lines))
}

// format converts diffs to unified-style text.
func format(diffs []diffmatchpatch.Diff) string {
	var b strings.Builder
	for i, d := range diffs {
		// Trim trailing newline to avoid artefact empty string from Split
		text := strings.TrimSuffix(d.Text, "\n")
		if text == "" {
			continue
		}
		lines := strings.Split(text, "\n")
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			for _, l := range lines {
				b.WriteString("- " + l + "\n")
			}
		case diffmatchpatch.DiffInsert:
			for _, l := range lines {
				b.WriteString("+ " + l + "\n")
			}
		case diffmatchpatch.DiffEqual:
			writeContext(&b, lines, i == 0, i == len(diffs)-1)
		}
	}
	return b.String()
}

// writeContext prints unchanged lines, keeping only those next to a change.
func writeContext(b *strings.Builder, lines []string, first, last bool) {
	head, tail := contextLines, contextLines
	if first {
		head = 0
	}
	if last {
		tail = 0
	}
	if len(lines) <= head+tail {
		for _, l := range lines {
			b.WriteString("  " + l + "\n")
		}
		return
	}
	for _, l := range lines[:head] {
		b.WriteString("  " + l + "\n")
	}
	b.WriteString("  ...\n")
	for _, l := range lines[len(lines)-tail:] {
		b.WriteString("  " + l + "\n")
	}
}
