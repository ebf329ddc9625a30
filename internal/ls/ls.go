// Package ls lists tagged paths, optionally with their tags.
//
// Unlike search, ls takes no query. It walks the whole store, or the part
// of it under a directory or glob.
package ls

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/jpl-au/genie/internal/format"
	"github.com/jpl-au/genie/internal/glob"
	"github.com/jpl-au/genie/internal/service"
)

// Options configures a list operation.
type Options struct {
	Under   string // Only list paths under a directory or matching a glob
	Long    bool   // Show each path's tags
	Tree    bool   // Display as a directory tree
	Reverse bool   // Reverse sort order
}

// Entry is one tagged path.
type Entry struct {
	Path string   `json:"path"`
	Tags []string `json:"tags"`
}

// Result contains the outcome of a list operation.
type Result struct {
	Entries []Entry `json:"entries"`
}

// Paths returns the listed paths in order.
func (r Result) Paths() []string {
	out := make([]string, len(r.Entries))
	for i, e := range r.Entries {
		out[i] = e.Path
	}
	return out
}

// Run lists tagged paths and writes formatted output to w.
func Run(ctx context.Context, w io.Writer, svc service.Service, opts Options) (Result, error) {
	result := Result{Entries: []Entry{}}

	pairs, err := svc.Pairs(ctx)
	if err != nil {
		return result, err
	}

	var match *glob.Matcher
	if opts.Under != "" {
		if match, err = glob.Compile(opts.Under); err != nil {
			return result, err
		}
	}

	// Pairs arrive sorted by path, so each path's tags are contiguous
	for _, p := range pairs {
		if match != nil && !match.Match(p.Path) {
			continue
		}
		n := len(result.Entries)
		if n > 0 && result.Entries[n-1].Path == p.Path {
			result.Entries[n-1].Tags = append(result.Entries[n-1].Tags, p.Tag)
			continue
		}
		result.Entries = append(result.Entries, Entry{Path: p.Path, Tags: []string{p.Tag}})
	}

	if opts.Reverse {
		slices.Reverse(result.Entries)
	}

	switch {
	case opts.Tree:
		err = format.Tree(w, result.Paths())
	case opts.Long:
		for _, e := range result.Entries {
			if _, err = fmt.Fprintf(w, "%s\t%s\n", e.Path, strings.Join(e.Tags, ", ")); err != nil {
				break
			}
		}
	default:
		err = format.Lines(w, result.Paths())
	}
	return result, err
}
