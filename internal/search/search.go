// Package search provides tag-expression search with output formatting.
//
// This wraps service.Search with scoping and presentation, separating the
// query logic from how results are printed. Queries combine tags with
// and/or/xor/not (or & | ^ !) and parentheses.
package search

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jpl-au/genie/internal/format"
	"github.com/jpl-au/genie/internal/glob"
	"github.com/jpl-au/genie/internal/service"
)

// Options configures a search operation.
type Options struct {
	All     bool   // Treat args as literal tags that must all match
	Under   string // Restrict results to paths matching this glob or prefix
	Explain bool   // Print the parenthesised query instead of searching
	Count   bool   // Print only the number of matches
	Tree    bool   // Print results as a directory tree
}

// Result contains the outcome of a search operation.
type Result struct {
	Query   string   `json:"query"`
	Explain string   `json:"explain,omitempty"`
	Paths   []string `json:"paths"`
	Count   int      `json:"count"`
}

// Run searches for paths matching args and writes output to w. Without
// All, the args are joined with spaces into a single expression, so
// `genie search photo and not blurry` needs no quoting.
func Run(ctx context.Context, w io.Writer, svc service.Service, args []string, opts Options) (Result, error) {
	expr := strings.Join(args, " ")
	result := Result{Query: expr, Paths: []string{}}

	if opts.Explain && !opts.All {
		s, err := svc.Explain(expr)
		if err != nil {
			return result, err
		}
		result.Explain = s
		_, err = fmt.Fprintln(w, s)
		return result, err
	}

	var paths []string
	var err error
	if opts.All {
		paths, err = svc.SearchAll(ctx, args)
	} else {
		paths, err = svc.Search(ctx, expr)
	}
	if err != nil {
		return result, err
	}

	if opts.Under != "" {
		paths, err = glob.Filter(paths, opts.Under)
		if err != nil {
			return result, err
		}
	}

	if paths != nil {
		result.Paths = paths
	}
	result.Count = len(result.Paths)

	switch {
	case opts.Count:
		_, err = fmt.Fprintln(w, result.Count)
	case opts.Tree:
		err = format.Tree(w, result.Paths)
	default:
		err = format.Lines(w, result.Paths)
	}
	return result, err
}
