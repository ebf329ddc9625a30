// Package transfer exports and imports tag associations as JSON documents.
//
// The document format is the one the file backend persists, so an export
// can be dropped in as a genie.json store and any store can be migrated
// between backends with export followed by import.
package transfer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jpl-au/genie/internal/glob"
	"github.com/jpl-au/genie/internal/index"
	"github.com/jpl-au/genie/internal/service"
	"github.com/jpl-au/genie/internal/store"
)

// ExportOptions configures an export operation.
type ExportOptions struct {
	Under string // Only export paths matching this directory or glob
	Force bool   // Overwrite an existing destination file
}

// ExportResult contains the outcome of an export operation.
type ExportResult struct {
	Dest  string `json:"dest,omitempty"`
	Paths int    `json:"paths"`
	Pairs int    `json:"pairs"`
}

// Export writes the store's pairs as a JSON document. An empty dst or "-"
// writes the document to w; otherwise it is written to the file dst and a
// summary line goes to w.
func Export(ctx context.Context, w io.Writer, svc service.Service, dst string, opts ExportOptions) (ExportResult, error) {
	var result ExportResult

	pairs, err := svc.Pairs(ctx)
	if err != nil {
		return result, err
	}
	if opts.Under != "" {
		pairs, err = filterPairs(pairs, opts.Under)
		if err != nil {
			return result, err
		}
	}

	data, err := store.Encode(pairs)
	if err != nil {
		return result, fmt.Errorf("encode: %w", err)
	}
	result.Pairs = len(pairs)
	result.Paths = countPaths(pairs)

	if dst == "" || dst == "-" {
		_, err = w.Write(data)
		return result, err
	}

	if err := writeFile(dst, data, opts.Force); err != nil {
		return result, err
	}
	result.Dest = dst
	fmt.Fprintf(w, "Exported %d tags on %d paths to %s\n", result.Pairs, result.Paths, dst)
	return result, nil
}

// writeFile writes data to dst through an os.Root on its directory so the
// name cannot escape it.
func writeFile(dst string, data []byte, force bool) error {
	dir, name := filepath.Split(dst)
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	root, err := os.OpenRoot(dir)
	if err != nil {
		return fmt.Errorf("opening destination: %w", err)
	}
	defer root.Close()

	if !force {
		if _, err := root.Stat(name); err == nil {
			return fmt.Errorf("file exists: %s (use --force to overwrite)", dst)
		}
	}

	f, err := root.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", dst, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", dst, err)
	}
	return f.Close()
}

func filterPairs(pairs []index.Pair, pattern string) ([]index.Pair, error) {
	m, err := glob.Compile(pattern)
	if err != nil {
		return nil, err
	}
	out := make([]index.Pair, 0, len(pairs))
	for _, p := range pairs {
		if m.Match(p.Path) {
			out = append(out, p)
		}
	}
	return out, nil
}

func countPaths(pairs []index.Pair) int {
	n := 0
	for i, p := range pairs {
		if i == 0 || p.Path != pairs[i-1].Path {
			n++
		}
	}
	return n
}
