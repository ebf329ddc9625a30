package transfer

import (
	"context"
	"fmt"
	"io"

	"github.com/jpl-au/genie/internal/diff"
	"github.com/jpl-au/genie/internal/service"
	"github.com/jpl-au/genie/internal/store"
)

// ImportOptions configures an import operation.
type ImportOptions struct {
	DryRun bool // Validate and count without writing
}

// ImportResult contains the outcome of an import operation.
type ImportResult struct {
	Read  int    `json:"read"`  // Pairs in the document
	Added int    `json:"added"` // Pairs that were new to the store
	Dry   bool   `json:"dry_run,omitempty"`
	Diff  string `json:"diff,omitempty"` // Dry run: change to the stored document
}

// Import reads a JSON tag document from r and merges it into the store.
// Existing associations are kept; the import only adds.
func Import(ctx context.Context, w io.Writer, svc service.Service, r io.Reader, opts ImportOptions) (ImportResult, error) {
	result := ImportResult{Dry: opts.DryRun}

	data, err := io.ReadAll(r)
	if err != nil {
		return result, fmt.Errorf("read: %w", err)
	}
	pairs, err := store.Decode(data)
	if err != nil {
		return result, err
	}
	result.Read = len(pairs)

	if opts.DryRun {
		return preview(ctx, w, svc, pairs, result)
	}

	added, err := svc.TagMany(ctx, pairs)
	if err != nil {
		return result, err
	}
	result.Added = added
	fmt.Fprintf(w, "Imported %d tags (%d new)\n", result.Read, result.Added)
	return result, nil
}

// preview validates pairs and reports the change an import would make as
// a diff of the stored document.
func preview(ctx context.Context, w io.Writer, svc service.Service, pairs []store.Pair, result ImportResult) (ImportResult, error) {
	before, after, err := svc.PreviewMany(ctx, pairs)
	if err != nil {
		return result, err
	}
	result.Added = len(after) - len(before)

	oldDoc, err := store.Encode(before)
	if err != nil {
		return result, err
	}
	newDoc, err := store.Encode(after)
	if err != nil {
		return result, err
	}
	result.Diff = diff.Lines(string(oldDoc), string(newDoc))

	fmt.Fprintf(w, "Would import %d tags (%d new)\n", result.Read, result.Added)
	fmt.Fprint(w, result.Diff)
	return result, nil
}
