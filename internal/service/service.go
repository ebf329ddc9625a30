// Package service defines the shared interface for tag operations.
// Commands, extensions and the MCP server depend on this interface rather
// than on *tagger.Service directly, so they can be tested with fakes.
package service

import (
	"context"

	"github.com/jpl-au/genie/internal/index"
	"github.com/jpl-au/genie/internal/tagger"
)

// Service defines all tag and search operations.
//
// Obtain an implementation with tagger.New() and always call Close() when
// done (use defer).
//
// Example:
//
//	svc, err := tagger.New(ctx, "", "")
//	if err != nil {
//	    return err
//	}
//	defer svc.Close()
//	paths, err := svc.Search(ctx, "photo and not blurry")
type Service interface {
	// Close releases the store. Always defer this after New().
	Close() error

	// Tag associates tag with path. Idempotent. The path is canonicalised
	// ("~" expanded, made absolute, cleaned) and need not exist.
	Tag(ctx context.Context, path, tag string) error

	// Untag removes tag from path and reports whether it was present.
	// Removing an absent tag is not an error.
	Untag(ctx context.Context, path, tag string) (bool, error)

	// ListTags returns the sorted tags on path. Unknown paths have none.
	ListTags(ctx context.Context, path string) ([]string, error)

	// AllTags returns every tag in use, sorted.
	AllTags(ctx context.Context) ([]string, error)

	// Search evaluates a boolean tag expression and returns matching paths,
	// sorted. Malformed expressions return a *tagger.QueryError.
	Search(ctx context.Context, expr string) ([]string, error)

	// SearchAll returns the sorted paths carrying every one of tags.
	SearchAll(ctx context.Context, tags []string) ([]string, error)

	// Explain returns the fully parenthesised form of expr.
	Explain(expr string) (string, error)

	// Pairs returns every (path, tag) pair, sorted by path then tag.
	Pairs(ctx context.Context) ([]index.Pair, error)

	// TagMany adds pairs in a single write and returns how many were new.
	// Nothing is written if any pair is invalid.
	TagMany(ctx context.Context, pairs []index.Pair) (int, error)

	// PreviewMany validates pairs like TagMany and returns the store's
	// pairs before and after merging them, without writing.
	PreviewMany(ctx context.Context, pairs []index.Pair) (before, after []index.Pair, err error)

	// Canonical returns the form path is stored under.
	Canonical(path string) (string, error)

	// Stats returns path, tag and pair counts.
	Stats(ctx context.Context) (tagger.Stats, error)

	// Refresh reloads the index if another process changed the store.
	Refresh(ctx context.Context) (bool, error)

	// Location returns the store path.
	Location() string

	// Backend returns the store backend name ("file" or "sqlite").
	Backend() string
}

var _ Service = (*tagger.Service)(nil)
