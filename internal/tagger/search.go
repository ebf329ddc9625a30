// search.go implements expression search over the current snapshot.
//
// The query is lexed and parsed before any storage access, so a malformed
// expression fails fast and never touches the store.

package tagger

import (
	"context"
	"fmt"

	"github.com/jpl-au/genie/internal/query"
	"github.com/jpl-au/genie/internal/validate"
)

// QueryError wraps a failure to run a search expression. Err is a
// *query.LexError, *query.ParseError or a storage error.
type QueryError struct {
	Expr string
	Err  error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query %q: %v", e.Expr, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// Search returns the paths matching expr, sorted.
func (s *Service) Search(ctx context.Context, expr string) ([]string, error) {
	e, err := query.Parse(expr)
	if err != nil {
		return nil, &QueryError{Expr: expr, Err: err}
	}
	paths, err := s.eval(ctx, e)
	if err != nil {
		return nil, &QueryError{Expr: expr, Err: err}
	}
	return paths, nil
}

// SearchAll returns the paths carrying every one of tags, sorted. Tags are
// taken literally, so names the query language cannot express still match.
func (s *Service) SearchAll(ctx context.Context, tags []string) ([]string, error) {
	if len(tags) == 0 {
		return nil, fmt.Errorf("%w: no tags given", validate.ErrInvalidTag)
	}
	var e query.Expr
	for _, raw := range tags {
		t, err := validate.Tag(raw, s.maxTag)
		if err != nil {
			return nil, err
		}
		if e == nil {
			e = query.Tag{Name: t}
		} else {
			e = query.And{L: e, R: query.Tag{Name: t}}
		}
	}
	return s.eval(ctx, e)
}

// Explain returns the fully parenthesised form of expr without touching
// the store.
func (s *Service) Explain(expr string) (string, error) {
	e, err := query.Parse(expr)
	if err != nil {
		return "", &QueryError{Expr: expr, Err: err}
	}
	return e.String(), nil
}

func (s *Service) eval(ctx context.Context, e query.Expr) ([]string, error) {
	ix, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return query.Eval(e, ix).Sorted(), nil
}
