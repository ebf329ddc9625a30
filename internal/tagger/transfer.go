// transfer.go implements bulk access for export and import.

package tagger

import (
	"context"
	"fmt"

	"github.com/jpl-au/genie/internal/index"
	"github.com/jpl-au/genie/internal/validate"
)

// Pairs returns every (path, tag) pair, sorted by path then tag.
func (s *Service) Pairs(ctx context.Context) ([]index.Pair, error) {
	ix, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return ix.Pairs(), nil
}

// TagMany adds every pair in one write and returns how many were new.
// All pairs are validated first; if any is invalid nothing is written.
func (s *Service) TagMany(ctx context.Context, pairs []index.Pair) (int, error) {
	clean, err := s.validPairs(pairs)
	if err != nil || len(clean) == 0 {
		return 0, err
	}

	added := 0
	_, err = s.mutate(ctx, func(ix *index.Index) (*index.Index, bool) {
		next := index.FromPairs(append(ix.Pairs(), clean...))
		added = next.NumPairs() - ix.NumPairs()
		return next, added > 0
	})
	if err != nil {
		return 0, err
	}
	return added, nil
}

// PreviewMany validates pairs exactly as TagMany does and returns the
// store's pairs before and after the merge, without writing.
func (s *Service) PreviewMany(ctx context.Context, pairs []index.Pair) (before, after []index.Pair, err error) {
	clean, err := s.validPairs(pairs)
	if err != nil {
		return nil, nil, err
	}
	ix, err := s.snapshot(ctx)
	if err != nil {
		return nil, nil, err
	}
	before = ix.Pairs()
	return before, index.FromPairs(append(ix.Pairs(), clean...)).Pairs(), nil
}

// validPairs returns pairs in canonical form, or the first validation error.
func (s *Service) validPairs(pairs []index.Pair) ([]index.Pair, error) {
	clean := make([]index.Pair, 0, len(pairs))
	for i, pr := range pairs {
		p, err := validate.Path(pr.Path, s.maxPath)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		t, err := validate.Tag(pr.Tag, s.maxTag)
		if err != nil {
			return nil, fmt.Errorf("entry %d (%s): %w", i, p, err)
		}
		clean = append(clean, index.Pair{Path: p, Tag: t})
	}
	return clean, nil
}
