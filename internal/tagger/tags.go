// tags.go implements the tag mutation and listing operations.

package tagger

import (
	"context"

	"github.com/jpl-au/genie/internal/index"
	"github.com/jpl-au/genie/internal/validate"
)

// Canonical validates path and returns the form the index stores it under.
func (s *Service) Canonical(path string) (string, error) {
	return validate.Path(path, s.maxPath)
}

// Tag associates tag with path. Tagging a pair that already exists
// succeeds without writing. The path need not exist on disk.
func (s *Service) Tag(ctx context.Context, path, tag string) error {
	p, err := validate.Path(path, s.maxPath)
	if err != nil {
		return err
	}
	t, err := validate.Tag(tag, s.maxTag)
	if err != nil {
		return err
	}
	_, err = s.mutate(ctx, func(ix *index.Index) (*index.Index, bool) {
		return ix.With(p, t)
	})
	return err
}

// Untag removes tag from path. It reports whether the pair existed;
// removing an absent pair is not an error.
func (s *Service) Untag(ctx context.Context, path, tag string) (bool, error) {
	p, err := validate.Path(path, s.maxPath)
	if err != nil {
		return false, err
	}
	t, err := validate.Tag(tag, s.maxTag)
	if err != nil {
		return false, err
	}
	return s.mutate(ctx, func(ix *index.Index) (*index.Index, bool) {
		return ix.Without(p, t)
	})
}

// ListTags returns the tags on path, sorted. An unknown path has no tags.
func (s *Service) ListTags(ctx context.Context, path string) ([]string, error) {
	p, err := validate.Path(path, s.maxPath)
	if err != nil {
		return nil, err
	}
	ix, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return ix.TagsOf(p).Sorted(), nil
}

// AllTags returns every tag in use, sorted.
func (s *Service) AllTags(ctx context.Context) ([]string, error) {
	ix, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return ix.Tags(), nil
}
