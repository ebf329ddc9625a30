// Package index holds genie's in-memory tag index.
//
// An Index is an immutable snapshot of the (path, tag) relation, kept in two
// directions: tags by path and paths by tag. The two maps are always
// consistent: p is in PathsOf(t) exactly when t is in TagsOf(p). A path
// with no tags is not present, and neither is a tag with no paths.
//
// Mutations never modify a snapshot in place. With and Without return a new
// Index that shares every untouched inner set with its parent, so a search
// running against an older snapshot keeps seeing a consistent view while
// a writer publishes a new one.
package index

import (
	"sort"
	"sync"
)

// Pair is a single (path, tag) association. The persisted form of the
// index is a set of unique pairs.
type Pair struct {
	Path string `json:"path"`
	Tag  string `json:"tag"`
}

// Index is an immutable tag index snapshot. The zero value is not usable;
// construct with New or FromPairs.
type Index struct {
	byPath map[string]Set
	byTag  map[string]Set
	pairs  int

	universeOnce sync.Once
	universe     Set
}

// New returns an empty index.
func New() *Index {
	return &Index{
		byPath: make(map[string]Set),
		byTag:  make(map[string]Set),
	}
}

// FromPairs builds an index from pairs. Duplicate pairs collapse.
func FromPairs(pairs []Pair) *Index {
	ix := New()
	for _, p := range pairs {
		tags, ok := ix.byPath[p.Path]
		if !ok {
			tags = make(Set)
			ix.byPath[p.Path] = tags
		}
		if tags.Has(p.Tag) {
			continue
		}
		tags[p.Tag] = struct{}{}

		paths, ok := ix.byTag[p.Tag]
		if !ok {
			paths = make(Set)
			ix.byTag[p.Tag] = paths
		}
		paths[p.Path] = struct{}{}
		ix.pairs++
	}
	return ix
}

// TagsOf returns the tags on path, or an empty set for an unknown path.
// The returned set belongs to the snapshot and must not be modified.
func (ix *Index) TagsOf(path string) Set {
	if s, ok := ix.byPath[path]; ok {
		return s
	}
	return Set{}
}

// PathsOf returns the paths carrying tag, or an empty set for an unknown tag.
// The returned set belongs to the snapshot and must not be modified.
func (ix *Index) PathsOf(tag string) Set {
	if s, ok := ix.byTag[tag]; ok {
		return s
	}
	return Set{}
}

// Universe returns every path that carries at least one tag. It is computed
// on first use and cached for the lifetime of the snapshot.
func (ix *Index) Universe() Set {
	ix.universeOnce.Do(func() {
		u := make(Set, len(ix.byPath))
		for p := range ix.byPath {
			u[p] = struct{}{}
		}
		ix.universe = u
	})
	return ix.universe
}

// Tags returns every tag in use, sorted.
func (ix *Index) Tags() []string {
	out := make([]string, 0, len(ix.byTag))
	for t := range ix.byTag {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Has reports whether path carries tag.
func (ix *Index) Has(path, tag string) bool {
	return ix.TagsOf(path).Has(tag)
}

// Pairs returns every association ordered by path, then tag.
func (ix *Index) Pairs() []Pair {
	out := make([]Pair, 0, ix.pairs)
	paths := make([]string, 0, len(ix.byPath))
	for p := range ix.byPath {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		for _, t := range ix.byPath[p].Sorted() {
			out = append(out, Pair{Path: p, Tag: t})
		}
	}
	return out
}

// NumPaths returns the number of tagged paths.
func (ix *Index) NumPaths() int { return len(ix.byPath) }

// NumTags returns the number of distinct tags.
func (ix *Index) NumTags() int { return len(ix.byTag) }

// NumPairs returns the number of (path, tag) associations.
func (ix *Index) NumPairs() int { return ix.pairs }

// With returns a snapshot where path carries tag. If the pair is already
// present it returns ix itself and false.
func (ix *Index) With(path, tag string) (*Index, bool) {
	if ix.Has(path, tag) {
		return ix, false
	}
	next := ix.shallow()

	tags := ix.byPath[path].clone()
	tags[tag] = struct{}{}
	next.byPath[path] = tags

	paths := ix.byTag[tag].clone()
	paths[path] = struct{}{}
	next.byTag[tag] = paths

	next.pairs = ix.pairs + 1
	return next, true
}

// Without returns a snapshot where path no longer carries tag. If the pair
// is absent it returns ix itself and false. Paths and tags left with no
// associations are dropped entirely.
func (ix *Index) Without(path, tag string) (*Index, bool) {
	if !ix.Has(path, tag) {
		return ix, false
	}
	next := ix.shallow()

	tags := ix.byPath[path].clone()
	delete(tags, tag)
	if len(tags) == 0 {
		delete(next.byPath, path)
	} else {
		next.byPath[path] = tags
	}

	paths := ix.byTag[tag].clone()
	delete(paths, path)
	if len(paths) == 0 {
		delete(next.byTag, tag)
	} else {
		next.byTag[tag] = paths
	}

	next.pairs = ix.pairs - 1
	return next, true
}

// shallow copies the outer maps. Inner sets are shared until replaced.
func (ix *Index) shallow() *Index {
	next := &Index{
		byPath: make(map[string]Set, len(ix.byPath)+1),
		byTag:  make(map[string]Set, len(ix.byTag)+1),
	}
	for k, v := range ix.byPath {
		next.byPath[k] = v
	}
	for k, v := range ix.byTag {
		next.byTag[k] = v
	}
	return next
}
