// set.go implements the path set used by the index and the evaluator.
//
// Every operation returns a fresh Set and leaves its operands untouched,
// so sets handed out by an Index snapshot can be combined freely without
// copying first.

package index

import "sort"

// Set is an unordered collection of canonical paths (or tags).
type Set map[string]struct{}

// NewSet returns a set holding items.
func NewSet(items ...string) Set {
	s := make(Set, len(items))
	for _, it := range items {
		s[it] = struct{}{}
	}
	return s
}

// Has reports whether v is a member of s.
func (s Set) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Len returns the number of members. A nil set has length zero.
func (s Set) Len() int { return len(s) }

// Sorted returns the members in ascending byte order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Union returns s ∪ o.
func (s Set) Union(o Set) Set {
	out := make(Set, len(s)+len(o))
	for v := range s {
		out[v] = struct{}{}
	}
	for v := range o {
		out[v] = struct{}{}
	}
	return out
}

// Intersect returns s ∩ o.
func (s Set) Intersect(o Set) Set {
	small, large := s, o
	if len(large) < len(small) {
		small, large = large, small
	}
	out := make(Set, len(small))
	for v := range small {
		if large.Has(v) {
			out[v] = struct{}{}
		}
	}
	return out
}

// Difference returns s − o.
func (s Set) Difference(o Set) Set {
	out := make(Set, len(s))
	for v := range s {
		if !o.Has(v) {
			out[v] = struct{}{}
		}
	}
	return out
}

// SymmetricDifference returns the members in exactly one of s and o.
func (s Set) SymmetricDifference(o Set) Set {
	out := make(Set)
	for v := range s {
		if !o.Has(v) {
			out[v] = struct{}{}
		}
	}
	for v := range o {
		if !s.Has(v) {
			out[v] = struct{}{}
		}
	}
	return out
}

// clone returns a shallow copy of s.
func (s Set) clone() Set {
	out := make(Set, len(s)+1)
	for v := range s {
		out[v] = struct{}{}
	}
	return out
}
