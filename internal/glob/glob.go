// Package glob filters canonical file paths with shell-style patterns.
//
// Matching is delegated to gobwas/glob with '/' as the separator, so "*"
// stays within one path segment while "**" spans any number of them.
// Patterns come in three shapes:
//
//   - No wildcard ("~/photos", "photos", "."): the directory itself and
//     everything under it
//   - Wildcard but no slash ("*.jpg"): matched against the file name only
//   - Anything else ("/home/*/photos/**"): matched against the full path
//
// A leading "~" is expanded to the home directory, and relative patterns
// are resolved against the working directory, the same way tagged paths
// are.
package glob

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	gg "github.com/gobwas/glob"
	"github.com/mitchellh/go-homedir"

	gpath "github.com/jpl-au/genie/internal/path"
)

// Matcher is a compiled path pattern.
type Matcher struct {
	pattern  string
	baseOnly bool
	prefix   string
	g        gg.Glob
}

// Compile prepares pattern for matching.
func Compile(pattern string) (*Matcher, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, fmt.Errorf("empty pattern")
	}
	expanded, err := homedir.Expand(pattern)
	if err != nil {
		return nil, fmt.Errorf("expand pattern %q: %w", pattern, err)
	}
	expanded = filepath.ToSlash(expanded)

	m := &Matcher{pattern: pattern}
	switch {
	case !hasMeta(expanded):
		canon, err := gpath.Canonical(filepath.FromSlash(expanded))
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", pattern, err)
		}
		m.prefix = canon
		return m, nil
	case !strings.Contains(expanded, "/"):
		m.baseOnly = true
	case !path.IsAbs(expanded) && !filepath.IsAbs(filepath.FromSlash(expanded)):
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", pattern, err)
		}
		expanded = path.Join(filepath.ToSlash(wd), expanded)
	}

	g, err := gg.Compile(expanded, '/')
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	m.g = g
	return m, nil
}

// Match reports whether the canonical path p matches.
func (m *Matcher) Match(p string) bool {
	if m.prefix != "" {
		return gpath.Under(p, m.prefix)
	}
	p = filepath.ToSlash(p)
	if m.baseOnly {
		return m.g.Match(path.Base(p))
	}
	return m.g.Match(p)
}

// String returns the pattern as given.
func (m *Matcher) String() string { return m.pattern }

// Filter returns the members of paths matching pattern, preserving order.
func Filter(paths []string, pattern string) ([]string, error) {
	m, err := Compile(pattern)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if m.Match(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func hasMeta(s string) bool {
	return strings.ContainsAny(s, "*?[{\\")
}
