// Package path canonicalises filesystem paths before they reach the tag index.
//
// Every path genie stores or looks up passes through Canonical exactly once,
// at the service boundary. Two paths refer to the same entry if and only if
// their canonical strings are equal, so callers never normalise again.
//
// Canonicalisation rules:
//   - Whitespace is part of the path; blank paths are rejected
//   - A leading "~" expands to the user's home directory
//   - Relative paths are resolved against the working directory
//   - The result is cleaned ("a/./b/../c" becomes "a/c")
//   - Symlinks are NOT resolved and the path need not exist
package path

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
)

// ErrInvalid indicates the provided path cannot be canonicalised.
var ErrInvalid = errors.New("invalid path")

// Canonical returns the absolute, cleaned form of p.
func Canonical(p string) (string, error) {
	if strings.TrimSpace(p) == "" {
		return "", ErrInvalid
	}
	if IsCanonical(p) {
		return p, nil
	}

	expanded, err := homedir.Expand(p)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return filepath.Clean(abs), nil
}

// IsCanonical reports whether p is already in the form Canonical returns.
// Canonical is the identity on such paths.
func IsCanonical(p string) bool {
	return filepath.IsAbs(p) && filepath.Clean(p) == p
}

// Under reports whether p is prefix itself or lies beneath it.
// Both arguments are expected in canonical form.
//
// Examples (prefix="/home/zach/photos"):
//   - "/home/zach/photos" -> true
//   - "/home/zach/photos/2019/beach.jpg" -> true
//   - "/home/zach/photos-old/a.jpg" -> false
func Under(p, prefix string) bool {
	if p == prefix {
		return true
	}
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(p, prefix)
}
