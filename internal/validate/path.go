package validate

import (
	"fmt"
	"strings"

	"github.com/jpl-au/genie/internal/path"
)

// Path validates a file path and returns its canonical form.
//
// Validation rules:
//   - Empty paths rejected
//   - Null bytes rejected
//   - Canonicalisation via path.Canonical (home expansion, absolute, cleaned).
//     A path that is already canonical is returned as given, so callers that
//     canonicalised at the boundary are not normalised a second time.
//   - Max length enforced on the canonical form if maxLen > 0
func Path(p string, maxLen int) (string, error) {
	if strings.TrimSpace(p) == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	if strings.ContainsRune(p, 0) {
		return "", fmt.Errorf("%w: null byte in path", ErrInvalidPath)
	}

	canon, err := path.Canonical(p)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidPath, err)
	}
	if maxLen > 0 && len(canon) > maxLen {
		return "", fmt.Errorf("%w: path exceeds %d bytes", ErrTooLong, maxLen)
	}
	return canon, nil
}
