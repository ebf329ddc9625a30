// errors.go defines sentinel errors for validation failures.
//
// Detailed messages are provided by wrapping these with fmt.Errorf in the
// validation functions, so callers match on the category with errors.Is.

package validate

import "errors"

var (
	ErrInvalidPath = errors.New("invalid path")
	ErrInvalidTag  = errors.New("invalid tag")
	ErrTooLong     = errors.New("value too long")
)
