// Package validate provides input validation for genie's domain types.
//
// Validation runs at the service boundary, before anything reaches the tag
// index or the store. Each function returns the normalised value on success
// or an error wrapping one of the sentinels in errors.go.
//
// # Validation Functions
//
// Tag trims and checks a tag label.
// Path canonicalises a file path and enforces the configured length limit.
// Queryable reports whether a stored tag can be named in a search expression.
//
// # Error Handling
//
// All validation errors wrap ErrInvalidTag, ErrInvalidPath or ErrTooLong.
// Use errors.Is() for type-safe error checking:
//
//	if errors.Is(err, validate.ErrInvalidTag) {
//	    // handle invalid tag
//	}
package validate
