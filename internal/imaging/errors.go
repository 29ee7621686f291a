package imaging

import (
	"errors"
	"fmt"
)

// Common normalization errors
var (
	// ErrImageDecode is returned when the input bytes are not a decodable
	// image. Unrecoverable for the given file; the caller should prompt for a
	// different image instead of retrying.
	ErrImageDecode = errors.New("image could not be decoded")

	// ErrEmptyImage is returned when no image data was supplied at all.
	ErrEmptyImage = errors.New("no image data provided")

	// ErrImageEncode is returned when re-encoding the normalized image fails.
	ErrImageEncode = errors.New("image could not be re-encoded")
)

// NormalizeError wraps errors with context about the normalization failure.
type NormalizeError struct {
	// Op is the operation that failed (e.g., "Normalize", "decode").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *NormalizeError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("imaging: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("imaging: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *NormalizeError) Unwrap() error {
	return e.Err
}

// Is implements error matching for wrapped sentinel errors.
func (e *NormalizeError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewNormalizeError creates a new NormalizeError.
func NewNormalizeError(op string, err error, details string) *NormalizeError {
	return &NormalizeError{Op: op, Err: err, Details: details}
}
