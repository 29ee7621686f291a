package inference

import (
	"errors"
	"fmt"
)

// Common inference errors
var (
	// ErrMissingAPIKey is returned when no API key is configured for the
	// inference service.
	ErrMissingAPIKey = errors.New("missing API key: set OPENAI_API_KEY environment variable")

	// ErrServiceFailure is returned for transport, service, auth or quota
	// failures of the remote call. Recoverable via manual retry.
	ErrServiceFailure = errors.New("inference service request failed")

	// ErrEmptyResponse is returned when the service answered without any
	// usable payload.
	ErrEmptyResponse = errors.New("inference service returned an empty response")

	// ErrMalformedResponse is returned when the response payload is present
	// but is not valid JSON or is missing a required field.
	ErrMalformedResponse = errors.New("inference service returned a malformed response")

	// ErrSpeechSynthesis is returned when text-to-speech conversion fails.
	// Isolated to the optional audio capability.
	ErrSpeechSynthesis = errors.New("speech synthesis failed")
)

// InferenceError wraps errors with additional context about the failed remote
// call. The detail is meant for logs, not for end users.
type InferenceError struct {
	// Op is the operation that failed (e.g., "TranslateImage").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string

	// StatusCode is the HTTP status of the remote response, when known.
	StatusCode int
}

// Error implements the error interface.
func (e *InferenceError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("inference: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("inference: %s failed (status %d): %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("inference: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *InferenceError) Unwrap() error {
	return e.Err
}

// Is implements error matching for wrapped sentinel errors.
func (e *InferenceError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewInferenceError creates a new InferenceError.
func NewInferenceError(op string, err error, details string) *InferenceError {
	return &InferenceError{Op: op, Err: err, Details: details}
}
