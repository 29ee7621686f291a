package workflow

import "errors"

// Orchestrator guard errors. These reject an operation without moving the
// workflow to the Failed state; pipeline failures surface as the categorized
// errors of the imaging and inference packages.
var (
	// ErrNoImage is returned when processing is requested without a selected
	// image.
	ErrNoImage = errors.New("no image selected")

	// ErrAlreadyProcessing is returned when processing is re-invoked while a
	// run is already in flight. The second invocation is a no-op.
	ErrAlreadyProcessing = errors.New("processing already in progress")

	// ErrQuotaExceeded is returned when the free-tier daily scan quota is
	// exhausted. The remote call is rejected before being spent.
	ErrQuotaExceeded = errors.New("daily free scan quota exceeded")

	// ErrSuperseded is returned when a result arrived for an image that is no
	// longer the current selection; the late result is discarded.
	ErrSuperseded = errors.New("result superseded by a newer selection")

	// ErrNotRetryable is returned when Retry is called outside the Failed
	// state.
	ErrNotRetryable = errors.New("nothing to retry")
)
