// Package workflow drives the capture → normalize → inference → persist
// pipeline.
//
// The orchestrator is a small state machine:
//
//	Idle → ImageSelected → Processing → {Completed, Failed}
//	Failed → Processing            (retry with the stored image)
//	Completed|Failed → ImageSelected (new selection)
//	any → Idle                     (explicit clear)
//
// Collaborators are injected as narrow interfaces so the pipeline is
// deterministic to test without a real model endpoint or persistence layer.
// At most one inference call is in flight per orchestrator; each run carries a
// request token, and a result whose token has been superseded by a newer
// selection is discarded instead of applied.
package workflow

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/erfanbaree-007/easyRx/internal/history"
	"github.com/erfanbaree-007/easyRx/internal/logger"
	"github.com/erfanbaree-007/easyRx/internal/usage"
	"github.com/erfanbaree-007/easyRx/pkg/models"
)

// State is the workflow phase.
type State int

const (
	StateIdle State = iota
	StateImageSelected
	StateProcessing
	StateCompleted
	StateFailed
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateImageSelected:
		return "image_selected"
	case StateProcessing:
		return "processing"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Normalizer converts raw image bytes into the encoded inference payload.
type Normalizer interface {
	Normalize(raw []byte) (string, error)
}

// InferenceService performs the remote multimodal call.
type InferenceService interface {
	TranslateImage(ctx context.Context, payload, targetLanguage string) (*models.TranslationResult, error)
}

// HistoryRepository records completed translations.
type HistoryRepository interface {
	Append(result models.TranslationResult, targetLanguage string) history.Log
}

// UsageGate decides whether a scan is permitted and accounts for spent scans.
type UsageGate interface {
	CanScan() bool
	RecordScan() usage.State
}

// Orchestrator owns the pipeline state for one workflow instance.
type Orchestrator struct {
	normalizer Normalizer
	inference  InferenceService
	history    HistoryRepository
	gate       UsageGate
	log        zerolog.Logger

	mu        sync.Mutex
	state     State
	image     []byte
	requestID string
	result    *models.TranslationResult
	lastErr   error
}

// New creates an orchestrator in the Idle state.
func New(normalizer Normalizer, inference InferenceService, hist HistoryRepository, gate UsageGate) *Orchestrator {
	return &Orchestrator{
		normalizer: normalizer,
		inference:  inference,
		history:    hist,
		gate:       gate,
		log:        logger.WithComponent("workflow"),
		state:      StateIdle,
	}
}

// SelectImage stores a new image selection and resets any previous result.
// An in-flight run for the previous selection is superseded: its eventual
// result will be discarded.
func (o *Orchestrator) SelectImage(data []byte) error {
	if len(data) == 0 {
		return ErrNoImage
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	o.image = data
	o.result = nil
	o.lastErr = nil
	o.requestID = ""
	o.state = StateImageSelected
	return nil
}

// Process runs the full pipeline for the current selection: quota check,
// normalization, remote inference, then history append on success.
//
// Re-entry while Processing is rejected with ErrAlreadyProcessing and leaves
// the in-flight run untouched. The quota is checked before the remote call is
// spent; the scan is recorded only after the call succeeds.
func (o *Orchestrator) Process(ctx context.Context, targetLanguage string) (*models.TranslationResult, error) {
	o.mu.Lock()
	if o.state == StateProcessing {
		o.mu.Unlock()
		return nil, ErrAlreadyProcessing
	}
	if len(o.image) == 0 {
		o.mu.Unlock()
		return nil, ErrNoImage
	}
	if !o.gate.CanScan() {
		o.mu.Unlock()
		return nil, ErrQuotaExceeded
	}

	token := uuid.NewString()
	o.requestID = token
	o.state = StateProcessing
	o.result = nil
	o.lastErr = nil
	image := o.image
	o.mu.Unlock()

	log := logger.WithRequestID(token)
	log.Info().Str("target_language", targetLanguage).Msg("processing image")

	payload, err := o.normalizer.Normalize(image)
	if err != nil {
		return nil, o.fail(token, err)
	}

	result, err := o.inference.TranslateImage(ctx, payload, targetLanguage)
	if err != nil {
		return nil, o.fail(token, err)
	}

	o.mu.Lock()
	if o.requestID != token {
		o.mu.Unlock()
		log.Warn().Msg("discarding stale translation result")
		return nil, ErrSuperseded
	}
	o.result = result
	o.state = StateCompleted
	o.mu.Unlock()

	o.gate.RecordScan()
	o.history.Append(*result, targetLanguage)

	log.Info().Msg("processing completed")
	return result, nil
}

// Retry re-enters Processing with the stored image after a failure.
func (o *Orchestrator) Retry(ctx context.Context, targetLanguage string) (*models.TranslationResult, error) {
	o.mu.Lock()
	if o.state != StateFailed {
		o.mu.Unlock()
		return nil, ErrNotRetryable
	}
	o.mu.Unlock()

	return o.Process(ctx, targetLanguage)
}

// ShowHistoryEntry displays a past translation. The workflow moves to a
// Completed display state with no associated image, clearing the current
// selection and superseding any in-flight run.
func (o *Orchestrator) ShowHistoryEntry(entry history.Entry) {
	o.mu.Lock()
	defer o.mu.Unlock()

	result := entry.TranslationResult
	o.result = &result
	o.image = nil
	o.lastErr = nil
	o.requestID = ""
	o.state = StateCompleted
}

// Clear resets the workflow to Idle, dropping the selection, result and any
// recorded error. An in-flight run is superseded.
func (o *Orchestrator) Clear() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.image = nil
	o.result = nil
	o.lastErr = nil
	o.requestID = ""
	o.state = StateIdle
}

// State returns the current workflow phase.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Result returns the currently displayed translation, if any.
func (o *Orchestrator) Result() *models.TranslationResult {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.result
}

// Err returns the error recorded by the last failed run, if any.
func (o *Orchestrator) Err() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastErr
}

// fail records a pipeline failure unless the run was superseded meanwhile.
func (o *Orchestrator) fail(token string, err error) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.requestID != token {
		return ErrSuperseded
	}
	o.lastErr = err
	o.state = StateFailed
	o.log.Error().Err(err).Msg("processing failed")
	return err
}
