// Package inference sends normalized image payloads to a hosted multimodal
// model and parses its structured JSON answer.
//
// One translation is exactly one request: the model is asked to describe the
// image, extract all visible text, translate it into the requested target
// language and auto-detect the source language, answering in a fixed JSON
// schema. The package performs no retries; retrying is a caller decision.
//
// Required Environment Variables:
//   - OPENAI_API_KEY: API key for the inference endpoint
//
// Optional Environment Variables:
//   - OPENAI_MODEL: vision-capable chat model (default gpt-4o-mini)
//   - OPENAI_BASE_URL: alternate OpenAI-compatible endpoint
package inference

import (
	"context"

	"github.com/erfanbaree-007/easyRx/pkg/models"
)

// Service is the remote multimodal inference boundary.
type Service interface {
	// TranslateImage sends a base64 JPEG payload plus a target language name
	// and returns the validated structured result. The originalText,
	// translatedText and imageDescription fields are required by the response
	// contract even when empty; detectedLanguage defaults to "" when absent.
	TranslateImage(ctx context.Context, payload, targetLanguage string) (*models.TranslationResult, error)

	// SynthesizeSpeech converts text to MP3 audio using a fixed voice
	// profile. Independent of the translation pipeline; failures here never
	// invalidate an already produced TranslationResult.
	SynthesizeSpeech(ctx context.Context, text string) ([]byte, error)
}
