package inference

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/erfanbaree-007/easyRx/internal/logger"
	"github.com/erfanbaree-007/easyRx/pkg/models"
)

const (
	// DefaultModel is the vision-capable chat model used when OPENAI_MODEL is
	// not set.
	DefaultModel = "gpt-4o-mini"

	// speechModel and speechVoice are the fixed text-to-speech profile.
	speechModel = openai.TTSModel1
	speechVoice = openai.VoiceAlloy

	maxResponseTokens = 2048
)

// OpenAIService implements Service against an OpenAI-compatible endpoint.
type OpenAIService struct {
	client *openai.Client
	model  string
	log    zerolog.Logger
}

// NewOpenAIService creates a service configured from the environment.
func NewOpenAIService() (*OpenAIService, error) {
	const op = "NewOpenAIService"

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, NewInferenceError(op, ErrMissingAPIKey, "")
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		cfg.BaseURL = baseURL
	}

	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = DefaultModel
	}

	return NewOpenAIServiceWithClient(openai.NewClientWithConfig(cfg), model), nil
}

// NewOpenAIServiceWithClient creates a service with an explicit client, used
// by tests and callers with custom transport needs.
func NewOpenAIServiceWithClient(client *openai.Client, model string) *OpenAIService {
	return &OpenAIService{
		client: client,
		model:  model,
		log:    logger.WithComponent("inference"),
	}
}

// translationSchema is the response schema the model is required to follow.
// detectedLanguage is intentionally not required: the model omits it when the
// image contains no text.
var translationSchema = jsonschema.Definition{
	Type: jsonschema.Object,
	Properties: map[string]jsonschema.Definition{
		"originalText": {
			Type:        jsonschema.String,
			Description: "The raw text extracted from the image.",
		},
		"translatedText": {
			Type:        jsonschema.String,
			Description: "The extracted text translated into the target language.",
		},
		"detectedLanguage": {
			Type:        jsonschema.String,
			Description: "The name of the language detected in the image.",
		},
		"imageDescription": {
			Type:        jsonschema.String,
			Description: "A brief description of the visual content of the image.",
		},
	},
	Required: []string{"originalText", "translatedText", "imageDescription"},
}

// TranslateImage implements Service.
func (s *OpenAIService) TranslateImage(ctx context.Context, payload, targetLanguage string) (*models.TranslationResult, error) {
	const op = "TranslateImage"

	prompt := fmt.Sprintf(`Perform three tasks:
1. Analyze the image and provide a brief visual description (what do you see?).
2. Extract all visible text from the provided image (OCR).
3. Translate the extracted text into %s.

If no text is found, return empty strings for text fields.
Detect the source language automatically.`, targetLanguage)

	s.log.Debug().
		Str("model", s.model).
		Str("target_language", targetLanguage).
		Int("payload_chars", len(payload)).
		Msg("sending translation request")

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     s.model,
		MaxTokens: maxResponseTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    "data:image/jpeg;base64," + payload,
							Detail: openai.ImageURLDetailAuto,
						},
					},
					{
						Type: openai.ChatMessagePartTypeText,
						Text: prompt,
					},
				},
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "translation_result",
				Schema: &translationSchema,
			},
		},
	})
	if err != nil {
		return nil, s.wrapServiceError(op, err)
	}

	if len(resp.Choices) == 0 {
		return nil, NewInferenceError(op, ErrEmptyResponse, "no response choices")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return nil, NewInferenceError(op, ErrEmptyResponse, "empty message content")
	}

	result, err := parseTranslationResult(content)
	if err != nil {
		s.log.Warn().Err(err).Str("content", content).Msg("unusable model response")
		return nil, NewInferenceError(op, ErrMalformedResponse, err.Error())
	}

	s.log.Info().
		Str("detected_language", result.DetectedLanguage).
		Bool("has_text", result.HasText()).
		Msg("translation completed")

	return result, nil
}

// SynthesizeSpeech implements Service.
func (s *OpenAIService) SynthesizeSpeech(ctx context.Context, text string) ([]byte, error) {
	const op = "SynthesizeSpeech"

	if strings.TrimSpace(text) == "" {
		return nil, NewInferenceError(op, ErrSpeechSynthesis, "no text to speak")
	}

	resp, err := s.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          speechModel,
		Input:          text,
		Voice:          speechVoice,
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("speech synthesis request failed")
		return nil, &InferenceError{Op: op, Err: ErrSpeechSynthesis, Details: err.Error()}
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, &InferenceError{Op: op, Err: ErrSpeechSynthesis, Details: "reading audio stream: " + err.Error()}
	}
	if len(audio) == 0 {
		return nil, NewInferenceError(op, ErrSpeechSynthesis, "empty audio stream")
	}

	s.log.Debug().Int("audio_bytes", len(audio)).Msg("speech synthesis completed")
	return audio, nil
}

// wrapServiceError categorizes a client error, preserving the HTTP status for
// logs when the endpoint reported one.
func (s *OpenAIService) wrapServiceError(op string, err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		s.log.Error().
			Int("status", apiErr.HTTPStatusCode).
			Str("message", apiErr.Message).
			Msg("inference service rejected the request")
		return &InferenceError{
			Op:         op,
			Err:        ErrServiceFailure,
			Details:    apiErr.Message,
			StatusCode: apiErr.HTTPStatusCode,
		}
	}
	s.log.Error().Err(err).Msg("inference request failed")
	return &InferenceError{Op: op, Err: ErrServiceFailure, Details: err.Error()}
}

// parseTranslationResult validates the model answer against the response
// contract. Pointer fields distinguish a missing required key from an empty
// string, which the contract allows.
func parseTranslationResult(content string) (*models.TranslationResult, error) {
	var raw struct {
		OriginalText     *string `json:"originalText"`
		TranslatedText   *string `json:"translatedText"`
		DetectedLanguage *string `json:"detectedLanguage"`
		ImageDescription *string `json:"imageDescription"`
	}
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	var missing []string
	if raw.OriginalText == nil {
		missing = append(missing, "originalText")
	}
	if raw.TranslatedText == nil {
		missing = append(missing, "translatedText")
	}
	if raw.ImageDescription == nil {
		missing = append(missing, "imageDescription")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}

	result := &models.TranslationResult{
		OriginalText:     *raw.OriginalText,
		TranslatedText:   *raw.TranslatedText,
		ImageDescription: *raw.ImageDescription,
	}
	if raw.DetectedLanguage != nil {
		result.DetectedLanguage = *raw.DetectedLanguage
	}
	return result, nil
}
