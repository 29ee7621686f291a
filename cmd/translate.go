package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/erfanbaree-007/easyRx/internal/history"
	"github.com/erfanbaree-007/easyRx/internal/imaging"
	"github.com/erfanbaree-007/easyRx/internal/inference"
	"github.com/erfanbaree-007/easyRx/internal/language"
	"github.com/erfanbaree-007/easyRx/internal/logger"
	"github.com/erfanbaree-007/easyRx/internal/storage"
	"github.com/erfanbaree-007/easyRx/internal/usage"
	"github.com/erfanbaree-007/easyRx/internal/workflow"
	"github.com/erfanbaree-007/easyRx/pkg/models"
)

var translateCmd = &cobra.Command{
	Use:   "translate [image-file]",
	Short: "Extract, translate and describe the text in a photo",
	Long: `Process an image file through the full pipeline: normalize the image,
send it to the multimodal model, and record the completed translation in the
local history.

The model extracts all visible text (OCR), auto-detects its language,
translates it into the requested target language and adds a brief visual
description of the image. Free-plan usage is limited per day; the quota is
checked before the remote call is spent.

Required environment variables:
  OPENAI_API_KEY - API key for the inference endpoint`,
	Example: `  # Translate a photographed label into English
  easyrx translate label.jpg

  # Translate into German, selected by language code
  easyrx translate menu.png --lang de

  # JSON output written to a file
  easyrx translate sign.jpg -l fr --json -o result.json

  # Also synthesize the translation as speech
  easyrx translate sign.jpg --speak sign.mp3`,
	Args: cobra.ExactArgs(1),
	RunE: runTranslate,
}

// TranslateOutput represents the JSON output structure when --json is used
type TranslateOutput struct {
	OriginalText       string    `json:"originalText"`
	TranslatedText     string    `json:"translatedText"`
	DetectedLanguage   string    `json:"detectedLanguage,omitempty"`
	ImageDescription   string    `json:"imageDescription"`
	TargetLanguage     string    `json:"targetLanguage"`
	FileName           string    `json:"file_name"`
	ProcessedAt        time.Time `json:"processed_at"`
	ProcessingDuration string    `json:"processing_duration"`
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().StringP("lang", "l", language.Default().Code, "Target language (code or English name)")
	translateCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	translateCmd.Flags().Bool("json", false, "Output as JSON")
	translateCmd.Flags().String("speak", "", "Also synthesize the translation to this MP3 file")
	translateCmd.Flags().Int("timeout", 120, "Processing timeout in seconds")
}

func runTranslate(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("translate")

	langFlag, _ := cmd.Flags().GetString("lang")
	outputPath, _ := cmd.Flags().GetString("output")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	speakPath, _ := cmd.Flags().GetString("speak")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	imagePath := args[0]

	target, ok := language.Resolve(langFlag)
	if !ok {
		return fmt.Errorf("unknown target language %q; run 'easyrx languages' for the supported list", langFlag)
	}

	log.Info().
		Str("file", imagePath).
		Str("target_language", target.Name).
		Bool("json", jsonOutput).
		Msg("Starting translation")

	raw, err := os.ReadFile(imagePath)
	if err != nil {
		log.Error().Err(err).Str("file", imagePath).Msg("Failed to read image file")
		return fmt.Errorf("failed to read image file: %w", err)
	}

	kv, err := newKVStore()
	if err != nil {
		return err
	}

	service, err := inference.NewOpenAIService()
	if err != nil {
		return handleTranslateError(err, log)
	}

	gate := usage.NewGate(kv)
	orch := workflow.New(imaging.NewNormalizer(), service, history.NewStore(kv), gate)

	if err := orch.SelectImage(raw); err != nil {
		return handleTranslateError(err, log)
	}

	ctx, cancel := createContextWithTimeout(timeoutSecs, log)
	defer cancel()

	startTime := time.Now()
	result, err := orch.Process(ctx, target.Name)
	if err != nil {
		if errors.Is(err, workflow.ErrQuotaExceeded) {
			remaining := gate.RemainingScans()
			log.Warn().Int("remaining", remaining).Msg("Free scan quota exhausted")
		}
		return handleTranslateError(err, log)
	}

	log.Info().
		Str("detected_language", result.DetectedLanguage).
		Dur("duration", time.Since(startTime)).
		Int("text_length", len(result.OriginalText)).
		Msg("Translation completed successfully")

	if err := outputTranslation(result, target, imagePath, outputPath, jsonOutput, startTime, log); err != nil {
		return err
	}

	// Speech synthesis is best-effort: the translation above stays valid even
	// when audio generation fails.
	if speakPath != "" {
		if err := speakTranslation(ctx, service, result, speakPath, log); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: speech synthesis failed: %v\n", err)
		}
	}

	return nil
}

// newKVStore opens the file-backed local storage under the data directory.
func newKVStore() (storage.Store, error) {
	dir, err := storage.DefaultDataDir()
	if err != nil {
		return nil, err
	}
	return storage.NewFileStore(dir)
}

// createContextWithTimeout creates a context with timeout and signal handling
func createContextWithTimeout(timeoutSecs int, log zerolog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSecs)*time.Second)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			log.Info().
				Str("signal", sig.String()).
				Msg("Received interrupt signal, canceling processing")
			cancel()
		case <-ctx.Done():
			// Context completed normally
		}
	}()

	return ctx, cancel
}

// handleTranslateError provides user-friendly error messages for pipeline failures
func handleTranslateError(err error, log zerolog.Logger) error {
	log.Error().Err(err).Msg("Translation failed")

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("processing timed out. Try increasing --timeout")
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("processing was canceled")
	case errors.Is(err, imaging.ErrImageDecode), errors.Is(err, imaging.ErrEmptyImage):
		return fmt.Errorf("this file could not be read as an image. Please pick a different image")
	case errors.Is(err, workflow.ErrQuotaExceeded):
		return fmt.Errorf("you have used all %d free scans for today. Run 'easyrx plan upgrade' for unlimited scans, or try again tomorrow", usage.FreeDailyLimit)
	case errors.Is(err, workflow.ErrAlreadyProcessing):
		return fmt.Errorf("another translation is already in progress")
	case errors.Is(err, inference.ErrMissingAPIKey):
		return fmt.Errorf("no API key configured. Set OPENAI_API_KEY in your environment or .env file")
	case errors.Is(err, inference.ErrEmptyResponse),
		errors.Is(err, inference.ErrMalformedResponse),
		errors.Is(err, inference.ErrServiceFailure):
		// Distinguishable in logs, identical for the user.
		return fmt.Errorf("processing failed. Please check your connection and try again")
	default:
		return fmt.Errorf("translation failed: %w", err)
	}
}

// outputTranslation formats and writes the result
func outputTranslation(result *models.TranslationResult, target language.Language, imagePath, outputPath string, jsonOutput bool, startTime time.Time, log zerolog.Logger) error {
	var outputData []byte

	if jsonOutput {
		out := TranslateOutput{
			OriginalText:       result.OriginalText,
			TranslatedText:     result.TranslatedText,
			DetectedLanguage:   result.DetectedLanguage,
			ImageDescription:   result.ImageDescription,
			TargetLanguage:     target.Name,
			FileName:           filepath.Base(imagePath),
			ProcessedAt:        time.Now(),
			ProcessingDuration: time.Since(startTime).String(),
		}

		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			log.Error().Err(err).Msg("Failed to marshal JSON output")
			return fmt.Errorf("failed to create JSON output: %w", err)
		}
		outputData = data
	} else {
		var b strings.Builder
		b.WriteString(fmt.Sprintf("=== %s ===\n", result.ImageDescription))
		if result.HasText() {
			if result.DetectedLanguage != "" {
				b.WriteString(fmt.Sprintf("Detected language: %s\n", result.DetectedLanguage))
			}
			b.WriteString(fmt.Sprintf("\nOriginal text:\n%s\n", result.OriginalText))
			b.WriteString(fmt.Sprintf("\n%s %s translation:\n%s\n", target.Flag, target.Name, result.TranslatedText))
		} else {
			b.WriteString("\nNo readable text found in this image.\n")
		}
		outputData = []byte(b.String())
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, outputData, 0o644); err != nil {
			log.Error().
				Err(err).
				Str("output_file", outputPath).
				Msg("Failed to write output file")
			return fmt.Errorf("failed to write output file: %w", err)
		}

		log.Info().
			Str("output_file", outputPath).
			Int("bytes", len(outputData)).
			Msg("Translation written to file")
		return nil
	}

	if _, err := os.Stdout.Write(outputData); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// speakTranslation converts the translated text to an MP3 file
func speakTranslation(ctx context.Context, service inference.Service, result *models.TranslationResult, path string, log zerolog.Logger) error {
	text := result.TranslatedText
	if text == "" {
		text = result.ImageDescription
	}

	audio, err := service.SynthesizeSpeech(ctx, text)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, audio, 0o644); err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}

	log.Info().
		Str("audio_file", path).
		Int("bytes", len(audio)).
		Msg("Speech synthesized")
	return nil
}
