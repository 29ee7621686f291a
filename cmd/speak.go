package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/erfanbaree-007/easyRx/internal/inference"
	"github.com/erfanbaree-007/easyRx/internal/logger"
)

var speakCmd = &cobra.Command{
	Use:   "speak [text]",
	Short: "Convert text to speech",
	Long: `Synthesize the given text as MP3 audio using the inference service's
fixed voice profile.

Required environment variables:
  OPENAI_API_KEY - API key for the inference endpoint`,
	Example: `  # Speak a phrase to out.mp3
  easyrx speak "¿Dónde está la biblioteca?" -o out.mp3`,
	Args: cobra.ExactArgs(1),
	RunE: runSpeak,
}

func init() {
	rootCmd.AddCommand(speakCmd)

	speakCmd.Flags().StringP("output", "o", "speech.mp3", "Output MP3 file path")
	speakCmd.Flags().Int("timeout", 60, "Processing timeout in seconds")
}

func runSpeak(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("speak")

	outputPath, _ := cmd.Flags().GetString("output")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	service, err := inference.NewOpenAIService()
	if err != nil {
		if errors.Is(err, inference.ErrMissingAPIKey) {
			return fmt.Errorf("no API key configured. Set OPENAI_API_KEY in your environment or .env file")
		}
		return err
	}

	ctx, cancel := createContextWithTimeout(timeoutSecs, log)
	defer cancel()

	audio, err := service.SynthesizeSpeech(ctx, args[0])
	if err != nil {
		log.Error().Err(err).Msg("Speech synthesis failed")
		return fmt.Errorf("speech synthesis failed. Please check your connection and try again")
	}

	if err := os.WriteFile(outputPath, audio, 0o644); err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}

	log.Info().
		Str("audio_file", outputPath).
		Int("bytes", len(audio)).
		Msg("Speech synthesized")
	fmt.Printf("Audio written to %s\n", outputPath)
	return nil
}
