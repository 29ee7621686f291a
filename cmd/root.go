package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/erfanbaree-007/easyRx/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "easyrx",
	Short: "EasyRx - translate text in photos with a multimodal AI model",
	Long: `EasyRx extracts text from an image (OCR), detects its language,
translates it into a target language and describes the image, using a single
hosted multimodal model call per image.

Completed translations are kept in a local history (most recent 20) and the
free plan allows a limited number of scans per day. All state lives in a
per-user data directory; nothing is sent anywhere except the image payload of
the translation request itself.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.WithComponent("root")
		log.Info().
			Str("version", version).
			Msg("EasyRx executed")

		fmt.Println("Welcome to EasyRx!")
		fmt.Println("Use --help to see available commands and options.")
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}
