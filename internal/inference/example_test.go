package inference_test

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/erfanbaree-007/easyRx/internal/imaging"
	"github.com/erfanbaree-007/easyRx/internal/inference"
)

// Example demonstrates basic usage of the inference service.
func Example() {
	// Load .env file (using godotenv in main)
	// This should be done in your main() function:
	//
	// if err := godotenv.Load(); err != nil {
	//     log.Printf("Warning: Could not load .env file: %v", err)
	// }

	// Create context with timeout for the remote call
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// Create service - API key handled internally from environment
	service, err := inference.NewOpenAIService()
	if err != nil {
		log.Fatalf("Failed to create inference service: %v", err)
	}

	// Normalize an image file into the base64 payload
	raw, err := os.ReadFile("menu.jpg")
	if err != nil {
		log.Fatalf("Failed to read image: %v", err)
	}
	payload, err := imaging.NewNormalizer().Normalize(raw)
	if err != nil {
		log.Fatalf("Failed to normalize image: %v", err)
	}

	// Translate the text in the image
	result, err := service.TranslateImage(ctx, payload, "English")
	if err != nil {
		log.Fatalf("Failed to translate image: %v", err)
	}

	fmt.Printf("Image: %s\n", result.ImageDescription)
	fmt.Printf("Detected language: %s\n", result.DetectedLanguage)
	fmt.Printf("Translation:\n%s\n", result.TranslatedText)
}

// ExampleErrorHandling demonstrates proper error handling patterns.
func Example_errorHandling() {
	ctx := context.Background()

	service, err := inference.NewOpenAIService()
	if err != nil {
		// Handle configuration errors
		if err == inference.ErrMissingAPIKey {
			log.Fatalf("Please set the OPENAI_API_KEY environment variable")
		}
		log.Fatalf("Failed to create inference service: %v", err)
	}

	result, err := service.TranslateImage(ctx, "...base64 payload...", "German")
	if err != nil {
		switch {
		case errors.Is(err, inference.ErrServiceFailure):
			log.Println("Network or service failure, worth a manual retry")
		case errors.Is(err, inference.ErrEmptyResponse), errors.Is(err, inference.ErrMalformedResponse):
			log.Println("The model answered but the response was unusable")
		default:
			log.Printf("Translation failed: %v", err)
		}
		return
	}

	fmt.Println(result.TranslatedText)
}
