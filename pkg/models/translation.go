package models

// TranslationResult is the structured output of one multimodal inference call.
// JSON field names match the response schema requested from the model and the
// persisted history format.
type TranslationResult struct {
	// OriginalText is the raw text extracted from the image (OCR). May be empty
	// when the image contains no readable text.
	OriginalText string `json:"originalText"`

	// TranslatedText is OriginalText translated into the requested target
	// language. Expected empty whenever OriginalText is empty; this depends on
	// model compliance and is not enforced locally.
	TranslatedText string `json:"translatedText"`

	// DetectedLanguage is the human-readable name of the auto-detected source
	// language. Empty when no text was found.
	DetectedLanguage string `json:"detectedLanguage"`

	// ImageDescription is a brief caption of the visual content. Always
	// populated by the schema contract.
	ImageDescription string `json:"imageDescription"`
}

// HasText reports whether the model found any readable text in the image.
func (r TranslationResult) HasText() bool {
	return r.OriginalText != ""
}
