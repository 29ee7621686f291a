// Package language defines the static catalog of supported target languages.
package language

import "strings"

// Language is one catalog entry. The English display Name (not the Code) is
// what gets threaded through inference requests and stored in history, so
// history entries written by older versions keep resolving.
type Language struct {
	Code       string
	Name       string
	NativeName string
	Flag       string
}

// catalog is defined once at process start and never mutated.
var catalog = []Language{
	{Code: "en", Name: "English", NativeName: "English", Flag: "🇺🇸"},
	{Code: "es", Name: "Spanish", NativeName: "Español", Flag: "🇪🇸"},
	{Code: "fr", Name: "French", NativeName: "Français", Flag: "🇫🇷"},
	{Code: "de", Name: "German", NativeName: "Deutsch", Flag: "🇩🇪"},
	{Code: "it", Name: "Italian", NativeName: "Italiano", Flag: "🇮🇹"},
	{Code: "pt", Name: "Portuguese", NativeName: "Português", Flag: "🇵🇹"},
	{Code: "zh", Name: "Chinese (Simplified)", NativeName: "简体中文", Flag: "🇨🇳"},
	{Code: "ja", Name: "Japanese", NativeName: "日本語", Flag: "🇯🇵"},
	{Code: "ko", Name: "Korean", NativeName: "한국어", Flag: "🇰🇷"},
	{Code: "ru", Name: "Russian", NativeName: "Русский", Flag: "🇷🇺"},
	{Code: "hi", Name: "Hindi", NativeName: "हिन्दी", Flag: "🇮🇳"},
	{Code: "bn", Name: "Bengali", NativeName: "বাংলা", Flag: "🇧🇩"},
	{Code: "ur", Name: "Urdu", NativeName: "اردو", Flag: "🇵🇰"},
	{Code: "ar", Name: "Arabic", NativeName: "العربية", Flag: "🇸🇦"},
	{Code: "tr", Name: "Turkish", NativeName: "Türkçe", Flag: "🇹🇷"},
	{Code: "vi", Name: "Vietnamese", NativeName: "Tiếng Việt", Flag: "🇻🇳"},
	{Code: "th", Name: "Thai", NativeName: "ไทย", Flag: "🇹🇭"},
}

// Default is the language assumed when none is requested.
func Default() Language {
	return catalog[0]
}

// All returns a copy of the catalog in definition order.
func All() []Language {
	out := make([]Language, len(catalog))
	copy(out, catalog)
	return out
}

// ByCode looks up a language by its machine code, case-insensitively.
func ByCode(code string) (Language, bool) {
	for _, l := range catalog {
		if strings.EqualFold(l.Code, code) {
			return l, true
		}
	}
	return Language{}, false
}

// ByName looks up a language by its English display name, case-insensitively.
// Kept for resolving the display names persisted in history entries.
func ByName(name string) (Language, bool) {
	for _, l := range catalog {
		if strings.EqualFold(l.Name, name) {
			return l, true
		}
	}
	return Language{}, false
}

// Resolve accepts either a machine code or a display name.
func Resolve(s string) (Language, bool) {
	if l, ok := ByCode(s); ok {
		return l, true
	}
	return ByName(s)
}
