// Package translate implements the translation pipeline: the machine
// translation client, language detection, the per-message translation cache
// orchestration and per-viewer display preferences.
package translate

import (
	"context"
	"sort"
	"strings"
)

// Auto asks the pipeline to detect the source language.
const Auto = "auto"

// Translator defines the interface for machine translation backends.
// This abstraction allows swapping MT engines without touching the
// orchestration layer, and test doubles in unit tests.
type Translator interface {
	// Translate translates text from source language to target language.
	// Arguments are backend codes in ISO 639-1 format (e.g., "en", "fr").
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)

	// CheckHealth verifies that the translation backend is ready.
	CheckHealth(ctx context.Context) error
}

// Detector guesses the language of a text snippet. Implementations return a
// supported language code.
type Detector interface {
	Detect(ctx context.Context, text string) (string, error)
}

// supportedLanguages is the fixed set of codes the chat UI offers. Keys are
// the codes clients send; values are human-readable names.
var supportedLanguages = map[string]string{
	"en":    "English",
	"es":    "Spanish",
	"fr":    "French",
	"de":    "German",
	"it":    "Italian",
	"pt":    "Portuguese",
	"ru":    "Russian",
	"uk":    "Ukrainian",
	"ja":    "Japanese",
	"ko":    "Korean",
	"zh-CN": "Chinese (Simplified)",
	"ar":    "Arabic",
	"hi":    "Hindi",
}

// IsSupported reports whether code is one of the fixed supported languages.
func IsSupported(code string) bool {
	_, ok := supportedLanguages[code]
	return ok
}

// SupportedLanguages returns the supported codes in stable order.
func SupportedLanguages() []string {
	codes := make([]string, 0, len(supportedLanguages))
	for code := range supportedLanguages {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// LanguageMapper handles conversion between the API's language codes and
// backend format. Clients send codes like "zh-CN" (BCP 47) while backends
// typically expect bare ISO 639-1 codes like "zh".
type LanguageMapper struct{}

// NewLanguageMapper creates a new language mapper instance.
func NewLanguageMapper() *LanguageMapper {
	return &LanguageMapper{}
}

// ToBackendCode converts an API language code to backend format.
// Examples:
//   - "EN" -> "en"
//   - "zh-CN" -> "zh"
//   - "en_US" -> "en"
func (lm *LanguageMapper) ToBackendCode(apiLang string) string {
	lang := strings.ToLower(apiLang)
	if idx := strings.IndexAny(lang, "-_"); idx >= 0 {
		lang = lang[:idx]
	}
	return lang
}

// ToAPICode converts a backend code to the code the API exposes. Most codes
// pass through; the backend "zh" maps to the supported "zh-CN".
func (lm *LanguageMapper) ToAPICode(backendLang string) string {
	lang := strings.ToLower(backendLang)
	if lang == "zh" {
		return "zh-CN"
	}
	return lang
}
