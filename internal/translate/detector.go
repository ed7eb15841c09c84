package translate

import (
	"context"
	"unicode"

	"github.com/sirupsen/logrus"
)

// HeuristicDetector resolves unambiguous scripts locally and asks the
// provider's detection endpoint for everything else. Latin-script text is
// never classified locally because too many supported languages share it.
type HeuristicDetector struct {
	fallback Detector
	logger   *logrus.Logger
}

// NewHeuristicDetector wraps a provider-backed detector with script
// heuristics. fallback may be nil, in which case ambiguous text defaults to
// English.
func NewHeuristicDetector(fallback Detector, logger *logrus.Logger) *HeuristicDetector {
	if logger == nil {
		logger = logrus.New()
	}
	return &HeuristicDetector{fallback: fallback, logger: logger}
}

// Detect returns a supported language code for the text.
func (d *HeuristicDetector) Detect(ctx context.Context, text string) (string, error) {
	if lang, ok := detectByScript(text); ok {
		languageDetections.WithLabelValues("heuristic").Inc()
		d.logger.WithFields(logrus.Fields{
			"lang":        lang,
			"text_length": len(text),
		}).Debug("Language resolved by script heuristic")
		return lang, nil
	}

	if d.fallback == nil {
		return "en", nil
	}

	lang, err := d.fallback.Detect(ctx, text)
	if err != nil {
		return "", err
	}
	languageDetections.WithLabelValues("provider").Inc()
	return lang, nil
}

// detectByScript classifies text whose dominant script maps to exactly one
// supported language. Counting runes rather than checking the first
// character keeps mixed text (emoji, numbers, quoted words) from skewing
// the guess.
func detectByScript(text string) (string, bool) {
	counts := map[string]int{}
	letters := 0

	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		switch {
		case unicode.Is(unicode.Han, r):
			counts["zh"]++
		case unicode.Is(unicode.Hiragana, r) || unicode.Is(unicode.Katakana, r):
			counts["ja"]++
		case unicode.Is(unicode.Hangul, r):
			counts["ko"]++
		case unicode.Is(unicode.Cyrillic, r):
			counts["cyrillic"]++
		case unicode.Is(unicode.Arabic, r):
			counts["ar"]++
		case unicode.Is(unicode.Devanagari, r):
			counts["hi"]++
		}
	}
	if letters == 0 {
		return "", false
	}

	// Any kana marks Japanese: Japanese text freely mixes kana and Han.
	if counts["ja"] > 0 && (counts["ja"]+counts["zh"])*2 > letters {
		return "ja", true
	}

	for _, lang := range []string{"zh", "ko", "ar", "hi"} {
		if counts[lang]*2 > letters {
			return lang, true
		}
	}

	// Cyrillic covers both Russian and Ukrainian; the Ukrainian-only
	// letters і/ї/є/ґ disambiguate.
	if counts["cyrillic"]*2 > letters {
		for _, r := range text {
			switch r {
			case 'і', 'ї', 'є', 'ґ', 'І', 'Ї', 'Є', 'Ґ':
				return "uk", true
			}
		}
		return "ru", true
	}

	return "", false
}
