// Package translate defines the Provider interface for machine-translation
// backends that also expose language identification.
//
// The pipeline uses translation to gloss the tutor's native-language reply
// into English, and language detection to decide whether the learner spoke
// the target language at all. Both capabilities live on one interface because
// every supported backend serves them from the same API surface.
package translate

import "context"

// Detection is the result of identifying the language of a piece of text.
type Detection struct {
	// Language is the detected ISO-639-1 code, possibly with a region
	// suffix (e.g., "zh-CN"). "und" or "" means the backend could not tell.
	Language string

	// Confidence is the backend's confidence in [0, 1], or 0 when the
	// backend does not report one.
	Confidence float64
}

// Provider is the abstraction over any translation backend.
// Implementations must be safe for concurrent use.
type Provider interface {
	// Translate renders text from the source language into the target
	// language. Both are ISO-639-1 codes. The result is plain text with
	// HTML entities already decoded.
	Translate(ctx context.Context, text, source, target string) (string, error)

	// DetectLanguage identifies the language of text.
	DetectLanguage(ctx context.Context, text string) (Detection, error)
}
