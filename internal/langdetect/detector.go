// Package langdetect checks whether a transcript matches the language the
// learner is supposed to be practicing.
//
// Detection rides on the translation provider's language-detection endpoint
// and fails open: if detection errors out or cannot identify the language,
// the transcript is allowed through rather than blocking the conversation.
package langdetect

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/langmirror/langmirror/internal/persona"
	"github.com/langmirror/langmirror/pkg/provider/translate"
)

// Result is the outcome of a mismatch check.
type Result struct {
	// Mismatch reports whether the learner spoke a different language than
	// the one being practiced.
	Mismatch bool

	// Message is the learner-facing redirect message. Empty unless
	// Mismatch is true.
	Message string

	// Detected is the detected language code, or "unknown" / "error" when
	// detection was inconclusive.
	Detected string
}

// Detector runs language-mismatch checks against a translation provider.
type Detector struct {
	translator translate.Provider
	log        *slog.Logger
}

// New returns a Detector using the given translation provider for detection.
func New(translator translate.Provider, log *slog.Logger) *Detector {
	if log == nil {
		log = slog.Default()
	}
	return &Detector{translator: translator, log: log}
}

// Check detects the language of transcript and compares it against the
// target language. Comparison is on base subtags, so regional variants like
// zh-CN match a zh target. Transcripts too short to classify, inconclusive
// detections, and provider errors all pass as a match.
func (d *Detector) Check(ctx context.Context, transcript string, target persona.Language) Result {
	if len(strings.TrimSpace(transcript)) < 2 {
		return Result{Detected: "unknown"}
	}

	det, err := d.translator.DetectLanguage(ctx, transcript)
	if err != nil {
		d.log.WarnContext(ctx, "language detection failed, allowing through",
			slog.String("error", err.Error()))
		return Result{Detected: "error"}
	}

	detected := strings.ToLower(det.Language)
	if detected == "" || detected == "und" {
		return Result{Detected: "unknown"}
	}

	detectedBase := baseSubtag(detected)
	targetBase := baseSubtag(strings.ToLower(target.TranslateCode))
	if detectedBase == targetBase {
		return Result{Detected: detected}
	}

	detectedName := languageName(detected)
	msg := fmt.Sprintf(
		"🛑 Wrong language! You spoke in %s, but we're practicing %s. Try again in %s - even if it's broken or just a few words!",
		detectedName, target.Name, target.Name)
	d.log.InfoContext(ctx, "language mismatch",
		slog.String("detected", detected),
		slog.String("target", target.TranslateCode))
	return Result{Mismatch: true, Message: msg, Detected: detected}
}

// baseSubtag strips regional variants: "zh-CN" becomes "zh".
func baseSubtag(code string) string {
	base, _, _ := strings.Cut(code, "-")
	return base
}

// languageName maps a detected code to a readable name. Codes outside the
// table fall back to their uppercase form so the redirect message still
// names something.
func languageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	if code == "" {
		return "Unknown"
	}
	return strings.ToUpper(code)
}

var languageNames = map[string]string{
	"en":    "English",
	"it":    "Italian",
	"es":    "Spanish",
	"fr":    "French",
	"de":    "German",
	"ja":    "Japanese",
	"zh":    "Chinese",
	"zh-cn": "Chinese",
	"zh-tw": "Chinese",
	"ko":    "Korean",
	"pt":    "Portuguese",
	"ru":    "Russian",
	"ar":    "Arabic",
	"hi":    "Hindi",
	"nl":    "Dutch",
	"pl":    "Polish",
	"tr":    "Turkish",
	"vi":    "Vietnamese",
	"th":    "Thai",
	"sv":    "Swedish",
	"da":    "Danish",
	"no":    "Norwegian",
	"fi":    "Finnish",
	"el":    "Greek",
	"he":    "Hebrew",
	"id":    "Indonesian",
	"ms":    "Malay",
	"cs":    "Czech",
	"ro":    "Romanian",
	"hu":    "Hungarian",
	"uk":    "Ukrainian",
	"bg":    "Bulgarian",
	"hr":    "Croatian",
	"sk":    "Slovak",
	"sl":    "Slovenian",
	"lt":    "Lithuanian",
	"lv":    "Latvian",
	"et":    "Estonian",
	"und":   "Unknown",
	"":      "Unknown",
}
