// Package tutor turns a learner's transcript into persona-voiced feedback.
//
// The Generator walks an ordered list of completion backends, preferring
// cheap models with generous quotas and falling back down the list when a
// backend reports quota exhaustion or an unknown model. Feedback is degraded
// rather than failed wherever possible: unparseable model output and total
// quota exhaustion both produce a canned-but-valid feedback payload so the
// conversation keeps moving.
package tutor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"github.com/langmirror/langmirror/internal/persona"
	"github.com/langmirror/langmirror/pkg/provider/llm"
)

// ErrAnalysisFailed reports that every completion backend failed for a
// reason other than quota exhaustion. Callers treat it as fatal.
var ErrAnalysisFailed = errors.New("tutor: analysis failed")

// Feedback is the tutor's structured reply to one learner utterance.
type Feedback struct {
	// Reaction is the tutor's immediate response to what was said.
	Reaction string `json:"reaction"`

	// Correction is the honest assessment of the learner's language.
	Correction string `json:"correction"`

	// NativeResponse continues the conversation in the practiced language.
	NativeResponse string `json:"response"`

	// CulturalNote is optional context, empty when not relevant.
	CulturalNote string `json:"cultural_note"`

	// Encouragement is an honest closing assessment.
	Encouragement string `json:"encouragement"`
}

// Request carries one analysis request through the Generator.
type Request struct {
	Transcript string
	Language   persona.Language
	Tutor      persona.Persona
	History    []Turn
}

// Generator produces tutor feedback via a prioritized backend list.
type Generator struct {
	backends    []llm.Provider
	temperature float64
	maxTokens   int
	log         *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithTemperature overrides the sampling temperature.
func WithTemperature(t float64) Option {
	return func(g *Generator) { g.temperature = t }
}

// WithMaxTokens overrides the completion token cap.
func WithMaxTokens(n int) Option {
	return func(g *Generator) { g.maxTokens = n }
}

// NewGenerator returns a Generator over backends, tried in order.
func NewGenerator(backends []llm.Provider, log *slog.Logger, opts ...Option) (*Generator, error) {
	if len(backends) == 0 {
		return nil, fmt.Errorf("tutor: at least one completion backend is required")
	}
	if log == nil {
		log = slog.Default()
	}
	g := &Generator{
		backends:    backends,
		temperature: 0.8,
		maxTokens:   300,
		log:         log,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Generate analyzes the learner's transcript and returns tutor feedback.
//
// Backends are tried in order; quota and unknown-model errors move on to the
// next backend. When every backend is quota-limited the canned quota
// fallback is returned instead of an error. Any other total failure wraps
// ErrAnalysisFailed.
func (g *Generator) Generate(ctx context.Context, req Request) (Feedback, error) {
	prompt := buildPrompt(req.Language, req.Tutor, req.Transcript, req.History)

	var lastErr error
	for _, backend := range g.backends {
		if err := ctx.Err(); err != nil {
			return Feedback{}, err
		}

		resp, err := backend.Complete(ctx, llm.CompletionRequest{
			Prompt:      prompt,
			Temperature: g.temperature,
			MaxTokens:   g.maxTokens,
		})
		if err != nil {
			switch {
			case errors.Is(err, llm.ErrQuotaExhausted):
				g.log.WarnContext(ctx, "backend quota exceeded, trying next",
					slog.String("backend", backend.Name()))
			case errors.Is(err, llm.ErrModelNotFound):
				g.log.WarnContext(ctx, "backend model not found, trying next",
					slog.String("backend", backend.Name()))
			default:
				g.log.WarnContext(ctx, "backend failed, trying next",
					slog.String("backend", backend.Name()),
					slog.String("error", err.Error()))
			}
			lastErr = err
			continue
		}

		g.log.InfoContext(ctx, "backend succeeded", slog.String("backend", backend.Name()))
		return g.parse(ctx, resp.Content, req.Tutor), nil
	}

	if errors.Is(lastErr, llm.ErrQuotaExhausted) {
		g.log.WarnContext(ctx, "all backends quota-limited, using fallback feedback")
		return quotaFallback(req.Tutor), nil
	}
	return Feedback{}, fmt.Errorf("%w: all backends exhausted: %v", ErrAnalysisFailed, lastErr)
}

// parse decodes the model's JSON reply, repairing near-JSON output where
// possible and degrading to a canned reply when the text is hopeless.
func (g *Generator) parse(ctx context.Context, text string, tutor persona.Persona) Feedback {
	raw := extractJSON(text)

	var fb Feedback
	if err := json.Unmarshal([]byte(raw), &fb); err != nil {
		fixed, repairErr := jsonrepair.JSONRepair(raw)
		if repairErr != nil || json.Unmarshal([]byte(fixed), &fb) != nil {
			g.log.WarnContext(ctx, "unparseable model output, using fallback feedback",
				slog.String("error", err.Error()))
			return parseFallback(tutor)
		}
	}
	return fb
}

// extractJSON strips a markdown code fence wrapper when one is present.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if _, after, ok := strings.Cut(text, "```json"); ok {
		if body, _, ok := strings.Cut(after, "```"); ok {
			return strings.TrimSpace(body)
		}
		return strings.TrimSpace(after)
	}
	if _, after, ok := strings.Cut(text, "```"); ok {
		if body, _, ok := strings.Cut(after, "```"); ok {
			return strings.TrimSpace(body)
		}
		return strings.TrimSpace(after)
	}
	return text
}

// MismatchFeedback is the canned feedback returned when the learner spoke
// the wrong language. It skips the completion backends entirely.
func MismatchFeedback(lang persona.Language, tutor persona.Persona, message string) Feedback {
	return Feedback{
		Reaction:       "Whoa, stop right there! 🛑",
		Correction:     message,
		NativeResponse: tutor.Greeting,
		Encouragement:  fmt.Sprintf("Come on, give %s a try! Even one word counts.", lang.Name),
	}
}

// quotaFallback keeps the conversation alive when every backend is out of
// quota.
func quotaFallback(tutor persona.Persona) Feedback {
	return Feedback{
		Reaction:       "I heard you!",
		Correction:     "Let's work on that together.",
		NativeResponse: tutor.Greeting,
		Encouragement:  "Keep practicing!",
	}
}

// parseFallback stands in for model output that could not be decoded.
func parseFallback(tutor persona.Persona) Feedback {
	return Feedback{
		Reaction:       "I heard you!",
		Correction:     "Let me help you with that.",
		NativeResponse: tutor.Greeting,
		Encouragement:  "Keep trying!",
	}
}
