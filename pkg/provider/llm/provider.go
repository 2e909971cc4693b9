// Package llm defines the Provider interface for generative-text backends.
//
// An LLM provider wraps a remote model API (e.g., Google Gemini or OpenAI) and
// exposes a uniform completion call so the tutor feedback generator can walk an
// ordered list of backends without coupling to any specific SDK.
//
// Implementors must be safe for concurrent use and must propagate context
// cancellation promptly.
package llm

import (
	"context"
	"errors"
)

// ErrQuotaExhausted marks a completion failure caused by rate or quota limits
// (HTTP 429, resource-exhausted). Callers treat it as retryable on another
// backend and, when every backend reports it, degrade instead of aborting.
var ErrQuotaExhausted = errors.New("llm: quota exhausted")

// ErrModelNotFound marks a completion failure caused by an unknown or retired
// model identifier (HTTP 404). Retryable on another backend.
var ErrModelNotFound = errors.New("llm: model not found")

// CompletionRequest carries everything the model needs to produce a response.
type CompletionRequest struct {
	// Prompt is the full instruction text, including persona material and
	// conversation history. Must be non-empty.
	Prompt string

	// Temperature controls output randomness in the range [0.0, 2.0].
	Temperature float64

	// MaxTokens caps the number of completion tokens the model may generate.
	// Zero means use the provider default.
	MaxTokens int
}

// CompletionResponse is the full, non-streaming model reply.
type CompletionResponse struct {
	// Content is the raw text of the reply. May be wrapped in a fenced code
	// block when the model was asked for JSON; callers must tolerate that.
	Content string
}

// Provider is the abstraction over any generative-text backend.
//
// Implementations wrap quota and not-found failures with [ErrQuotaExhausted]
// and [ErrModelNotFound] respectively so callers can classify errors with
// errors.Is without importing SDK types.
type Provider interface {
	// Name identifies the backend (provider/model) for logs and metrics.
	Name() string

	// Complete sends req to the model and waits for the full response.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}
