// Package tts defines the Provider interface for text-to-speech backends.
//
// Synthesis failures never abort a pipeline run — the orchestrator degrades
// to an empty audio payload — but they are still classified with the sentinel
// errors below so logs and metrics can distinguish credential problems from
// quota and timeout conditions.
package tts

import (
	"context"
	"errors"
)

// ErrAuth marks a synthesis failure caused by a rejected credential.
var ErrAuth = errors.New("tts: invalid credential")

// ErrQuotaExceeded marks a synthesis failure caused by rate or quota limits.
var ErrQuotaExceeded = errors.New("tts: quota exceeded")

// ErrTimeout marks a synthesis request that exceeded its deadline.
var ErrTimeout = errors.New("tts: request timed out")

// Provider is the abstraction over any batch speech-synthesis backend.
// Implementations must be safe for concurrent use.
type Provider interface {
	// Synthesize renders text as speech using the given provider-specific
	// voice ID and returns the complete encoded audio.
	Synthesize(ctx context.Context, text, voiceID string) ([]byte, error)
}
