// Package stt defines the Provider interface for speech-to-text backends.
//
// A transcription provider receives a complete recorded utterance and returns
// its text. Failures are classified with the sentinel errors below so the
// pipeline can map each one to a stable, user-facing message; every
// transcription failure is fatal to its pipeline run — there is no fallback
// transcript.
package stt

import (
	"context"
	"errors"
)

// ErrInvalidAudio marks audio the backend could not decode (unsupported
// container or codec, truncated payload).
var ErrInvalidAudio = errors.New("stt: invalid audio format")

// ErrQuotaExceeded marks a recognition failure caused by rate or quota limits.
var ErrQuotaExceeded = errors.New("stt: quota exceeded")

// ErrNoSpeech is returned when the backend processed the audio successfully
// but found no speech in it. Distinct from a hard failure: the audio was
// valid, just silent.
var ErrNoSpeech = errors.New("stt: no speech detected")

// Transcript is the result of transcribing one utterance.
type Transcript struct {
	// Text is the recognised text. Empty only alongside ErrNoSpeech.
	Text string

	// Confidence is the backend's confidence in [0, 1], or 0 when the
	// backend does not report one.
	Confidence float64
}

// Provider is the abstraction over any batch speech-recognition backend.
// Implementations must be safe for concurrent use.
type Provider interface {
	// Transcribe recognises the given audio. language is a BCP-47 locale
	// code (e.g., "it-IT"). audio is a complete recorded utterance, not a
	// stream.
	Transcribe(ctx context.Context, audio []byte, language string) (Transcript, error)
}
