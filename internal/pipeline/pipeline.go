// Package pipeline orchestrates one conversation turn end to end:
// audio in, transcript, tutor feedback, translation, synthesized speech.
//
// Progress and results stream out as an ordered event sequence. Every stream
// ends with exactly one terminal event, complete or error, except when the
// caller's context is cancelled mid-flight, in which case the stream simply
// stops. Translation and synthesis failures degrade the result instead of
// killing the turn; transcription and analysis failures are fatal.
package pipeline

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/langmirror/langmirror/internal/langdetect"
	"github.com/langmirror/langmirror/internal/observe"
	"github.com/langmirror/langmirror/internal/persona"
	"github.com/langmirror/langmirror/internal/tutor"
	"github.com/langmirror/langmirror/pkg/provider/stt"
	"github.com/langmirror/langmirror/pkg/provider/translate"
	"github.com/langmirror/langmirror/pkg/provider/tts"
)

// minAudioBytes rejects uploads too small to contain a spoken second.
const minAudioBytes = 1000

// Request is one conversation turn to process.
type Request struct {
	// Audio is the learner's recorded utterance.
	Audio []byte

	// Language and Dialect select the tutor persona. Unknown values fall
	// back per the persona registry's resolution rules.
	Language string
	Dialect  string

	// History is the conversation so far, oldest first.
	History []tutor.Turn
}

// Pipeline wires the stage providers together.
type Pipeline struct {
	registry   *persona.Registry
	stt        stt.Provider
	detector   *langdetect.Detector
	generator  *tutor.Generator
	translator translate.Provider
	tts        tts.Provider
	metrics    *observe.Metrics
	log        *slog.Logger
}

// Config collects the dependencies of a Pipeline. All fields but Log and
// Metrics are required.
type Config struct {
	Registry   *persona.Registry
	STT        stt.Provider
	Detector   *langdetect.Detector
	Generator  *tutor.Generator
	Translator translate.Provider
	TTS        tts.Provider
	Metrics    *observe.Metrics
	Log        *slog.Logger
}

// New validates cfg and returns a ready Pipeline.
func New(cfg Config) (*Pipeline, error) {
	switch {
	case cfg.Registry == nil:
		return nil, fmt.Errorf("pipeline: persona registry is required")
	case cfg.STT == nil:
		return nil, fmt.Errorf("pipeline: speech-to-text provider is required")
	case cfg.Detector == nil:
		return nil, fmt.Errorf("pipeline: language detector is required")
	case cfg.Generator == nil:
		return nil, fmt.Errorf("pipeline: feedback generator is required")
	case cfg.Translator == nil:
		return nil, fmt.Errorf("pipeline: translation provider is required")
	case cfg.TTS == nil:
		return nil, fmt.Errorf("pipeline: synthesis provider is required")
	}
	log := cfg.Log
	if log == nil {
		log = slog.Default()
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = observe.DefaultMetrics()
	}
	return &Pipeline{
		registry:   cfg.Registry,
		stt:        cfg.STT,
		detector:   cfg.Detector,
		generator:  cfg.Generator,
		translator: cfg.Translator,
		tts:        cfg.TTS,
		metrics:    metrics,
		log:        log,
	}, nil
}

// Run processes one conversation turn, streaming events on the returned
// channel. The channel is closed when the stream ends. Cancelling ctx stops
// the run between stages.
func (p *Pipeline) Run(ctx context.Context, req Request) <-chan Event {
	out := make(chan Event, 8)
	lang, tutorPersona := p.registry.Resolve(req.Language, req.Dialect)
	go func() {
		defer close(out)
		start := time.Now()
		p.metrics.ActiveConversations.Add(ctx, 1)
		em := &emitter{ctx: ctx, out: out}
		defer func() {
			if r := recover(); r != nil {
				p.log.ErrorContext(ctx, "conversation panicked", slog.Any("panic", r))
				em.terminal(Event{Type: EventError, Data: ErrorPayload{
					Message: "Something went wrong. Please try again!",
				}})
			}
			p.metrics.ActiveConversations.Add(ctx, -1)
			switch em.terminalType {
			case EventComplete:
				p.metrics.RecordConversation(ctx, lang.Key, "complete")
			case EventError:
				p.metrics.RecordConversation(ctx, lang.Key, "error")
			}
			p.metrics.ConversationDuration.Record(ctx, time.Since(start).Seconds())
		}()
		p.run(ctx, em, req, lang, tutorPersona)
	}()
	return out
}

func (p *Pipeline) run(ctx context.Context, em *emitter, req Request, lang persona.Language, tutorPersona persona.Persona) {
	id := uuid.NewString()
	log := p.log.With(
		slog.String("conversation_id", id),
		slog.String("language", lang.Key),
		slog.String("dialect", tutorPersona.Key),
	)

	// Stage 1: receive.
	em.progress(StageReceiving, fmt.Sprintf("🎤 %s is listening...", tutorPersona.Name))
	if len(req.Audio) < minAudioBytes {
		em.fail("Audio too short. Please speak for at least 1 second.")
		return
	}

	// Stage 2: transcribe.
	if !em.progress(StageTranscribing, fmt.Sprintf("📝 Understanding your %s...", lang.Name)) {
		return
	}
	sttStart := time.Now()
	transcript, err := p.stt.Transcribe(ctx, req.Audio, lang.LocaleCode)
	p.metrics.STTDuration.Record(ctx, time.Since(sttStart).Seconds())
	if err != nil {
		log.ErrorContext(ctx, "transcription failed", slog.String("error", err.Error()))
		em.fail(transcriptionErrorMessage(err))
		return
	}
	if strings.TrimSpace(transcript.Text) == "" {
		em.fail("Couldn't hear you clearly. Please try again!")
		return
	}
	log.InfoContext(ctx, "transcribed",
		slog.Float64("confidence", transcript.Confidence),
		slog.Int("length", len(transcript.Text)))
	if !em.send(Event{Type: EventTranscript, Data: TranscriptPayload{Transcript: transcript.Text}}) {
		return
	}

	// Stage 3: analyze. A wrong-language transcript skips the completion
	// backends and returns a canned redirect instead.
	if !em.progress(StageAnalyzing, fmt.Sprintf("🤔 %s is thinking...", tutorPersona.Name)) {
		return
	}
	var feedback tutor.Feedback
	if check := p.detector.Check(ctx, transcript.Text, lang); check.Mismatch {
		log.InfoContext(ctx, "wrong language spoken", slog.String("detected", check.Detected))
		p.metrics.RecordLanguageMismatch(ctx, lang.Key)
		feedback = tutor.MismatchFeedback(lang, tutorPersona, check.Message)
	} else {
		llmStart := time.Now()
		feedback, err = p.generator.Generate(ctx, tutor.Request{
			Transcript: transcript.Text,
			Language:   lang,
			Tutor:      tutorPersona,
			History:    req.History,
		})
		p.metrics.LLMDuration.Record(ctx, time.Since(llmStart).Seconds())
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return
			}
			log.ErrorContext(ctx, "analysis failed", slog.String("error", err.Error()))
			em.fail(fmt.Sprintf("AI analysis failed: %v", err))
			return
		}
	}
	if !em.send(Event{Type: EventAnalysis, Data: AnalysisPayload{
		Reaction:      feedback.Reaction,
		Correction:    feedback.Correction,
		Encouragement: feedback.Encouragement,
		CulturalNote:  feedback.CulturalNote,
	}}) {
		return
	}

	// Stage 4: translate. Failure degrades to a placeholder.
	if !em.progress(StageTranslating, "🌐 Creating subtitles...") {
		return
	}
	translateStart := time.Now()
	translation, err := p.translator.Translate(ctx, feedback.NativeResponse, lang.TranslateCode, "en")
	p.metrics.TranslateDuration.Record(ctx, time.Since(translateStart).Seconds())
	if err != nil {
		log.WarnContext(ctx, "translation failed", slog.String("error", err.Error()))
		translation = "(Translation unavailable)"
	}
	if !em.send(Event{Type: EventTranslation, Data: TranslationPayload{
		Native:  feedback.NativeResponse,
		English: translation,
	}}) {
		return
	}

	// Stage 5: synthesize. Failure degrades to an empty audio payload.
	if !em.progress(StageSynthesizing, fmt.Sprintf("🗣️ %s is preparing to speak...", tutorPersona.Name)) {
		return
	}
	var audioBase64 string
	ttsStart := time.Now()
	audio, err := p.tts.Synthesize(ctx, feedback.NativeResponse, tutorPersona.VoiceID)
	p.metrics.TTSDuration.Record(ctx, time.Since(ttsStart).Seconds())
	if err != nil {
		log.WarnContext(ctx, "synthesis failed", slog.String("error", err.Error()))
	} else {
		audioBase64 = base64.StdEncoding.EncodeToString(audio)
	}

	// Stage 6: complete.
	if !em.progress(StageComplete, "✅ Ready!") {
		return
	}
	em.terminal(Event{Type: EventComplete, Data: CompletePayload{
		Transcript:      transcript.Text,
		Reaction:        feedback.Reaction,
		Correction:      feedback.Correction,
		Encouragement:   feedback.Encouragement,
		CulturalNote:    feedback.CulturalNote,
		ResponseNative:  feedback.NativeResponse,
		ResponseEnglish: translation,
		AudioBase64:     audioBase64,
		TutorName:       tutorPersona.Name,
		TutorRegion:     tutorPersona.Region,
		Language:        lang.Key,
		Dialect:         tutorPersona.Key,
	}})
	log.InfoContext(ctx, "conversation complete")
}

// transcriptionErrorMessage maps recognition failures to learner-facing
// wording.
func transcriptionErrorMessage(err error) string {
	switch {
	case errors.Is(err, stt.ErrNoSpeech):
		return "No speech detected. Please speak clearly and try again."
	case errors.Is(err, stt.ErrInvalidAudio):
		return "Audio format not supported. Please try again."
	case errors.Is(err, stt.ErrQuotaExceeded):
		return "Service temporarily busy. Please wait a moment."
	default:
		return fmt.Sprintf("Transcription failed: %v", err)
	}
}

// emitter serializes event delivery and enforces the single-terminal rule:
// after a terminal event nothing else is sent.
type emitter struct {
	ctx  context.Context
	out  chan<- Event
	done bool

	// terminalType records which terminal event sealed the stream, if any.
	terminalType EventType
}

// send delivers ev unless the stream has already terminated or the context
// is cancelled. It reports whether the pipeline should keep going.
func (e *emitter) send(ev Event) bool {
	if e.done {
		return false
	}
	if e.ctx.Err() != nil {
		e.done = true
		return false
	}
	select {
	case e.out <- ev:
		return true
	case <-e.ctx.Done():
		e.done = true
		return false
	}
}

// progress emits the stage-entry event for step.
func (e *emitter) progress(step, message string) bool {
	return e.send(Event{Type: EventProgress, Data: ProgressPayload{
		Step:     step,
		Message:  message,
		Progress: stageProgress[step],
	}})
}

// fail emits the terminal error event.
func (e *emitter) fail(message string) {
	e.terminal(Event{Type: EventError, Data: ErrorPayload{Message: message}})
}

// terminal emits ev and seals the stream.
func (e *emitter) terminal(ev Event) {
	if e.send(ev) {
		e.done = true
		e.terminalType = ev.Type
	}
}
