// Package server exposes the conversation pipeline over HTTP.
//
// The main endpoint, POST /converse, streams pipeline events to the client
// as server-sent events. The remaining endpoints serve the tutor catalog,
// greetings, health, and Prometheus metrics. Conversation endpoints sit
// behind a per-client rate limit; catalog and operational endpoints do not.
package server

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/langmirror/langmirror/internal/observe"
	"github.com/langmirror/langmirror/internal/persona"
	"github.com/langmirror/langmirror/internal/pipeline"
	"github.com/langmirror/langmirror/internal/ratelimit"
	"github.com/langmirror/langmirror/internal/tutor"
	"github.com/langmirror/langmirror/pkg/provider/translate"
	"github.com/langmirror/langmirror/pkg/provider/tts"
)

// maxUploadBytes caps the request body of conversation uploads.
const maxUploadBytes = 10 << 20

// Server handles the HTTP surface of the service.
type Server struct {
	pipe       *pipeline.Pipeline
	registry   *persona.Registry
	translator translate.Provider
	tts        tts.Provider
	limiter    *ratelimit.Limiter
	metrics    *observe.Metrics
	log        *slog.Logger
	version    string
}

// Config collects the dependencies of a Server. Metrics and Log fall back
// to package defaults; everything else is required.
type Config struct {
	Pipeline   *pipeline.Pipeline
	Registry   *persona.Registry
	Translator translate.Provider
	TTS        tts.Provider
	Limiter    *ratelimit.Limiter
	Metrics    *observe.Metrics
	Log        *slog.Logger
	Version    string
}

// New validates cfg and returns a ready Server.
func New(cfg Config) (*Server, error) {
	switch {
	case cfg.Pipeline == nil:
		return nil, fmt.Errorf("server: pipeline is required")
	case cfg.Registry == nil:
		return nil, fmt.Errorf("server: persona registry is required")
	case cfg.Translator == nil:
		return nil, fmt.Errorf("server: translation provider is required")
	case cfg.TTS == nil:
		return nil, fmt.Errorf("server: synthesis provider is required")
	case cfg.Limiter == nil:
		return nil, fmt.Errorf("server: rate limiter is required")
	}
	log := cfg.Log
	if log == nil {
		log = slog.Default()
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = observe.DefaultMetrics()
	}
	return &Server{
		pipe:       cfg.Pipeline,
		registry:   cfg.Registry,
		translator: cfg.Translator,
		tts:        cfg.TTS,
		limiter:    cfg.Limiter,
		metrics:    metrics,
		log:        log,
		version:    cfg.Version,
	}, nil
}

// Handler returns the fully assembled HTTP handler: routes wrapped in CORS,
// rate limiting, and observability middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /converse", s.handleConverse)
	mux.HandleFunc("GET /greeting", s.handleGreeting)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /languages", s.handleLanguages)
	mux.HandleFunc("GET /dialects/{language}", s.handleDialects)
	mux.Handle("GET /metrics", promhttp.Handler())

	var h http.Handler = mux
	h = s.rateLimitMiddleware(h)
	h = corsMiddleware(h)
	h = observe.Middleware(s.metrics)(h)
	return h
}

// handleConverse runs one conversation turn, streaming pipeline events as
// SSE until the stream terminates or the client disconnects.
func (s *Server) handleConverse(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, _, err := r.FormFile("audio")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing audio file",
			"Upload the recorded utterance as multipart field 'audio'.")
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unreadable audio file",
			"The uploaded audio could not be read. Please try again.")
		return
	}

	q := r.URL.Query()
	var history []tutor.Turn
	if raw := q.Get("history"); raw != "" {
		// Malformed history degrades to an empty conversation.
		if err := json.Unmarshal([]byte(raw), &history); err != nil {
			history = nil
		}
	}

	observe.Logger(r.Context()).Debug("conversation request",
		"language", q.Get("language"),
		"dialect", q.Get("dialect"),
		"audio_bytes", len(audio),
		"history_turns", len(history),
	)

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "Streaming unsupported",
			"The server connection does not support streaming responses.")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	events := s.pipe.Run(r.Context(), pipeline.Request{
		Audio:    audio,
		Language: q.Get("language"),
		Dialect:  q.Get("dialect"),
		History:  history,
	})
	for ev := range events {
		if err := writeSSE(w, ev); err != nil {
			// Client is gone; the pipeline stops on context cancellation.
			return
		}
		flusher.Flush()
	}
}

// writeSSE writes one event in text/event-stream framing.
func writeSSE(w io.Writer, ev pipeline.Event) error {
	data, err := json.Marshal(ev.Data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, data)
	return err
}

// greetingResponse is the payload of GET /greeting.
type greetingResponse struct {
	TutorName       string `json:"tutor_name"`
	Region          string `json:"region"`
	GreetingNative  string `json:"greeting_native"`
	GreetingEnglish string `json:"greeting_english"`
	AudioBase64     string `json:"audio_base64"`
	Personality     string `json:"personality"`
}

// handleGreeting returns the tutor's opening line with an English rendering
// and, when requested, synthesized audio. Translation and synthesis run
// concurrently and both degrade to empty strings on failure.
func (s *Server) handleGreeting(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lang, tutorPersona := s.registry.Resolve(q.Get("language"), q.Get("dialect"))
	includeAudio := q.Get("include_audio") == "true"

	var (
		translation string
		audioBase64 string
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		translated, err := s.translator.Translate(ctx, tutorPersona.Greeting, lang.TranslateCode, "en")
		if err != nil {
			s.log.WarnContext(ctx, "greeting translation failed", slog.String("error", err.Error()))
			return nil
		}
		translation = translated
		return nil
	})
	if includeAudio {
		g.Go(func() error {
			audio, err := s.tts.Synthesize(ctx, tutorPersona.Greeting, tutorPersona.VoiceID)
			if err != nil {
				s.log.WarnContext(ctx, "greeting synthesis failed", slog.String("error", err.Error()))
				return nil
			}
			audioBase64 = base64.StdEncoding.EncodeToString(audio)
			return nil
		})
	}
	_ = g.Wait()

	writeJSON(w, http.StatusOK, greetingResponse{
		TutorName:       tutorPersona.Name,
		Region:          tutorPersona.Region,
		GreetingNative:  tutorPersona.Greeting,
		GreetingEnglish: translation,
		AudioBase64:     audioBase64,
		Personality:     tutorPersona.Personality,
	})
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"service":   "langmirror",
		"version":   s.version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// dialectSummary is one dialect entry in the catalog responses.
type dialectSummary struct {
	Name        string `json:"name"`
	Region      string `json:"region"`
	Personality string `json:"personality,omitempty"`
}

// languageSummary is one language entry in GET /languages.
type languageSummary struct {
	Name     string                    `json:"name"`
	Flag     string                    `json:"flag"`
	Dialects map[string]dialectSummary `json:"dialects"`
}

// handleLanguages lists every supported language with its dialects.
func (s *Server) handleLanguages(w http.ResponseWriter, _ *http.Request) {
	out := make(map[string]languageSummary)
	for _, lang := range s.registry.Languages() {
		dialects := make(map[string]dialectSummary, len(lang.Dialects))
		for _, d := range lang.Dialects {
			dialects[d.Key] = dialectSummary{Name: d.Name, Region: d.Region}
		}
		out[lang.Key] = languageSummary{Name: lang.Name, Flag: lang.Flag, Dialects: dialects}
	}
	writeJSON(w, http.StatusOK, out)
}

// dialectsResponse is the payload of GET /dialects/{language}.
type dialectsResponse struct {
	Language string                    `json:"language"`
	Flag     string                    `json:"flag"`
	Dialects map[string]dialectSummary `json:"dialects"`
}

// handleDialects lists the dialect personas of one language. Unlike persona
// resolution elsewhere, an unknown language here is a 404.
func (s *Server) handleDialects(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("language")
	lang, ok := s.registry.Language(key)
	if !ok {
		writeError(w, http.StatusNotFound,
			fmt.Sprintf("Language '%s' not supported", key),
			"See /languages for the supported catalog.")
		return
	}

	dialects := make(map[string]dialectSummary, len(lang.Dialects))
	for _, d := range lang.Dialects {
		dialects[d.Key] = dialectSummary{Name: d.Name, Region: d.Region, Personality: d.Personality}
	}
	writeJSON(w, http.StatusOK, dialectsResponse{
		Language: lang.Name,
		Flag:     lang.Flag,
		Dialects: dialects,
	})
}

// writeJSON encodes v as JSON with the given status code. On encoding
// failure it falls back to a plain 500 body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error":"Internal server error"}`, http.StatusInternalServerError)
	}
}

// writeError writes the standard JSON error envelope.
func writeError(w http.ResponseWriter, status int, errMsg, detail string) {
	writeJSON(w, status, map[string]string{
		"error":   errMsg,
		"message": detail,
	})
}
