// Package whisper provides an STT provider backed by the OpenAI audio
// transcription API (Whisper). It implements the stt.Provider interface.
package whisper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"

	"github.com/langmirror/langmirror/pkg/provider/stt"
)

const defaultModel = oai.AudioModelWhisper1

// Option is a functional option for configuring the Whisper Provider.
type Option func(*config)

// config holds optional configuration for the provider.
type config struct {
	model      string
	baseURL    string
	httpClient *http.Client
}

// WithModel sets the transcription model (e.g., "whisper-1").
func WithModel(model string) Option {
	return func(c *config) { c.model = model }
}

// WithBaseURL overrides the default OpenAI API base URL.
func WithBaseURL(url string) Option {
	return func(c *config) { c.baseURL = url }
}

// WithHTTPClient sets the HTTP client used for all requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *config) { c.httpClient = hc }
}

// Provider implements stt.Provider backed by the OpenAI transcription API.
type Provider struct {
	client oai.Client
	model  string
}

// Compile-time interface assertion.
var _ stt.Provider = (*Provider)(nil)

// New creates a new Whisper Provider. apiKey must be non-empty.
func New(apiKey string, opts ...Option) (*Provider, error) {
	if apiKey == "" {
		return nil, errors.New("whisper: apiKey must not be empty")
	}
	cfg := &config{model: defaultModel}
	for _, o := range opts {
		o(cfg)
	}

	reqOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if cfg.baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(cfg.baseURL))
	}
	if cfg.httpClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(cfg.httpClient))
	}

	return &Provider{client: oai.NewClient(reqOpts...), model: cfg.model}, nil
}

// Transcribe implements stt.Provider. The locale code is reduced to its base
// subtag because the transcription API expects ISO-639-1 languages.
func (p *Provider) Transcribe(ctx context.Context, audio []byte, language string) (stt.Transcript, error) {
	params := oai.AudioTranscriptionNewParams{
		Model: oai.AudioModel(p.model),
		File:  oai.File(bytes.NewReader(audio), "utterance.webm", "audio/webm"),
	}
	if lang := baseSubtag(language); lang != "" {
		params.Language = param.NewOpt(lang)
	}

	resp, err := p.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return stt.Transcript{}, fmt.Errorf("whisper: transcribe: %w", classify(err))
	}
	if strings.TrimSpace(resp.Text) == "" {
		return stt.Transcript{}, stt.ErrNoSpeech
	}
	return stt.Transcript{Text: resp.Text}, nil
}

// classify maps an OpenAI SDK error onto the stt sentinel taxonomy.
func classify(err error) error {
	var apiErr *oai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusBadRequest, http.StatusUnsupportedMediaType:
			return fmt.Errorf("%w: %v", stt.ErrInvalidAudio, err)
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %v", stt.ErrQuotaExceeded, err)
		}
	}
	return err
}

// baseSubtag strips the region from a BCP-47 locale code ("it-IT" → "it").
func baseSubtag(locale string) string {
	if i := strings.IndexByte(locale, '-'); i >= 0 {
		return locale[:i]
	}
	return locale
}
