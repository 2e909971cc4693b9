// Package deepgram provides a Deepgram-backed STT provider using the Deepgram
// prerecorded REST API. It implements the stt.Provider interface.
package deepgram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/langmirror/langmirror/pkg/provider/stt"
)

const (
	defaultEndpoint = "https://api.deepgram.com/v1/listen"
	defaultModel    = "nova-3"
)

// Option is a functional option for configuring the Deepgram Provider.
type Option func(*Provider)

// WithModel sets the Deepgram model to use (e.g., "nova-3", "base").
func WithModel(model string) Option {
	return func(p *Provider) { p.model = model }
}

// WithEndpoint overrides the prerecorded API endpoint. Used in tests.
func WithEndpoint(endpoint string) Option {
	return func(p *Provider) { p.endpoint = endpoint }
}

// WithHTTPClient sets the HTTP client used for all requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(p *Provider) { p.httpClient = hc }
}

// Provider implements stt.Provider backed by the Deepgram prerecorded API.
type Provider struct {
	apiKey     string
	model      string
	endpoint   string
	httpClient *http.Client
}

// Compile-time interface assertion.
var _ stt.Provider = (*Provider)(nil)

// New creates a new Deepgram Provider. apiKey must be non-empty.
func New(apiKey string, opts ...Option) (*Provider, error) {
	if apiKey == "" {
		return nil, errors.New("deepgram: apiKey must not be empty")
	}
	p := &Provider{
		apiKey:     apiKey,
		model:      defaultModel,
		endpoint:   defaultEndpoint,
		httpClient: &http.Client{},
	}
	for _, o := range opts {
		o(p)
	}
	return p, nil
}

// deepgramResponse is the JSON structure returned by the prerecorded API.
type deepgramResponse struct {
	Results struct {
		Channels []struct {
			Alternatives []struct {
				Transcript string  `json:"transcript"`
				Confidence float64 `json:"confidence"`
			} `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
}

// Transcribe implements stt.Provider. It posts the raw audio bytes to the
// prerecorded endpoint and returns the first alternative of the first channel.
func (p *Provider) Transcribe(ctx context.Context, audio []byte, language string) (stt.Transcript, error) {
	reqURL, err := p.buildURL(language)
	if err != nil {
		return stt.Transcript{}, fmt.Errorf("deepgram: build URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(audio))
	if err != nil {
		return stt.Transcript{}, fmt.Errorf("deepgram: build request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+p.apiKey)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return stt.Transcript{}, fmt.Errorf("deepgram: request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusBadRequest, http.StatusUnsupportedMediaType:
		return stt.Transcript{}, fmt.Errorf("deepgram: %w: status %d", stt.ErrInvalidAudio, resp.StatusCode)
	case http.StatusTooManyRequests:
		return stt.Transcript{}, fmt.Errorf("deepgram: %w: status %d", stt.ErrQuotaExceeded, resp.StatusCode)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return stt.Transcript{}, fmt.Errorf("deepgram: unexpected status %d: %s", resp.StatusCode, body)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return stt.Transcript{}, fmt.Errorf("deepgram: read response: %w", err)
	}
	return parseResponse(data)
}

// buildURL constructs the prerecorded endpoint URL with query parameters.
func (p *Provider) buildURL(language string) (string, error) {
	u, err := url.Parse(p.endpoint)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("model", p.model)
	q.Set("punctuate", "true")
	q.Set("smart_format", "true")
	if language != "" {
		q.Set("language", language)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// parseResponse parses a raw prerecorded API body into a Transcript.
// A well-formed response without any recognised words maps to ErrNoSpeech.
func parseResponse(data []byte) (stt.Transcript, error) {
	var resp deepgramResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return stt.Transcript{}, fmt.Errorf("deepgram: decode response: %w", err)
	}
	if len(resp.Results.Channels) == 0 || len(resp.Results.Channels[0].Alternatives) == 0 {
		return stt.Transcript{}, stt.ErrNoSpeech
	}
	alt := resp.Results.Channels[0].Alternatives[0]
	if alt.Transcript == "" {
		return stt.Transcript{}, stt.ErrNoSpeech
	}
	return stt.Transcript{Text: alt.Transcript, Confidence: alt.Confidence}, nil
}
