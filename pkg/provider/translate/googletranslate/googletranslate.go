// Package googletranslate provides a translation provider backed by the
// Google Cloud Translation v2 REST API (API-key authentication). It
// implements the translate.Provider interface.
package googletranslate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/langmirror/langmirror/pkg/provider/translate"
)

const defaultEndpoint = "https://translation.googleapis.com/language/translate/v2"

// Option is a functional option for configuring the Provider.
type Option func(*Provider)

// WithEndpoint overrides the Translation v2 endpoint. Used in tests.
func WithEndpoint(endpoint string) Option {
	return func(p *Provider) { p.endpoint = endpoint }
}

// WithHTTPClient sets the HTTP client used for all requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(p *Provider) { p.httpClient = hc }
}

// Provider implements translate.Provider backed by Translation v2.
type Provider struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

// Compile-time interface assertion.
var _ translate.Provider = (*Provider)(nil)

// New creates a new Provider. apiKey must be non-empty.
func New(apiKey string, opts ...Option) (*Provider, error) {
	if apiKey == "" {
		return nil, errors.New("googletranslate: apiKey must not be empty")
	}
	p := &Provider{
		apiKey:     apiKey,
		endpoint:   defaultEndpoint,
		httpClient: &http.Client{},
	}
	for _, o := range opts {
		o(p)
	}
	return p, nil
}

// translateResponse is the v2 translate response envelope.
type translateResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText string `json:"translatedText"`
		} `json:"translations"`
	} `json:"data"`
}

// detectResponse is the v2 detect response envelope. Detections are nested
// one level deeper than translations: one inner list per input string.
type detectResponse struct {
	Data struct {
		Detections [][]struct {
			Language   string  `json:"language"`
			Confidence float64 `json:"confidence"`
		} `json:"detections"`
	} `json:"data"`
}

// Translate implements translate.Provider. The v2 API HTML-escapes text
// results, so entities are decoded before returning.
func (p *Provider) Translate(ctx context.Context, text, source, target string) (string, error) {
	form := url.Values{}
	form.Set("q", text)
	form.Set("source", source)
	form.Set("target", target)
	form.Set("format", "text")

	body, err := p.post(ctx, p.endpoint, form)
	if err != nil {
		return "", fmt.Errorf("googletranslate: translate: %w", err)
	}

	translated, err := parseTranslateResponse(body)
	if err != nil {
		return "", fmt.Errorf("googletranslate: translate: %w", err)
	}
	return translated, nil
}

// DetectLanguage implements translate.Provider.
func (p *Provider) DetectLanguage(ctx context.Context, text string) (translate.Detection, error) {
	form := url.Values{}
	form.Set("q", text)

	body, err := p.post(ctx, p.endpoint+"/detect", form)
	if err != nil {
		return translate.Detection{}, fmt.Errorf("googletranslate: detect: %w", err)
	}

	det, err := parseDetectResponse(body)
	if err != nil {
		return translate.Detection{}, fmt.Errorf("googletranslate: detect: %w", err)
	}
	return det, nil
}

// post issues a form-encoded POST with the API key appended and returns the
// response body on a 200 status.
func (p *Provider) post(ctx context.Context, endpoint string, form url.Values) ([]byte, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("key", p.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body)
	}
	return io.ReadAll(resp.Body)
}

// parseTranslateResponse extracts the first translation from a v2 response
// body, decoding HTML entities (the API returns e.g. &#39; for apostrophes).
func parseTranslateResponse(data []byte) (string, error) {
	var resp translateResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(resp.Data.Translations) == 0 {
		return "", errors.New("empty translations in response")
	}
	return html.UnescapeString(resp.Data.Translations[0].TranslatedText), nil
}

// parseDetectResponse extracts the first detection from a v2 detect body.
// An empty detection list is not an error: it maps to an undetermined
// Detection so callers can apply their fail-open policy.
func parseDetectResponse(data []byte) (translate.Detection, error) {
	var resp detectResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return translate.Detection{}, fmt.Errorf("decode response: %w", err)
	}
	if len(resp.Data.Detections) == 0 || len(resp.Data.Detections[0]) == 0 {
		return translate.Detection{Language: "und"}, nil
	}
	d := resp.Data.Detections[0][0]
	return translate.Detection{
		Language:   strings.ToLower(d.Language),
		Confidence: d.Confidence,
	}, nil
}
