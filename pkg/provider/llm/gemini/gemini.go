// Package gemini provides an LLM provider backed by the Google Gemini API.
// It implements the llm.Provider interface. A single *genai.Client is shared
// across every model-specific Provider so outbound connections are pooled.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/genai"

	"github.com/langmirror/langmirror/pkg/provider/llm"
)

// NewClient creates a shared Gemini API client. apiKey must be non-empty.
// httpClient may be nil to use the SDK default.
func NewClient(ctx context.Context, apiKey string, httpClient *http.Client) (*genai.Client, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: apiKey must not be empty")
	}
	return genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		HTTPClient: httpClient,
	})
}

// Provider implements llm.Provider for one Gemini model. Build one Provider
// per entry in the model priority list, all sharing the same client.
type Provider struct {
	client *genai.Client
	model  string
}

// Compile-time interface assertion.
var _ llm.Provider = (*Provider)(nil)

// New constructs a Provider for the given model (e.g., "gemini-2.0-flash-lite").
func New(client *genai.Client, model string) (*Provider, error) {
	if client == nil {
		return nil, errors.New("gemini: client must not be nil")
	}
	if model == "" {
		return nil, errors.New("gemini: model must not be empty")
	}
	return &Provider{client: client, model: model}, nil
}

// Name implements llm.Provider.
func (p *Provider) Name() string { return "gemini/" + p.model }

// Complete implements llm.Provider. Quota and not-found failures are wrapped
// with llm.ErrQuotaExhausted and llm.ErrModelNotFound for classification.
func (p *Provider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	cfg := &genai.GenerateContentConfig{}
	if req.Temperature > 0 {
		t := float32(req.Temperature)
		cfg.Temperature = &t
	}
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxTokens)
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(req.Prompt), cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini: generate (%s): %w", p.model, classify(err))
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("gemini: generate (%s): empty response", p.model)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	return &llm.CompletionResponse{Content: sb.String()}, nil
}

// classify maps a Gemini SDK error onto the llm sentinel taxonomy. Unmatched
// errors are returned unchanged.
func classify(err error) error {
	code := 0
	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		code = apiErr.HTTPCode()
	}
	var genaiErr genai.APIError
	if errors.As(err, &genaiErr) {
		code = genaiErr.Code
	}

	switch code {
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %v", llm.ErrQuotaExhausted, err)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %v", llm.ErrModelNotFound, err)
	}

	// The SDK does not always surface a structured code; fall back to the
	// same substring matching the quota responses are known to carry.
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "429"), strings.Contains(msg, "quota"),
		strings.Contains(msg, "resource"), strings.Contains(msg, "exhausted"):
		return fmt.Errorf("%w: %v", llm.ErrQuotaExhausted, err)
	case strings.Contains(msg, "404"), strings.Contains(msg, "not found"):
		return fmt.Errorf("%w: %v", llm.ErrModelNotFound, err)
	}
	return err
}
