// Package openai provides an LLM provider backed by the OpenAI chat API.
// It implements the llm.Provider interface.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/shared"

	"github.com/langmirror/langmirror/pkg/provider/llm"
)

// Option is a functional option for Provider.
type Option func(*config)

// config holds optional configuration for the provider.
type config struct {
	baseURL    string
	httpClient *http.Client
}

// WithBaseURL overrides the default OpenAI API base URL.
func WithBaseURL(url string) Option {
	return func(c *config) { c.baseURL = url }
}

// WithHTTPClient sets the HTTP client used for all requests, so outbound
// connections can be pooled with the rest of the service.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *config) { c.httpClient = hc }
}

// Provider implements llm.Provider using the OpenAI API.
type Provider struct {
	client oai.Client
	model  string
}

// Compile-time interface assertion.
var _ llm.Provider = (*Provider)(nil)

// New constructs a new OpenAI LLM Provider.
func New(apiKey, model string, opts ...Option) (*Provider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai: apiKey must not be empty")
	}
	if model == "" {
		return nil, fmt.Errorf("openai: model must not be empty")
	}

	cfg := &config{}
	for _, o := range opts {
		o(cfg)
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}
	if cfg.baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(cfg.baseURL))
	}
	if cfg.httpClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(cfg.httpClient))
	}

	return &Provider{client: oai.NewClient(reqOpts...), model: model}, nil
}

// Name implements llm.Provider.
func (p *Provider) Name() string { return "openai/" + p.model }

// Complete implements llm.Provider.
func (p *Provider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	params := oai.ChatCompletionNewParams{
		Model: shared.ChatModel(p.model),
		Messages: []oai.ChatCompletionMessageParamUnion{
			oai.UserMessage(req.Prompt),
		},
	}
	if req.Temperature > 0 {
		params.Temperature = param.NewOpt(req.Temperature)
	}
	if req.MaxTokens > 0 {
		params.MaxCompletionTokens = param.NewOpt(int64(req.MaxTokens))
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai: complete (%s): %w", p.model, classify(err))
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai: complete (%s): no choices", p.model)
	}
	return &llm.CompletionResponse{Content: resp.Choices[0].Message.Content}, nil
}

// classify maps an OpenAI SDK error onto the llm sentinel taxonomy.
func classify(err error) error {
	var apiErr *oai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %v", llm.ErrQuotaExhausted, err)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %v", llm.ErrModelNotFound, err)
		}
	}
	return err
}
