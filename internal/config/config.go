// Package config provides the configuration schema, loader, and provider
// registry for the LangMirror server.
package config

import "time"

// LogLevel controls log verbosity for the LangMirror server.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Config is the root configuration structure for LangMirror.
// It is typically loaded from a YAML file using [Load] or [LoadFromReader].
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Providers ProvidersConfig `yaml:"providers"`
	Tutor     TutorConfig     `yaml:"tutor"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Personas  PersonasConfig  `yaml:"personas"`
}

// ServerConfig holds network and logging settings for the server.
type ServerConfig struct {
	// ListenAddr is the TCP address the server listens on (e.g., ":8080").
	ListenAddr string `yaml:"listen_addr"`

	// LogLevel controls verbosity.
	LogLevel LogLevel `yaml:"log_level"`

	// TLS configures TLS for the server. When nil, the server runs plain HTTP.
	TLS *TLSConfig `yaml:"tls"`
}

// TLSConfig holds TLS certificate paths for enabling HTTPS.
type TLSConfig struct {
	// CertFile is the path to the PEM-encoded TLS certificate.
	CertFile string `yaml:"cert_file"`

	// KeyFile is the path to the PEM-encoded TLS private key.
	KeyFile string `yaml:"key_file"`
}

// ProvidersConfig declares which provider implementation to use for each
// pipeline stage. Each field selects a named provider registered in the
// [Registry].
type ProvidersConfig struct {
	STT       ProviderEntry `yaml:"stt"`
	LLM       ProviderEntry `yaml:"llm"`
	Translate ProviderEntry `yaml:"translate"`
	TTS       ProviderEntry `yaml:"tts"`
}

// ProviderEntry is the common configuration block shared by all provider
// types. The Name field is used to look up the constructor in the [Registry].
type ProviderEntry struct {
	// Name selects the registered provider implementation (e.g., "gemini", "deepgram").
	Name string `yaml:"name"`

	// APIKey is the authentication key for the provider's API. When empty it
	// is filled from the provider's conventional environment variable.
	APIKey string `yaml:"api_key"`

	// BaseURL overrides the provider's default API endpoint.
	// Leave empty to use the provider's built-in default.
	BaseURL string `yaml:"base_url"`

	// Model selects a specific model within the provider (e.g., "nova-3").
	Model string `yaml:"model"`

	// Options holds provider-specific configuration values not covered by the
	// standard fields above. Values may be strings, numbers, booleans, or nested maps.
	Options map[string]any `yaml:"options"`
}

// TutorConfig tunes the feedback generator.
type TutorConfig struct {
	// Models lists completion models to try in order. Earlier entries are
	// preferred; later entries are quota fallbacks.
	Models []string `yaml:"models"`

	// Temperature is the sampling temperature for feedback generation.
	Temperature float64 `yaml:"temperature"`

	// MaxTokens caps the completion length.
	MaxTokens int `yaml:"max_tokens"`
}

// RateLimitConfig bounds per-client request rates on conversation endpoints.
type RateLimitConfig struct {
	// MaxRequests is the number of requests admitted per window.
	MaxRequests int `yaml:"max_requests"`

	// Window is the sliding-window length.
	Window time.Duration `yaml:"window"`
}

// PersonasConfig points at an optional external tutor catalog. When
// CatalogFile is empty the compiled-in catalog is used.
type PersonasConfig struct {
	CatalogFile string `yaml:"catalog_file"`
}

// DefaultModels is the completion model fallback chain used when
// tutor.models is not configured. Lite models lead because their free-tier
// quotas are the most generous.
var DefaultModels = []string{
	"gemini-2.0-flash-lite",
	"gemini-2.0-flash-lite-001",
	"gemini-flash-lite-latest",
	"gemini-2.0-flash",
	"gemini-2.0-flash-001",
	"gemini-flash-latest",
	"gemini-2.0-flash-exp",
}
