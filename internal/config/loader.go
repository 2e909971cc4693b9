package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

// ValidProviderNames lists known provider names per provider kind.
// Used by [Validate] to warn about unrecognised provider names.
var ValidProviderNames = map[string][]string{
	"stt":       {"deepgram", "whisper"},
	"llm":       {"gemini", "openai"},
	"translate": {"googletranslate"},
	"tts":       {"elevenlabs"},
}

// envKeys maps provider names to the environment variable consulted when
// api_key is absent from the config file.
var envKeys = map[string]string{
	"gemini":          "GEMINI_API_KEY",
	"openai":          "OPENAI_API_KEY",
	"whisper":         "OPENAI_API_KEY",
	"deepgram":        "DEEPGRAM_API_KEY",
	"googletranslate": "GOOGLE_TRANSLATE_API_KEY",
	"elevenlabs":      "ELEVENLABS_API_KEY",
}

// Load reads the YAML configuration file at path and returns a validated [Config].
// It is a convenience wrapper around [LoadFromReader] and [Validate].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r, applies defaults and
// environment fallbacks, and validates the result. Useful in tests where
// configs are constructed from string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	ApplyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyDefaults fills zero-valued fields with production defaults and pulls
// missing API keys from the environment.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = ":8080"
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = LogInfo
	}
	if cfg.Providers.STT.Name == "" {
		cfg.Providers.STT.Name = "deepgram"
	}
	if cfg.Providers.LLM.Name == "" {
		cfg.Providers.LLM.Name = "gemini"
	}
	if cfg.Providers.Translate.Name == "" {
		cfg.Providers.Translate.Name = "googletranslate"
	}
	if cfg.Providers.TTS.Name == "" {
		cfg.Providers.TTS.Name = "elevenlabs"
	}
	for _, entry := range []*ProviderEntry{
		&cfg.Providers.STT, &cfg.Providers.LLM,
		&cfg.Providers.Translate, &cfg.Providers.TTS,
	} {
		if entry.APIKey == "" {
			entry.APIKey = os.Getenv(envKeys[entry.Name])
		}
	}
	if len(cfg.Tutor.Models) == 0 {
		cfg.Tutor.Models = slices.Clone(DefaultModels)
	}
	if cfg.Tutor.Temperature == 0 {
		cfg.Tutor.Temperature = 0.8
	}
	if cfg.Tutor.MaxTokens == 0 {
		cfg.Tutor.MaxTokens = 300
	}
	if cfg.RateLimit.MaxRequests == 0 {
		cfg.RateLimit.MaxRequests = 20
	}
	if cfg.RateLimit.Window == 0 {
		cfg.RateLimit.Window = time.Minute
	}
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Server.LogLevel != "" && !cfg.Server.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("server.log_level %q is invalid; valid values: debug, info, warn, error", cfg.Server.LogLevel))
	}
	if cfg.Server.TLS != nil {
		if cfg.Server.TLS.CertFile == "" || cfg.Server.TLS.KeyFile == "" {
			errs = append(errs, fmt.Errorf("server.tls requires both cert_file and key_file"))
		}
	}

	validateProviderName("stt", cfg.Providers.STT.Name)
	validateProviderName("llm", cfg.Providers.LLM.Name)
	validateProviderName("translate", cfg.Providers.Translate.Name)
	validateProviderName("tts", cfg.Providers.TTS.Name)

	for kind, entry := range map[string]ProviderEntry{
		"stt":       cfg.Providers.STT,
		"llm":       cfg.Providers.LLM,
		"translate": cfg.Providers.Translate,
		"tts":       cfg.Providers.TTS,
	} {
		if entry.APIKey == "" {
			slog.Warn("provider has no API key configured; its pipeline stage will fail at runtime",
				"kind", kind, "name", entry.Name)
		}
	}

	if cfg.Tutor.Temperature < 0 || cfg.Tutor.Temperature > 2 {
		errs = append(errs, fmt.Errorf("tutor.temperature %.2f is out of range [0, 2]", cfg.Tutor.Temperature))
	}
	if cfg.Tutor.MaxTokens < 0 {
		errs = append(errs, fmt.Errorf("tutor.max_tokens must not be negative"))
	}
	if cfg.RateLimit.MaxRequests < 0 {
		errs = append(errs, fmt.Errorf("rate_limit.max_requests must not be negative"))
	}
	if cfg.RateLimit.Window < 0 {
		errs = append(errs, fmt.Errorf("rate_limit.window must not be negative"))
	}

	return errors.Join(errs...)
}

// validateProviderName logs a warning if name is non-empty and not found in
// the [ValidProviderNames] list for the given kind.
func validateProviderName(kind, name string) {
	if name == "" {
		return
	}
	known, ok := ValidProviderNames[kind]
	if !ok {
		return
	}
	if slices.Contains(known, name) {
		return
	}
	slog.Warn("unknown provider name — may be a typo or third-party provider",
		"kind", kind,
		"name", name,
		"known", known,
	)
}
