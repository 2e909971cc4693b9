package config_test

import (
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/langmirror/langmirror/internal/config"
)

func TestApplyDefaults_EmptyConfig(t *testing.T) {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)

	if cfg.Server.ListenAddr != ":8080" {
		t.Errorf("listen_addr: got %q, want %q", cfg.Server.ListenAddr, ":8080")
	}
	if cfg.Server.LogLevel != config.LogInfo {
		t.Errorf("log_level: got %q, want %q", cfg.Server.LogLevel, config.LogInfo)
	}
	if cfg.Providers.STT.Name != "deepgram" {
		t.Errorf("stt provider: got %q, want %q", cfg.Providers.STT.Name, "deepgram")
	}
	if cfg.Providers.LLM.Name != "gemini" {
		t.Errorf("llm provider: got %q, want %q", cfg.Providers.LLM.Name, "gemini")
	}
	if cfg.Providers.Translate.Name != "googletranslate" {
		t.Errorf("translate provider: got %q, want %q", cfg.Providers.Translate.Name, "googletranslate")
	}
	if cfg.Providers.TTS.Name != "elevenlabs" {
		t.Errorf("tts provider: got %q, want %q", cfg.Providers.TTS.Name, "elevenlabs")
	}
	if !slices.Equal(cfg.Tutor.Models, config.DefaultModels) {
		t.Errorf("tutor.models: got %v, want default chain", cfg.Tutor.Models)
	}
	if cfg.Tutor.Temperature != 0.8 {
		t.Errorf("tutor.temperature: got %.2f, want 0.8", cfg.Tutor.Temperature)
	}
	if cfg.Tutor.MaxTokens != 300 {
		t.Errorf("tutor.max_tokens: got %d, want 300", cfg.Tutor.MaxTokens)
	}
	if cfg.RateLimit.MaxRequests != 20 {
		t.Errorf("rate_limit.max_requests: got %d, want 20", cfg.RateLimit.MaxRequests)
	}
	if cfg.RateLimit.Window != time.Minute {
		t.Errorf("rate_limit.window: got %v, want 1m", cfg.RateLimit.Window)
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &config.Config{
		Server: config.ServerConfig{ListenAddr: ":3000", LogLevel: config.LogError},
		Tutor:  config.TutorConfig{Models: []string{"gemini-2.0-flash"}, Temperature: 0.3, MaxTokens: 150},
	}
	config.ApplyDefaults(cfg)

	if cfg.Server.ListenAddr != ":3000" {
		t.Errorf("listen_addr was overwritten: got %q", cfg.Server.ListenAddr)
	}
	if cfg.Server.LogLevel != config.LogError {
		t.Errorf("log_level was overwritten: got %q", cfg.Server.LogLevel)
	}
	if len(cfg.Tutor.Models) != 1 || cfg.Tutor.Models[0] != "gemini-2.0-flash" {
		t.Errorf("tutor.models was overwritten: got %v", cfg.Tutor.Models)
	}
	if cfg.Tutor.Temperature != 0.3 {
		t.Errorf("tutor.temperature was overwritten: got %.2f", cfg.Tutor.Temperature)
	}
	if cfg.Tutor.MaxTokens != 150 {
		t.Errorf("tutor.max_tokens was overwritten: got %d", cfg.Tutor.MaxTokens)
	}
}

func TestApplyDefaults_EnvAPIKeyFallback(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-gemini")
	t.Setenv("DEEPGRAM_API_KEY", "env-deepgram")

	cfg := &config.Config{}
	config.ApplyDefaults(cfg)

	if cfg.Providers.LLM.APIKey != "env-gemini" {
		t.Errorf("llm api key: got %q, want %q", cfg.Providers.LLM.APIKey, "env-gemini")
	}
	if cfg.Providers.STT.APIKey != "env-deepgram" {
		t.Errorf("stt api key: got %q, want %q", cfg.Providers.STT.APIKey, "env-deepgram")
	}
}

func TestApplyDefaults_ConfigKeyBeatsEnv(t *testing.T) {
	t.Setenv("ELEVENLABS_API_KEY", "env-eleven")

	cfg := &config.Config{}
	cfg.Providers.TTS.APIKey = "file-eleven"
	config.ApplyDefaults(cfg)

	if cfg.Providers.TTS.APIKey != "file-eleven" {
		t.Errorf("tts api key: got %q, want config value to win", cfg.Providers.TTS.APIKey)
	}
}

func TestApplyDefaults_WhisperUsesOpenAIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "env-openai")

	cfg := &config.Config{}
	cfg.Providers.STT.Name = "whisper"
	config.ApplyDefaults(cfg)

	if cfg.Providers.STT.APIKey != "env-openai" {
		t.Errorf("whisper api key: got %q, want %q", cfg.Providers.STT.APIKey, "env-openai")
	}
}

func TestLoadFromReader_DefaultsApplied(t *testing.T) {
	cfg, err := config.LoadFromReader(strings.NewReader("{}"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.ListenAddr != ":8080" {
		t.Errorf("listen_addr: got %q, want %q", cfg.Server.ListenAddr, ":8080")
	}
	if len(cfg.Tutor.Models) != len(config.DefaultModels) {
		t.Errorf("tutor.models: got %d entries, want %d", len(cfg.Tutor.Models), len(config.DefaultModels))
	}
}

func TestDefaultModels_LitePreferred(t *testing.T) {
	if len(config.DefaultModels) == 0 {
		t.Fatal("DefaultModels should not be empty")
	}
	if !strings.Contains(config.DefaultModels[0], "lite") {
		t.Errorf("first fallback model should be a lite variant, got %q", config.DefaultModels[0])
	}
}

func TestValidProviderNames(t *testing.T) {
	// Sanity-check that the map is populated.
	if len(config.ValidProviderNames) == 0 {
		t.Fatal("ValidProviderNames should not be empty")
	}
	llmNames := config.ValidProviderNames["llm"]
	if len(llmNames) == 0 {
		t.Fatal("ValidProviderNames[\"llm\"] should not be empty")
	}
	found := false
	for _, n := range llmNames {
		if n == "gemini" {
			found = true
			break
		}
	}
	if !found {
		t.Error("ValidProviderNames[\"llm\"] should contain \"gemini\"")
	}
}
