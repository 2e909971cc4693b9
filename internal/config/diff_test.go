package config_test

import (
	"testing"
	"time"

	"github.com/langmirror/langmirror/internal/config"
)

func TestDiff_NoChanges(t *testing.T) {
	t.Parallel()
	cfg := &config.Config{
		Server:    config.ServerConfig{LogLevel: config.LogInfo},
		Tutor:     config.TutorConfig{Models: []string{"gemini-2.0-flash"}},
		RateLimit: config.RateLimitConfig{MaxRequests: 20, Window: time.Minute},
	}
	d := config.Diff(cfg, cfg)
	if d.Any() {
		t.Errorf("expected no changes for identical configs, got %+v", d)
	}
}

func TestDiff_LogLevelChanged(t *testing.T) {
	t.Parallel()
	old := &config.Config{Server: config.ServerConfig{LogLevel: config.LogInfo}}
	new := &config.Config{Server: config.ServerConfig{LogLevel: config.LogDebug}}

	d := config.Diff(old, new)
	if !d.LogLevelChanged {
		t.Error("expected LogLevelChanged=true")
	}
	if d.NewLogLevel != config.LogDebug {
		t.Errorf("expected NewLogLevel=debug, got %q", d.NewLogLevel)
	}
	if !d.Any() {
		t.Error("expected Any()=true")
	}
}

func TestDiff_ModelsChanged(t *testing.T) {
	t.Parallel()
	old := &config.Config{Tutor: config.TutorConfig{Models: []string{"gemini-2.0-flash-lite", "gemini-2.0-flash"}}}
	new := &config.Config{Tutor: config.TutorConfig{Models: []string{"gemini-2.0-flash"}}}

	d := config.Diff(old, new)
	if !d.ModelsChanged {
		t.Error("expected ModelsChanged=true")
	}
	if len(d.NewModels) != 1 || d.NewModels[0] != "gemini-2.0-flash" {
		t.Errorf("NewModels: got %v", d.NewModels)
	}
}

func TestDiff_ModelsReorderedCounts(t *testing.T) {
	t.Parallel()
	// Order is the fallback priority, so a reorder is a real change.
	old := &config.Config{Tutor: config.TutorConfig{Models: []string{"a", "b"}}}
	new := &config.Config{Tutor: config.TutorConfig{Models: []string{"b", "a"}}}

	d := config.Diff(old, new)
	if !d.ModelsChanged {
		t.Error("expected ModelsChanged=true for reordered models")
	}
}

func TestDiff_RateLimitChanged(t *testing.T) {
	t.Parallel()
	old := &config.Config{RateLimit: config.RateLimitConfig{MaxRequests: 20, Window: time.Minute}}
	new := &config.Config{RateLimit: config.RateLimitConfig{MaxRequests: 50, Window: time.Minute}}

	d := config.Diff(old, new)
	if !d.RateLimitChanged {
		t.Error("expected RateLimitChanged=true")
	}
	if d.NewRateLimit.MaxRequests != 50 {
		t.Errorf("NewRateLimit.MaxRequests: got %d, want 50", d.NewRateLimit.MaxRequests)
	}
}

func TestDiff_CatalogFileChanged(t *testing.T) {
	t.Parallel()
	old := &config.Config{}
	new := &config.Config{Personas: config.PersonasConfig{CatalogFile: "/etc/langmirror/tutors.yaml"}}

	d := config.Diff(old, new)
	if !d.PersonasChanged {
		t.Error("expected PersonasChanged=true")
	}
	if d.NewCatalogFile != "/etc/langmirror/tutors.yaml" {
		t.Errorf("NewCatalogFile: got %q", d.NewCatalogFile)
	}
}

func TestDiff_MultipleChanges(t *testing.T) {
	t.Parallel()
	old := &config.Config{
		Server:    config.ServerConfig{LogLevel: config.LogInfo},
		RateLimit: config.RateLimitConfig{MaxRequests: 20, Window: time.Minute},
	}
	new := &config.Config{
		Server:    config.ServerConfig{LogLevel: config.LogWarn},
		RateLimit: config.RateLimitConfig{MaxRequests: 20, Window: 2 * time.Minute},
	}

	d := config.Diff(old, new)
	if !d.LogLevelChanged {
		t.Error("expected LogLevelChanged=true")
	}
	if !d.RateLimitChanged {
		t.Error("expected RateLimitChanged=true")
	}
	if d.ModelsChanged || d.PersonasChanged {
		t.Errorf("unexpected change flags: %+v", d)
	}
}
