// Command langmirror is the main entry point for the LangMirror language
// tutoring server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"google.golang.org/genai"

	"github.com/langmirror/langmirror/internal/config"
	"github.com/langmirror/langmirror/internal/langdetect"
	"github.com/langmirror/langmirror/internal/observe"
	"github.com/langmirror/langmirror/internal/persona"
	"github.com/langmirror/langmirror/internal/pipeline"
	"github.com/langmirror/langmirror/internal/ratelimit"
	"github.com/langmirror/langmirror/internal/server"
	"github.com/langmirror/langmirror/internal/tutor"
	"github.com/langmirror/langmirror/pkg/provider/llm"
	"github.com/langmirror/langmirror/pkg/provider/llm/gemini"
	"github.com/langmirror/langmirror/pkg/provider/llm/openai"
	"github.com/langmirror/langmirror/pkg/provider/stt/deepgram"
	"github.com/langmirror/langmirror/pkg/provider/stt/whisper"
	"github.com/langmirror/langmirror/pkg/provider/translate/googletranslate"
	"github.com/langmirror/langmirror/pkg/provider/tts/elevenlabs"

	sttprov "github.com/langmirror/langmirror/pkg/provider/stt"
	translateprov "github.com/langmirror/langmirror/pkg/provider/translate"
	ttsprov "github.com/langmirror/langmirror/pkg/provider/tts"
)

// version is overridden at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	// ── CLI flags ──────────────────────────────────────────────────────────────
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	flag.Parse()

	// ── Load configuration ────────────────────────────────────────────────────
	cfg, err := config.Load(*configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "langmirror: config file %q not found — copy configs/example.yaml to get started\n", *configPath)
		} else {
			fmt.Fprintf(os.Stderr, "langmirror: %v\n", err)
		}
		return 1
	}

	// ── Logger ────────────────────────────────────────────────────────────────
	logLevel := &slog.LevelVar{}
	logLevel.Set(slogLevel(cfg.Server.LogLevel))
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	slog.Info("langmirror starting",
		"version", version,
		"config", *configPath,
		"listen_addr", cfg.Server.ListenAddr,
		"log_level", cfg.Server.LogLevel,
	)

	// ── Signal context ────────────────────────────────────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Telemetry ─────────────────────────────────────────────────────────────
	otelShutdown, err := observe.InitProvider(ctx, observe.ProviderConfig{
		ServiceName:    "langmirror",
		ServiceVersion: version,
	})
	if err != nil {
		slog.Error("failed to initialise telemetry", "err", err)
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := otelShutdown(shutdownCtx); err != nil {
			slog.Warn("telemetry shutdown error", "err", err)
		}
	}()

	// ── Provider registry ─────────────────────────────────────────────────────
	httpClient := &http.Client{Timeout: 30 * time.Second}
	reg := config.NewRegistry()
	registerBuiltinProviders(ctx, reg, httpClient)

	// ── Instantiate providers ─────────────────────────────────────────────────
	sttProvider, err := reg.CreateSTT(cfg.Providers.STT)
	if err != nil {
		slog.Error("failed to create stt provider", "name", cfg.Providers.STT.Name, "err", err)
		return 1
	}
	translator, err := reg.CreateTranslate(cfg.Providers.Translate)
	if err != nil {
		slog.Error("failed to create translate provider", "name", cfg.Providers.Translate.Name, "err", err)
		return 1
	}
	synth, err := reg.CreateTTS(cfg.Providers.TTS)
	if err != nil {
		slog.Error("failed to create tts provider", "name", cfg.Providers.TTS.Name, "err", err)
		return 1
	}
	backends, err := buildBackends(cfg, reg)
	if err != nil {
		slog.Error("failed to create llm backends", "err", err)
		return 1
	}
	for kind, name := range map[string]string{
		"stt":       cfg.Providers.STT.Name,
		"llm":       cfg.Providers.LLM.Name,
		"translate": cfg.Providers.Translate.Name,
		"tts":       cfg.Providers.TTS.Name,
	} {
		slog.Info("provider created", "kind", kind, "name", name)
	}

	// ── Tutor catalog ─────────────────────────────────────────────────────────
	registry, err := loadPersonas(cfg)
	if err != nil {
		slog.Error("failed to load tutor catalog", "file", cfg.Personas.CatalogFile, "err", err)
		return 1
	}

	// ── Pipeline ──────────────────────────────────────────────────────────────
	generator, err := tutor.NewGenerator(backends, logger,
		tutor.WithTemperature(cfg.Tutor.Temperature),
		tutor.WithMaxTokens(cfg.Tutor.MaxTokens),
	)
	if err != nil {
		slog.Error("failed to build feedback generator", "err", err)
		return 1
	}
	pipe, err := pipeline.New(pipeline.Config{
		Registry:   registry,
		STT:        sttProvider,
		Detector:   langdetect.New(translator, logger),
		Generator:  generator,
		Translator: translator,
		TTS:        synth,
		Log:        logger,
	})
	if err != nil {
		slog.Error("failed to build pipeline", "err", err)
		return 1
	}

	// ── Rate limiter ──────────────────────────────────────────────────────────
	limiter := ratelimit.New(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window)
	go func() {
		ticker := time.NewTicker(cfg.RateLimit.Window)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				limiter.Prune()
			}
		}
	}()

	// ── HTTP server ───────────────────────────────────────────────────────────
	srv, err := server.New(server.Config{
		Pipeline:   pipe,
		Registry:   registry,
		Translator: translator,
		TTS:        synth,
		Limiter:    limiter,
		Log:        logger,
		Version:    version,
	})
	if err != nil {
		slog.Error("failed to build server", "err", err)
		return 1
	}

	httpServer := &http.Server{
		Addr:              cfg.Server.ListenAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ── Config watcher ────────────────────────────────────────────────────────
	watcher, err := config.NewWatcher(*configPath, func(old, new *config.Config) {
		d := config.Diff(old, new)
		if !d.Any() {
			return
		}
		if d.LogLevelChanged {
			logLevel.Set(slogLevel(d.NewLogLevel))
			slog.Info("log level updated", "level", d.NewLogLevel)
		}
		if d.RateLimitChanged {
			limiter.SetLimits(d.NewRateLimit.MaxRequests, d.NewRateLimit.Window)
			slog.Info("rate limits updated",
				"max_requests", d.NewRateLimit.MaxRequests,
				"window", d.NewRateLimit.Window,
			)
		}
		if d.ModelsChanged {
			slog.Warn("tutor.models changed — restart to apply", "models", d.NewModels)
		}
		if d.PersonasChanged {
			slog.Warn("personas.catalog_file changed — restart to apply", "file", d.NewCatalogFile)
		}
	})
	if err != nil {
		slog.Warn("config watcher disabled", "err", err)
	} else {
		defer watcher.Stop()
	}

	// ── Serve ─────────────────────────────────────────────────────────────────
	errCh := make(chan error, 1)
	go func() {
		slog.Info("server ready — press Ctrl+C to shut down", "addr", cfg.Server.ListenAddr)
		if cfg.Server.TLS != nil {
			errCh <- httpServer.ListenAndServeTLS(cfg.Server.TLS.CertFile, cfg.Server.TLS.KeyFile)
		} else {
			errCh <- httpServer.ListenAndServe()
		}
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("serve error", "err", err)
			return 1
		}
	case <-ctx.Done():
	}

	// ── Graceful shutdown ─────────────────────────────────────────────────────
	slog.Info("shutdown signal received, stopping…")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "err", err)
		return 1
	}
	slog.Info("goodbye")
	return 0
}

// ── Provider wiring ───────────────────────────────────────────────────────────

// registerBuiltinProviders wires all built-in provider factories into reg.
// Each factory receives a config.ProviderEntry and constructs the appropriate
// provider from the real implementation packages.
func registerBuiltinProviders(ctx context.Context, reg *config.Registry, hc *http.Client) {
	// ── STT ───────────────────────────────────────────────────────────────────

	reg.RegisterSTT("deepgram", func(entry config.ProviderEntry) (sttprov.Provider, error) {
		opts := []deepgram.Option{deepgram.WithHTTPClient(hc)}
		if entry.Model != "" {
			opts = append(opts, deepgram.WithModel(entry.Model))
		}
		if entry.BaseURL != "" {
			opts = append(opts, deepgram.WithEndpoint(entry.BaseURL))
		}
		return deepgram.New(entry.APIKey, opts...)
	})

	reg.RegisterSTT("whisper", func(entry config.ProviderEntry) (sttprov.Provider, error) {
		opts := []whisper.Option{whisper.WithHTTPClient(hc)}
		if entry.Model != "" {
			opts = append(opts, whisper.WithModel(entry.Model))
		}
		if entry.BaseURL != "" {
			opts = append(opts, whisper.WithBaseURL(entry.BaseURL))
		}
		return whisper.New(entry.APIKey, opts...)
	})

	// ── LLM ───────────────────────────────────────────────────────────────────
	// One genai.Client is shared by every Gemini model in the fallback chain.

	var (
		geminiOnce   sync.Once
		geminiClient *genai.Client
		geminiErr    error
	)
	reg.RegisterLLM("gemini", func(entry config.ProviderEntry) (llm.Provider, error) {
		geminiOnce.Do(func() {
			geminiClient, geminiErr = gemini.NewClient(ctx, entry.APIKey, hc)
		})
		if geminiErr != nil {
			return nil, geminiErr
		}
		return gemini.New(geminiClient, entry.Model)
	})

	reg.RegisterLLM("openai", func(entry config.ProviderEntry) (llm.Provider, error) {
		opts := []openai.Option{openai.WithHTTPClient(hc)}
		if entry.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(entry.BaseURL))
		}
		return openai.New(entry.APIKey, entry.Model, opts...)
	})

	// ── Translate ─────────────────────────────────────────────────────────────

	reg.RegisterTranslate("googletranslate", func(entry config.ProviderEntry) (translateprov.Provider, error) {
		opts := []googletranslate.Option{googletranslate.WithHTTPClient(hc)}
		if entry.BaseURL != "" {
			opts = append(opts, googletranslate.WithEndpoint(entry.BaseURL))
		}
		return googletranslate.New(entry.APIKey, opts...)
	})

	// ── TTS ───────────────────────────────────────────────────────────────────

	reg.RegisterTTS("elevenlabs", func(entry config.ProviderEntry) (ttsprov.Provider, error) {
		opts := []elevenlabs.Option{elevenlabs.WithHTTPClient(hc)}
		if entry.Model != "" {
			opts = append(opts, elevenlabs.WithModel(entry.Model))
		}
		if entry.BaseURL != "" {
			opts = append(opts, elevenlabs.WithBaseURL(entry.BaseURL))
		}
		return elevenlabs.New(entry.APIKey, opts...)
	})
}

// buildBackends instantiates one llm.Provider per configured tutor model,
// preserving the fallback order of cfg.Tutor.Models.
func buildBackends(cfg *config.Config, reg *config.Registry) ([]llm.Provider, error) {
	backends := make([]llm.Provider, 0, len(cfg.Tutor.Models))
	for _, model := range cfg.Tutor.Models {
		entry := cfg.Providers.LLM
		entry.Model = model
		p, err := reg.CreateLLM(entry)
		if err != nil {
			return nil, fmt.Errorf("create llm backend %s/%s: %w", entry.Name, model, err)
		}
		backends = append(backends, p)
	}
	return backends, nil
}

// loadPersonas returns the tutor catalog: the external YAML file when one is
// configured, the compiled-in catalog otherwise.
func loadPersonas(cfg *config.Config) (*persona.Registry, error) {
	if cfg.Personas.CatalogFile != "" {
		return persona.LoadCatalog(cfg.Personas.CatalogFile)
	}
	return persona.NewBuiltinRegistry(), nil
}

// ── Logger ─────────────────────────────────────────────────────────────────────

func slogLevel(level config.LogLevel) slog.Level {
	switch level {
	case config.LogDebug:
		return slog.LevelDebug
	case config.LogWarn:
		return slog.LevelWarn
	case config.LogError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
