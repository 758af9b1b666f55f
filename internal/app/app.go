// Package app assembles the service graph shared by the HTTP server, the CLI
// and the Cloud Functions.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Lllllllleong/legalease/internal/api"
	"github.com/Lllllllleong/legalease/internal/config"
	"github.com/Lllllllleong/legalease/internal/events"
	"github.com/Lllllllleong/legalease/internal/extract"
	"github.com/Lllllllleong/legalease/internal/gcp"
	"github.com/Lllllllleong/legalease/internal/pipeline"
	"github.com/Lllllllleong/legalease/internal/services"
)

// App holds the long-lived clients for one process.
type App struct {
	Config     *config.Config
	Backend    gcp.Backend
	Catalog    *services.Catalog
	Extractor  *extract.Dispatcher
	Simplifier *services.Simplifier
	Translator *services.Translator
	Observer   pipeline.Observer
	Pipeline   *pipeline.Pipeline
	Server     *api.Server
}

// SetupLogging installs a JSON slog handler as the default logger. A nil
// writer means stdout.
func SetupLogging(w io.Writer, level slog.Level) {
	if w == nil {
		w = os.Stdout
	}
	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// New builds the hosted-model backend once and injects it everywhere. A nil
// recognizer disables image extraction; extra observers receive stage events
// alongside the log and CloudEvents sinks.
func New(ctx context.Context, cfg *config.Config, recognizer extract.Recognizer, extra ...pipeline.Observer) (*App, error) {
	backend, err := gcp.NewBackend(ctx, cfg.Backend())
	if err != nil {
		return nil, fmt.Errorf("failed to create vertex client: %w", err)
	}

	observers := pipeline.Observers{events.LogObserver{}}
	if cfg.EventSinkURL != "" {
		sink, err := events.NewCloudEventSink(cfg.EventSinkURL)
		if err != nil {
			_ = backend.Close()
			return nil, fmt.Errorf("failed to create event sink: %w", err)
		}
		observers = append(observers, sink)
	}
	observers = append(observers, extra...)

	catalog := services.DefaultCatalog()
	a := &App{
		Config:     cfg,
		Backend:    backend,
		Catalog:    catalog,
		Extractor:  extract.NewDispatcher(recognizer),
		Simplifier: services.NewSimplifier(backend),
		Translator: services.NewTranslator(backend, catalog),
		Observer:   observers,
	}
	a.Pipeline = pipeline.New(a.Extractor, a.Simplifier, a.Translator, a.Observer)
	a.Server = api.NewServer(a.Extractor, a.Simplifier, a.Translator, catalog, a.Observer, api.OptionsFromConfig(cfg))

	slog.Info("LegalEase initialized.",
		"backendConfigured", backend.Configured(),
		"ocrEnabled", recognizer != nil,
		"eventSink", cfg.EventSinkURL != "",
	)
	return a, nil
}

// Close releases the hosted-model client.
func (a *App) Close() error {
	if a.Backend == nil {
		return nil
	}
	return a.Backend.Close()
}

// FromEnv loads the configuration from the environment, reinstalls the JSON
// logger at LOG_LEVEL and builds an App.
func FromEnv(ctx context.Context, recognizer extract.Recognizer) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	SetupLogging(nil, cfg.LogLevel)
	return New(ctx, cfg, recognizer)
}
