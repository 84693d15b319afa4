// Package main implements the entry point for the draftforge API server,
// which orchestrates LLM article generation, SEO validation, and stock
// image search behind an HTTP API.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"

	"github.com/draftforge/draftforge-api/internal/api"
	"github.com/draftforge/draftforge-api/internal/cache"
	"github.com/draftforge/draftforge-api/internal/config"
	"github.com/draftforge/draftforge-api/internal/generation"
	"github.com/draftforge/draftforge-api/internal/platform/gemini"
	"github.com/draftforge/draftforge-api/internal/platform/logger"
	"github.com/draftforge/draftforge-api/internal/platform/openai"
	"github.com/draftforge/draftforge-api/internal/platform/pexels"
	"github.com/draftforge/draftforge-api/internal/platform/unsplash"
	"github.com/draftforge/draftforge-api/internal/prompt"
	"github.com/draftforge/draftforge-api/internal/service"
)

// application holds the assembled dependencies of the server process.
type application struct {
	config  *config.Config
	logger  *slog.Logger
	service *service.GenerationService
}

func main() {
	ctx := context.Background()

	app, err := initializeApp(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration, sets up logging, registers the
// configured providers, and wires the generation service.
func initializeApp(ctx context.Context) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.Setup(cfg.Server)

	appLogger.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"default_text_provider", cfg.LLM.DefaultProvider,
		"default_image_provider", cfg.Image.DefaultProvider,
		"cache_enabled", cfg.Cache.Enabled)

	registry, err := buildRegistry(ctx, appLogger, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build provider registry: %w", err)
	}

	selector := generation.NewSelector(registry, generation.SelectorConfig{
		DefaultText:    cfg.LLM.DefaultProvider,
		TextFallbacks:  cfg.LLM.FallbackOrder,
		DefaultImage:   cfg.Image.DefaultProvider,
		ImageFallbacks: cfg.Image.FallbackOrder,
	}, appLogger)

	invoker := generation.NewInvoker(generation.InvokerConfig{
		MaxAttempts: cfg.Generation.MaxRetries,
		BaseDelay:   cfg.Generation.RetryBaseDelay,
		MaxDelay:    cfg.Generation.RetryMaxDelay,
	}, appLogger)

	prompts, err := prompt.NewTemplateBuilder()
	if err != nil {
		return nil, fmt.Errorf("failed to build prompt templates: %w", err)
	}

	svc, err := service.NewGenerationService(service.Deps{
		Selector:    selector,
		Invoker:     invoker,
		ResultCache: cache.NewResultCache(cfg.Cache.TTL, cfg.Cache.Enabled),
		ImageCache:  cache.NewImageCache(cfg.Cache.TTL, cfg.Cache.Enabled),
		Prompts:     prompts,
		Logger:      appLogger,
		Generation:  cfg.Generation,
		Validation:  cfg.Validation,
		ImageLimit:  cfg.Image.SearchLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create generation service: %w", err)
	}

	return &application{
		config:  cfg,
		logger:  appLogger,
		service: svc,
	}, nil
}

// buildRegistry registers every provider the configuration names a
// credential for. Providers constructed without credentials register too
// but report themselves unavailable, so the selector skips them.
func buildRegistry(ctx context.Context, appLogger *slog.Logger, cfg *config.Config) (*generation.Registry, error) {
	registry := generation.NewRegistry()

	geminiGen, err := gemini.NewGenerator(ctx, appLogger, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	registry.RegisterText(geminiGen)

	openaiGen, err := openai.NewGenerator(appLogger, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}
	registry.RegisterText(openaiGen)

	registry.RegisterImage(pexels.NewClient(appLogger, cfg.Image.PexelsAPIKey))
	registry.RegisterImage(unsplash.NewClient(appLogger, cfg.Image.UnsplashAccessKey))

	appLogger.Info("provider registry assembled",
		"text_providers", registry.TextNames(),
		"image_providers", registry.ImageNames())

	return registry, nil
}

// setupRouter creates the application router with all routes and
// middleware.
func (app *application) setupRouter() http.Handler {
	return api.NewRouter(api.RouterDeps{
		Generation: api.NewGenerationHandler(app.service, app.logger),
		Logger:     app.logger,
	})
}
