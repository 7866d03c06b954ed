// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/vaultboot/internal/api"
	"github.com/starford/vaultboot/internal/catalog"
	"github.com/starford/vaultboot/internal/gitfetch"
	"github.com/starford/vaultboot/internal/history"
	"github.com/starford/vaultboot/internal/ingest"
	"github.com/starford/vaultboot/internal/mcpserver"
	"github.com/starford/vaultboot/internal/sse"
	"github.com/starford/vaultboot/internal/vault"
)

// Engine is the wired vault service plus the resources it owns.
type Engine struct {
	config  *Config
	logger  *slog.Logger
	service *vault.Service
	history *history.DB
	broker  *sse.Broker
}

// Open wires the catalog, fetcher, history and vault service from the
// configured options. Callers must Close the engine.
func Open(opts ...Option) (*Engine, error) {
	app := &application{logOutput: os.Stderr}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(app.logOutput, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("default_parent", cfg.Vault.DefaultParent),
		slog.String("templates_dir", cfg.Templates.Dir),
		slog.String("history_path", cfg.History.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	cat, err := catalog.Load(cfg.Templates.Dir)
	if err != nil {
		return nil, fmt.Errorf("init catalog: %w", err)
	}

	fetcher := gitfetch.New(cfg.Git.Options(), logger)
	svcOpts := []vault.Option{
		vault.WithIngester(ingest.New(fetcher, logger)),
		vault.WithDefaultParent(cfg.Vault.DefaultParent),
		vault.WithLogger(logger),
	}

	// SSE broker for vault events.
	e := &Engine{config: cfg, logger: logger, broker: sse.NewBroker(2 * time.Second)}
	svcOpts = append(svcOpts, vault.WithNotifier(e.broker))

	if cfg.History.Enabled() {
		db, err := history.Open(cfg.History.Path)
		if err != nil {
			e.broker.Close()
			return nil, fmt.Errorf("init history: %w", err)
		}
		e.history = db
		svcOpts = append(svcOpts, vault.WithRecorder(db))
	}

	e.service = vault.NewService(cat, svcOpts...)
	return e, nil
}

// Service returns the vault service.
func (e *Engine) Service() *vault.Service {
	return e.service
}

// Logger returns the application logger.
func (e *Engine) Logger() *slog.Logger {
	return e.logger
}

// Close stops the event broker and releases the history database.
func (e *Engine) Close() error {
	e.broker.Close()
	if e.history == nil {
		return nil
	}
	return e.history.Close()
}

// Handler builds the HTTP handler: health endpoints plus the API under /api.
func (e *Engine) Handler() http.Handler {
	cfg := e.config

	apiRouter := api.NewRouter(e.service, cfg.Auth.AuthEnabled(), cfg.Auth.Token, e.broker)

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	return r
}

// Run starts the HTTP server with the given options.
func Run(ctx context.Context, opts ...Option) error {
	e, err := Open(opts...)
	if err != nil {
		return err
	}
	defer e.Close()

	cfg := e.config
	if err := cfg.CheckServe(); err != nil {
		return err
	}
	logger := e.logger

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           e.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// RunMCP serves the MCP tools on stdin/stdout until the client disconnects.
func RunMCP(_ context.Context, opts ...Option) error {
	e, err := Open(opts...)
	if err != nil {
		return err
	}
	defer e.Close()

	e.logger.Info("Starting MCP server", slog.String("transport", "stdio"))
	if err := mcpserver.New(e.service).ServeStdio(); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}
	return nil
}
