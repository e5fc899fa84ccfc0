// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/burnote/internal/api"
	"github.com/starford/burnote/internal/auth"
	"github.com/starford/burnote/internal/mcpserver"
	"github.com/starford/burnote/internal/metrics"
	"github.com/starford/burnote/internal/noteservice"
	"github.com/starford/burnote/internal/store"
	"github.com/starford/burnote/internal/summary"
)

// Run starts the HTTP server with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config

	logger := newLogger(cfg, os.Stdout)

	keys := cfg.Auth.ParsedKeys()
	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.Int("auth_keys", keys.Len()),
		slog.Bool("tenant_isolation", cfg.Auth.TenantIsolation),
		slog.Bool("summary_enabled", cfg.Summary.Enabled()),
		slog.String("log_level", cfg.App.LogLevel.String()))
	if keys.Len() == 0 {
		logger.Warn("no auth keys configured; every authenticated request will be rejected")
	}
	if n := keys.BearerPrefixed(); n > 0 {
		logger.Warn("auth keys start with the Bearer scheme and will not match a plain credential",
			slog.Int("count", n))
	}

	db, err := store.Open(cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	defer db.Close()

	if n, err := db.Count(ctx); err == nil {
		logger.Info("Store opened", slog.Int("rows", n))
	}

	svc := noteservice.NewService(db, summary.NewGateway(app.summarizer, logger))
	resolver := auth.NewResolver(keys, cfg.Auth.TenantIsolation)

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           newRootRouter(svc, resolver),
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

// RunMCP serves the note tools over stdio on behalf of the tenant that
// credential resolves to.
func RunMCP(ctx context.Context, credential string, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config

	// stdout carries the MCP protocol; logs go to stderr.
	logger := newLogger(cfg, os.Stderr)

	tenant, err := auth.NewResolver(cfg.Auth.ParsedKeys(), cfg.Auth.TenantIsolation).Resolve(credential)
	if err != nil {
		return fmt.Errorf("mcp: %w", err)
	}

	db, err := store.Open(cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	defer db.Close()

	svc := noteservice.NewService(db, summary.NewGateway(app.summarizer, logger))
	logger.Info("MCP server starting on stdio")
	return mcpserver.New(svc, tenant).ServeStdio(ctx)
}

func newApplication(opts []Option) (*application, error) {
	app := &application{}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if app.summarizer == nil && app.config.Summary.Enabled() {
		sc := app.config.Summary
		app.summarizer = summary.NewChatClient(sc.Endpoint, sc.APIKey, sc.Model, sc.Timeout)
	}
	return app, nil
}

// newLogger initializes the structured JSON logger and makes it the default.
func newLogger(cfg *Config, w io.Writer) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

func newRootRouter(svc *noteservice.Service, resolver *auth.Resolver) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(api.CORS)
	r.NotFound(api.NotFound)
	r.MethodNotAllowed(api.NotFound)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := svc.Ready(r.Context()); err != nil {
			slog.Error("readiness check failed", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"unavailable"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Handle("/metrics", metrics.Handler())

	// Mount API routes under /api.
	r.Mount("/api", api.NewRouter(svc, resolver))

	return r
}
