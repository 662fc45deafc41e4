// Package server exposes the parser, linter and CRUD extractor over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"sqlast/internal/config"
	"sqlast/internal/crud"
	"sqlast/internal/lint"
	"sqlast/internal/middleware"
)

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	cfg        *config.Config
	lintConfig *lint.Config
	store      *crud.Store // nil disables the /v1/objects routes
	logger     *slog.Logger
}

// New creates a Server. lintConfig and store may be nil.
func New(cfg *config.Config, lintConfig *lint.Config, store *crud.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{cfg: cfg, lintConfig: lintConfig, store: store, logger: logger}
}

// Handler builds the router. Background middleware state lives until ctx is
// cancelled.
func (s *Server) Handler(ctx context.Context) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID(s.logger))
	r.Use(middleware.AccessLog)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "Retry-After"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.RateLimiter(ctx, middleware.RateLimitConfig{
			RequestsPerSecond: s.cfg.RateLimitRPS,
			Burst:             s.cfg.RateLimitBurst,
		}))
		r.Use(middleware.MaxBody(s.cfg.MaxBodyBytes))

		r.Post("/tokens", s.handleTokens)
		r.Post("/parse", s.handleParse)
		r.Post("/lint", s.handleLint)
		r.Post("/crud", s.handleCRUD)
		r.Get("/objects", s.handleMatrix)
		r.Get("/objects/{name}", s.handleObject)
	})
	return r
}

// ListenAndServe serves on cfg.ListenAddr until ctx is cancelled, then
// drains in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           s.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP API listening", "addr", s.cfg.ListenAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("shutting down HTTP API")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
