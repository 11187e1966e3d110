// Package server provides the HTTP API for fsaptvis.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/hyperjump/fsaptvis/internal/config"
	"github.com/hyperjump/fsaptvis/internal/interaction"
	"github.com/hyperjump/fsaptvis/internal/metrics"
	"go.uber.org/zap"
)

// Server is the HTTP server for the fsaptvis API.
type Server struct {
	service  *interaction.Service
	config   *config.Config
	logger   *zap.Logger
	metrics  *metrics.Collector
	validate *validator.Validate
	server   *http.Server
}

// NewServer creates a server with the given dependencies. collector may be nil.
func NewServer(
	service *interaction.Service,
	cfg *config.Config,
	logger *zap.Logger,
	collector *metrics.Collector,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		service:  service,
		config:   cfg,
		logger:   logger,
		metrics:  collector,
		validate: newValidator(),
	}
}

// Handler builds the router with all middleware and routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog(s.logger))
	r.Use(s.recoverer)
	if s.metrics != nil {
		r.Use(s.metrics.Middleware)
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.config.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}))
	r.Use(middleware.Timeout(time.Duration(s.config.Server.RequestTimeoutSeconds) * time.Second))
	r.Use(middleware.Compress(5))

	r.NotFound(s.handleNotFound)
	r.MethodNotAllowed(s.handleMethodNotAllowed)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Post("/fsapt-analysis", s.handleAnalysis)
		r.Get("/available-pairs", s.handleAvailablePairs)
		r.Get("/interaction-summary/{ligand_id}/{protein_id}", s.handleSummary)
	})
	if s.metrics != nil && s.config.Metrics.EnabledOrDefault() {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
