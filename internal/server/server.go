// Package server provides the HTTP server hosting the catalog API and
// operational endpoints.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/lustraclean/vitrine/internal/version"
)

// RouteRegistrar is implemented by components that expose HTTP routes.
type RouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux)
}

// Server is the main vitrine HTTP server.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	mux        *http.ServeMux
}

// New creates a Server and mounts core and registrar routes.
func New(addr string, logger *zap.Logger, registrars ...RouteRegistrar) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
		mux:    mux,
	}

	s.registerCoreRoutes()
	for _, r := range registrars {
		r.RegisterRoutes(mux)
	}

	return s
}

// registerCoreRoutes sets up routes that are always available.
func (s *Server) registerCoreRoutes() {
	s.mux.HandleFunc("GET /api/v1/health", s.handleHealth)
	s.mux.Handle("GET /metrics", promhttp.Handler())
	s.mux.HandleFunc("/", s.handleNotFound)
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Vitrine-Version", version.Short())
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":  "ok",
		"service": "vitrine",
		"version": version.Map(),
	})
}

// handleNotFound answers unmatched paths with a problem response.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	NotFound(w, "no such route", r.URL.Path)
}
