// Package server exposes blocks, parsing and run logging as a JSON API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexanderramin/ironplan/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 10 * time.Second
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	blocks service.BlockService
	runs   service.RunService
	log    *slog.Logger
	router chi.Router

	weightUnit string
}

type Option func(*Server)

// WithWeightUnit sets the load unit shown in text whiteboards.
func WithWeightUnit(unit string) Option {
	return func(s *Server) {
		if unit != "" {
			s.weightUnit = unit
		}
	}
}

// New creates a Server with all routes configured.
func New(blocks service.BlockService, runs service.RunService, log *slog.Logger, opts ...Option) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		blocks: blocks,
		runs:   runs,
		log:    log,
		router: chi.NewRouter(),

		weightUnit: "lb",
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(RequestLogging(s.log))

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/parse", s.handleParse)

		r.Route("/blocks", func(r chi.Router) {
			r.Get("/", s.handleListBlocks)
			r.Post("/", s.handleCreateBlock)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetBlock)
				r.Delete("/", s.handleDeleteBlock)
				r.Get("/whiteboard", s.handleWhiteboard)
				r.Get("/run", s.handleGetRun)
				r.Post("/run/sets", s.handleUpdateSet)
			})
		})
	})
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listening on %s: %w", addr, err)
	case <-ctx.Done():
	}

	s.log.Info("shutting down", "addr", addr)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	s.log.Info("server stopped")
	return nil
}
