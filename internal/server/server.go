// Package server implements the scopetree HTTP API.
//
// The API lets a visualizer frontend push object-graph snapshots and fetch
// computed layouts:
//
//	POST   /api/snapshots              store a snapshot, returns its ID
//	GET    /api/snapshots              list stored snapshots
//	GET    /api/snapshots/{id}         fetch one snapshot
//	DELETE /api/snapshots/{id}         delete a snapshot
//	GET    /api/snapshots/{id}/layout  compute or fetch the cached layout
//	POST   /api/snapshots/{id}/layout  same, with full options in the body
//	GET    /healthz                    liveness probe
//
// Layout computation is delegated to the shared pipeline runner, so the API
// and the CLI cache and compute identically.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/scopeviz/scopetree/pkg/pipeline"
	"github.com/scopeviz/scopetree/pkg/store"
)

// Server wires the HTTP API to a snapshot store and a pipeline runner.
type Server struct {
	store  store.Store
	runner *pipeline.Runner
	logger *log.Logger
	http   *http.Server
}

// New creates a server listening on addr.
func New(addr string, st store.Store, runner *pipeline.Runner, logger *log.Logger) *Server {
	s := &Server{
		store:  st,
		runner: runner,
		logger: logger,
	}
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// routes builds the chi router.
func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/snapshots", func(r chi.Router) {
		r.Post("/", s.handlePutSnapshot)
		r.Get("/", s.handleListSnapshots)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetSnapshot)
			r.Delete("/", s.handleDeleteSnapshot)
			r.Get("/layout", s.handleLayout)
			r.Post("/layout", s.handleLayout)
		})
	})

	return r
}

// ListenAndServe blocks serving requests until the context is cancelled,
// then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.http.Addr)
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// logRequests logs each request with method, path, status, and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}
