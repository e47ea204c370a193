// Package api exposes the catalog pipeline over HTTP.
//
// The server wraps a [pipeline.Runner] and serves JSON endpoints:
//
//	POST /v1/validate  - build a catalog and report problems
//	POST /v1/order     - prerequisite-respecting course order
//	POST /v1/eligible  - courses a student may take next
//	GET  /healthz      - liveness probe
//	GET  /version      - build information
//
// Errors are returned as JSON bodies carrying the same error codes the
// library surfaces, so API consumers can branch on them:
//
//	{"error": "build: 2 malformed prerequisite entries", "code": "INVALID_CATALOG"}
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/coursegraph/coursegraph/pkg/pipeline"
)

// Server handles HTTP requests against the catalog pipeline.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// NewServer creates a server around the given runner.
// If logger is nil, the default logger is used.
func NewServer(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, logger: logger}
}

// Router builds the chi router with all routes and middleware attached.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/validate", s.handleValidate)
		r.Post("/order", s.handleOrder)
		r.Post("/eligible", s.handleEligible)
	})

	return r
}

// ListenAndServe starts the HTTP server on addr and blocks until ctx is
// cancelled or the server fails. On cancellation it drains in-flight
// requests for up to ten seconds before returning ctx's error.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return ctx.Err()
	}
}
