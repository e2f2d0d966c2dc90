// Package server exposes path generation over HTTP.
//
// # Endpoints
//
//	GET  /healthz              liveness and build info
//	GET  /v1/layout            the served layout
//	POST /v1/paths             generate paths for a batch of words
//	GET  /v1/endpoints?word=W  first and last key centers of one word
//
// Every response carries an X-Request-ID header. An incoming X-Request-ID is
// reused; otherwise a UUID is generated. Errors are JSON objects of the form
// {"error": {"code": "INVALID_POLICY", "message": "..."}}.
//
// The server holds one layout for its lifetime. Grid layouts are calibrated
// once at startup through the pipeline runner, so a shared Redis cache lets
// several instances skip calibration.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/keytrace/swipepath/pkg/keyboard"
	"github.com/keytrace/swipepath/pkg/pipeline"
)

const (
	// DefaultAddr is the listen address when none is configured.
	DefaultAddr = ":8080"

	// maxBodyBytes bounds POST bodies.
	maxBodyBytes = 1 << 20

	shutdownTimeout = 10 * time.Second
)

// Config configures a Server.
type Config struct {
	// LayoutPath is a .toml or .grid file; empty serves the built-in layout.
	LayoutPath string
	// Workers bounds concurrent word generation per request.
	Workers int
	Logger  *log.Logger
}

// Server serves the HTTP API.
type Server struct {
	runner  *pipeline.Runner
	layout  *keyboard.Layout
	workers int
	logger  *log.Logger
	router  chi.Router
}

// New loads the configured layout through runner and builds the router.
func New(ctx context.Context, runner *pipeline.Runner, cfg Config) (*Server, error) {
	if cfg.Logger == nil {
		cfg.Logger = runner.Logger
	}
	if cfg.Workers <= 0 {
		cfg.Workers = pipeline.DefaultWorkers
	}

	l, hit, err := runner.LoadLayout(ctx, cfg.LayoutPath, false)
	if err != nil {
		return nil, err
	}
	cfg.Logger.Info("layout ready", "name", l.Name(), "keys", l.Len(), "cached", hit)

	s := &Server{
		runner:  runner,
		layout:  l,
		workers: cfg.Workers,
		logger:  cfg.Logger,
	}
	s.router = s.routes()
	return s, nil
}

// Layout returns the served layout.
func (s *Server) Layout() *keyboard.Layout {
	return s.layout
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/layout", s.handleLayout)
		r.Post("/paths", s.handlePaths)
		r.Get("/endpoints", s.handleEndpoints)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, errNotFound(r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, errMethod(r.Method, r.URL.Path))
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
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
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
