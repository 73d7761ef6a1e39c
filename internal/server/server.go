// Package server exposes the layout pipeline over HTTP.
//
// Routes:
//
//	POST /v1/layouts       compute a layout (and artifacts) for a graph
//	GET  /v1/layouts       list recent runs, newest first
//	GET  /v1/layouts/{id}  fetch a stored run
//	GET  /healthz          liveness probe
//
// Errors are JSON objects carrying the coded error from pkg/errors, so
// clients can branch on the code rather than the message.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/gridlayout/pkg/observability"
	"github.com/matzehuels/gridlayout/pkg/pipeline"
	"github.com/matzehuels/gridlayout/pkg/store"
)

// Defaults for Config fields left at zero.
const (
	DefaultMaxNodes     = 400
	DefaultMaxCells     = 4096
	DefaultMaxBodyBytes = 4 << 20
	DefaultTimeout      = 2 * time.Minute
)

// Config bounds the work a single request may ask for.
type Config struct {
	MaxNodes     int
	MaxCells     int // largest Width*Height a request may ask for
	MaxBodyBytes int64
	Timeout      time.Duration // per layout request
}

func (c *Config) setDefaults() {
	if c.MaxNodes <= 0 {
		c.MaxNodes = DefaultMaxNodes
	}
	if c.MaxCells <= 0 {
		c.MaxCells = DefaultMaxCells
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
}

// Server serves the layout API.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
	cfg    Config
	router chi.Router
}

// New creates a server around runner. Runs are persisted to, and read
// back from, runner.Store, which must be set.
func New(runner *pipeline.Runner, cfg Config, logger *log.Logger) *Server {
	cfg.setDefaults()
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner: runner,
		store:  runner.Store,
		logger: logger,
		cfg:    cfg,
	}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(observe)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1/layouts", func(r chi.Router) {
		r.With(middleware.RequestSize(s.cfg.MaxBodyBytes)).Post("/", s.handleCreateLayout)
		r.Get("/", s.handleListLayouts)
		r.Get("/{id}", s.handleGetLayout)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
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
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// observe reports every request to the registered server hooks.
func observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.Server()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, route, status, time.Since(start))
	})
}
