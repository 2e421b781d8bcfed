// Package server exposes the local filesystem over a small JSON API that the
// fsurf terminal client browses.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/vidyasagar/fsurf/internal/explorer"
	"github.com/vidyasagar/fsurf/internal/listing"
)

// Lister is the filesystem the server lists.
type Lister interface {
	Root(ctx context.Context) (*listing.Listing, error)
	Items(ctx context.Context, path string, q explorer.Query) (*listing.Listing, error)
}

// Config holds the listening address and timeouts.
type Config struct {
	Addr            string
	RequestTimeout  time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DefaultAddr is the address the server binds when nothing else is given.
const DefaultAddr = "localhost:8849"

// DefaultConfig returns the default server configuration.
func DefaultConfig() Config {
	return Config{
		Addr:            DefaultAddr,
		RequestTimeout:  30 * time.Second,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    60 * time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 5 * time.Second,
	}
}

// Server serves listings.
type Server struct {
	cfg     Config
	lister  Lister
	log     zerolog.Logger
	metrics *metrics
	router  chi.Router
}

// New builds a server and its routes.
func New(cfg Config, lister Lister, log zerolog.Logger) *Server {
	s := &Server{
		cfg:     cfg,
		lister:  lister,
		log:     log,
		metrics: newMetrics(),
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
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	r.Handle("/metrics", s.metrics.handler())

	r.Route("/api", func(r chi.Router) {
		if s.cfg.RequestTimeout > 0 {
			r.Use(middleware.Timeout(s.cfg.RequestTimeout))
		}
		r.Use(s.metrics.instrument)
		r.Get("/device", s.handleDevice)
		r.Get("/items", s.handleItems)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no route for %s", r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, fmt.Sprintf("%s not allowed", r.Method))
	})
	return r
}

func (s *Server) handleDevice(w http.ResponseWriter, r *http.Request) {
	l, err := s.lister.Root(r.Context())
	if err != nil {
		s.metrics.listings.WithLabelValues("device", "error").Inc()
		s.log.Error().Err(err).Msg("device listing failed")
		writeError(w, statusFor(err), err.Error())
		return
	}
	s.metrics.listings.WithLabelValues("device", "ok").Inc()
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleItems(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	sortBy, err := explorer.ParseSortKey(params.Get("sort_by"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	q := explorer.Query{
		Search:     params.Get("search"),
		SortBy:     sortBy,
		Reverse:    explorer.ParseBool(params.Get("reverse")),
		ShowHidden: explorer.ParseBool(params.Get("show_hidden")),
	}

	l, err := s.lister.Items(r.Context(), params.Get("path"), q)
	if err != nil {
		code := statusFor(err)
		s.metrics.listings.WithLabelValues("items", "error").Inc()
		if code >= http.StatusInternalServerError {
			s.log.Error().Err(err).Str("path", params.Get("path")).Msg("items listing failed")
		}
		writeError(w, code, err.Error())
		return
	}
	s.metrics.listings.WithLabelValues("items", "ok").Inc()
	writeJSON(w, http.StatusOK, l)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, explorer.ErrPathRequired), errors.Is(err, explorer.ErrNotDirectory):
		return http.StatusBadRequest
	case errors.Is(err, explorer.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, explorer.ErrPermission):
		return http.StatusForbidden
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

// ErrorBody is the JSON body of every error response.
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, ErrorBody{
		Error:   http.StatusText(code),
		Message: message,
		Code:    code,
	})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.cfg.Addr).Msg("listing service up")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listening on %s: %w", s.cfg.Addr, err)
	case <-ctx.Done():
	}

	s.log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
