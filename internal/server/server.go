// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server serves the movie search page. Each request for the page
// with a title dispatches one search and renders the results server-side.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/moviefinder/internal/httputil"
	"github.com/pdiddy/moviefinder/internal/render"
	"github.com/pdiddy/moviefinder/internal/search"
	"github.com/pdiddy/moviefinder/internal/ui"
	"github.com/pdiddy/moviefinder/pkg/types"
)

const defaultShutdownTimeout = 10 * time.Second

// Server holds the dependencies of the page handlers.
type Server struct {
	cfg     types.SearchConfig
	client  *http.Client
	history search.Recorder
	log     *logrus.Logger
}

// New returns a Server searching against cfg.Endpoint. history may be nil.
func New(cfg types.SearchConfig, history search.Recorder, log *logrus.Logger) *Server {
	if cfg.Endpoint == "" {
		cfg.Endpoint = types.DefaultEndpoint
	}
	return &Server{
		cfg:     cfg,
		client:  httputil.NewClient(cfg.HTTPConfig),
		history: history,
		log:     log,
	}
}

// Routes returns the router without middleware.
func (s *Server) Routes() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handlePage).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	return r
}

// Handler returns the router wrapped with access logging and panic
// recovery. The returned close function releases the access log writer.
func (s *Server) Handler() (http.Handler, func() error) {
	access := s.log.WriterLevel(logrus.InfoLevel)
	h := handlers.CombinedLoggingHandler(access, s.Routes())
	h = handlers.RecoveryHandler(
		handlers.RecoveryLogger(s.log),
		handlers.PrintRecoveryStack(true),
	)(h)
	return h, access.Close
}

// handlePage renders the search page. When the query carries a title
// parameter (even an empty one) a search is dispatched first; a failed
// search is logged by the dispatcher and the page is rendered with an
// empty results area.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	page := ui.NewPage("/")

	if titles, ok := r.URL.Query()["title"]; ok {
		page.SetTitle(titles[0])

		d := search.NewDispatcher(s.cfg, page, render.NewRenderer(page), s.log)
		d.Client = s.client
		d.History = s.history
		// The dispatcher has already logged the failure.
		d.SearchFrom(r.Context(), page)
	}

	var buf bytes.Buffer
	if _, err := page.WriteTo(&buf); err != nil {
		s.log.WithError(err).Error("Rendering search page failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":    "ok",
		"service":   "moviefinder",
		"endpoint":  s.cfg.Endpoint,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Run serves h on cfg.Addr until ctx is cancelled, then shuts down
// gracefully within cfg.ShutdownTimeout.
func Run(ctx context.Context, cfg types.ServeConfig, h http.Handler, log logrus.FieldLogger) error {
	addr := cfg.Addr
	if addr == "" {
		addr = ":8090"
	}
	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("Movie search page listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving on %s: %w", addr, err)
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	log.Info("Server shutdown complete")
	return nil
}
