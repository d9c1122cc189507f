// Package web serves the datagen HTTP API and run pages.
package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/deepceutix/datagen/internal/generate"
	"github.com/deepceutix/datagen/internal/ports"
)

type Server struct {
	svc       *generate.Service
	artifacts ports.ArtifactStore
	metrics   *Metrics
	logger    ports.Logger
	router    chi.Router
}

func NewServer(svc *generate.Service, artifacts ports.ArtifactStore, metrics *Metrics, logger ports.Logger) *Server {
	s := &Server{
		svc:       svc,
		artifacts: artifacts,
		metrics:   metrics,
		logger:    logger,
		router:    chi.NewRouter(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := s.router
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(s.metrics.Instrument)
	r.Use(HTMX)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", s.metrics.Handler())

	// Pages
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/runs", http.StatusFound)
	})
	r.Get("/runs", s.handleRunsPage)
	r.Get("/runs/{id}", s.handleRunPage)

	r.Route("/api", func(r chi.Router) {
		r.Get("/scenarios", s.handleAPIScenarios)
		r.Post("/scenarios/{name}/run", s.handleAPIRunScenario)
		r.Post("/generate", s.handleAPIGenerate)
		r.Get("/runs", s.handleAPIRuns)
		r.Get("/runs/{id}", s.handleAPIRun)
		r.Get("/temp-image/{run}/{file}", s.handleAPIArtifact)
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// NewHTTPServer wraps handler in an http.Server with conservative timeouts.
// Generate calls wait on a model, so the write timeout is generous.
func NewHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}
}
