package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dgallion1/sherlock/internal/admission"
	"github.com/dgallion1/sherlock/internal/config"
	"github.com/dgallion1/sherlock/internal/stats"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Searcher answers admission-report queries.
type Searcher interface {
	Search(ctx context.Context, query string) (*admission.Response, error)
	DataFile() string
}

// Server is the HTTP API server for sherlock.
type Server struct {
	router   chi.Router
	searcher Searcher
	stats    *stats.Window
	log      *slog.Logger
	cfg      config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(searcher Searcher, searchStats *stats.Window, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		searcher: searcher,
		stats:    searchStats,
		log:      log,
		cfg:      cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Get("/api/admission-search", s.handleAdmissionSearch)
	r.Get("/api/stats/search", s.handleSearchStats)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
