package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/wenjia-h/corpustree/internal/config"
	"github.com/wenjia-h/corpustree/internal/metrics"
	"github.com/wenjia-h/corpustree/internal/pipeline"
	"github.com/wenjia-h/corpustree/internal/registry"
)

// Server is the HTTP API server for corpustree.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	corpora      *registry.Registry
	buildStats   *metrics.Stats
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, corpora *registry.Registry, buildStats *metrics.Stats, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		corpora:      corpora,
		buildStats:   buildStats,
		log:          log,
		cfg:          cfg,
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

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/corpora", s.handleCreateCorpus)
		r.Get("/api/corpora", s.handleListCorpora)
		r.Get("/api/jobs/{jobID}", s.handleJobStatus)

		r.Get("/api/corpora/{corpusID}/summary", s.handleSummary)
		r.Get("/api/corpora/{corpusID}/nodes", s.handleFindNodes)
		r.Get("/api/corpora/{corpusID}/nodes/{nodeID}", s.handleGetNode)
		r.Get("/api/corpora/{corpusID}/subgraph", s.handleSubgraph)
		r.Get("/api/corpora/{corpusID}/export", s.handleExport)

		r.Post("/api/clean", s.handleCleanWorkbook)
		r.Get("/api/stats", s.handleStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
