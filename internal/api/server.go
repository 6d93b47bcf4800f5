package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/resbrowse/resbrowse/internal/config"
	"github.com/resbrowse/resbrowse/internal/export"
	"github.com/resbrowse/resbrowse/internal/preview"
	"github.com/resbrowse/resbrowse/internal/tree"
)

// Server is the HTTP API over the resource tree.
type Server struct {
	router  chi.Router
	root    *tree.ListNode
	store   export.Store
	cache   *lru.Cache[string, *preview.Preview]
	log     *slog.Logger
	cfg     config.Config
	treeCfg tree.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(root *tree.ListNode, treeCfg tree.Config, store export.Store, log *slog.Logger, cfg config.Config) (*Server, error) {
	cache, err := lru.New[string, *preview.Preview](cfg.PreviewCacheSize)
	if err != nil {
		return nil, err
	}
	s := &Server{
		root:    root,
		store:   store,
		cache:   cache,
		log:     log,
		cfg:     cfg,
		treeCfg: treeCfg,
	}
	s.setupRoutes()
	return s, nil
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

		r.Get("/api/resources", s.handleListResources)
		r.Get("/api/resources/{name}", s.handleResource)
		r.Get("/api/resources/{name}/content", s.handleResourceContent)
		r.Get("/api/resources/{name}/entries", s.handleListEntries)
		r.Get("/api/resources/{name}/entry", s.handleEntryRender)
		r.Post("/api/resources/{name}/export", s.handleExport)

		r.Get("/api/report", s.handleReport)
		r.Get("/api/stats", s.handleStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
