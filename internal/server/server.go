// Package server exposes the treemap dashboard over HTTP. Navigation is
// stateless: the zoomed category travels as a query parameter, so every
// request re-renders from the shared chart controller.
package server

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lumipallolabs/corpusmap/internal/core"
	"github.com/lumipallolabs/corpusmap/internal/loader"
	"github.com/lumipallolabs/corpusmap/internal/model"
)

// Config holds the server's runtime settings.
type Config struct {
	Addr    string
	DataDir string
	TaxPath string
	Title   string
}

// Server is the HTTP dashboard server.
type Server struct {
	router chi.Router
	ctrl   *core.Controller
	log    *slog.Logger
	cfg    Config

	// mu serializes zoom state on the shared controller; each request
	// sets its own zoom, renders, then zooms back out.
	mu sync.Mutex
}

// NewServer creates and configures the HTTP server around an already
// loaded chart controller.
func NewServer(ctrl *core.Controller, log *slog.Logger, cfg Config) *Server {
	if cfg.Title == "" {
		cfg.Title = "corpusmap"
	}
	s := &Server{
		ctrl: ctrl,
		log:  log,
		cfg:  cfg,
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
	r.Get("/", s.handleIndex)
	r.Get("/chart.svg", s.handleChart)
	r.Get("/api/hierarchy", s.handleHierarchy)
	r.Get("/api/colors", s.handleColors)

	s.router = r
}

// Reload re-reads the data directory and swaps the dataset in place.
// Category colors survive the swap because the controller's color table
// only ever grows.
func (s *Server) Reload() error {
	records, err := loader.LoadDir(s.cfg.DataDir)
	if err != nil {
		return err
	}

	tax, err := loader.LoadTaxonomy(s.cfg.TaxPath)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ctrl.SetData(records, tax); err != nil {
		s.log.Warn("reload produced no data", "dir", s.cfg.DataDir, "err", err)
		return nil
	}
	s.log.Info("reloaded dataset", "dir", s.cfg.DataDir, "total", s.ctrl.Total())
	return nil
}

// withZoom runs fn with the controller zoomed into the named category
// (or the overview when name is empty), restoring the overview after.
func (s *Server) withZoom(name string, fn func(ctrl *core.Controller)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name != "" {
		// Unknown names are ignored and render the overview instead.
		s.ctrl.ZoomToName(name)
	}
	fn(s.ctrl)
	s.ctrl.ZoomOut()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// nodeJSON is the wire shape of a hierarchy node.
type nodeJSON struct {
	Name     string     `json:"name"`
	Value    int64      `json:"value"`
	Percent  float64    `json:"percent,omitempty"`
	Color    string     `json:"color,omitempty"`
	Children []nodeJSON `json:"children,omitempty"`
}

func (s *Server) nodeToJSON(n *model.Node, total int64) nodeJSON {
	out := nodeJSON{
		Name:  n.Name,
		Value: n.TotalValue(),
	}
	if total > 0 {
		out.Percent = n.PercentOf(total)
	}
	if n.Parent != nil && n.Parent.Parent == nil {
		if c, ok := s.ctrl.Colors().Lookup(n.Name); ok {
			out.Color = c
		}
	}
	for _, c := range n.Children {
		out.Children = append(out.Children, s.nodeToJSON(c, total))
	}
	return out
}
