package server

import (
	"encoding/json"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/lumipallolabs/corpusmap/internal/core"
	"github.com/lumipallolabs/corpusmap/internal/layout"
	"github.com/lumipallolabs/corpusmap/internal/model"
)

const (
	defaultChartWidth  = 1200
	defaultChartHeight = 800
)

// parseViewport reads w/h query parameters; out-of-range values fall
// through to the layout engine's own clamping.
func parseViewport(r *http.Request) layout.Viewport {
	vp := layout.Viewport{Width: defaultChartWidth, Height: defaultChartHeight}
	if w, err := strconv.Atoi(r.URL.Query().Get("w")); err == nil {
		vp.Width = float64(w)
	}
	if h, err := strconv.Atoi(r.URL.Query().Get("h")); err == nil {
		vp.Height = float64(h)
	}
	return vp
}

// zoomLink builds the dashboard URL that zooms into a category
func zoomLink(n *model.Node) string {
	return "/?zoom=" + url.QueryEscape(n.Name)
}

// handleChart serves the raw SVG document. Top-level rectangles carry
// links back into the dashboard so the chart stays navigable even when
// fetched standalone.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	vp := parseViewport(r)
	zoom := r.URL.Query().Get("zoom")

	var doc []byte
	s.withZoom(zoom, func(ctrl *core.Controller) {
		doc = ctrl.RenderSVG(vp, zoomLink)
	})

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(doc)
}

var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: system-ui, sans-serif; margin: 1.5rem; background: #F9FAFB; }
h1 { font-size: 1.2rem; margin: 0 0 0.5rem; }
nav { margin-bottom: 0.75rem; font-size: 0.9rem; color: #6B7280; }
nav a { color: #4F46E5; text-decoration: none; }
nav a:hover { text-decoration: underline; }
svg { border: 1px solid #E5E7EB; border-radius: 4px; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<nav>
{{- if .Zoomed}}
{{- if .Breadcrumbs}}
{{- range $i, $c := .Trail}}{{if $i}} / {{end}}{{if $c.Href}}<a href="{{$c.Href}}">{{$c.Label}}</a>{{else}}{{$c.Label}}{{end}}{{end}}
{{- else}}
<a href="/">&larr; back to overview</a>
{{- end}}
{{- else}}
{{.RootLabel}}
{{- end}}
</nav>
{{.Chart}}
</body>
</html>
`))

type crumb struct {
	Label string
	Href  string
}

type indexData struct {
	Title       string
	RootLabel   string
	Zoomed      bool
	Breadcrumbs bool
	Trail       []crumb
	Chart       template.HTML
}

// handleIndex serves the dashboard page with the chart inlined, so the
// SVG's zoom links work in the browser.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	vp := parseViewport(r)
	zoom := r.URL.Query().Get("zoom")

	data := indexData{Title: s.cfg.Title}
	s.withZoom(zoom, func(ctrl *core.Controller) {
		data.Zoomed = ctrl.Zoomed() != nil
		data.Breadcrumbs = ctrl.UseBreadcrumbs()
		trail := ctrl.Breadcrumb()
		if len(trail) > 0 {
			data.RootLabel = trail[0]
		}
		for i, label := range trail {
			c := crumb{Label: label}
			if i < len(trail)-1 {
				c.Href = "/"
			}
			data.Trail = append(data.Trail, c)
		}
		data.Chart = template.HTML(ctrl.RenderSVG(vp, zoomLink))
	})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, data); err != nil {
		s.log.Error("render index", "err", err)
	}
}

// handleHierarchy serves the built hierarchy as nested JSON
func (s *Server) handleHierarchy(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !s.ctrl.HasData() {
		json.NewEncoder(w).Encode(map[string]any{"error": core.PlaceholderNoData})
		return
	}
	json.NewEncoder(w).Encode(s.nodeToJSON(s.ctrl.Root(), s.ctrl.Total()))
}

// handleColors serves the current category color table
func (s *Server) handleColors(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.ctrl.Colors())
}
