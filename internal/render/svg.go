// Package render draws computed layouts. The SVG backend here is the
// reference renderer; the terminal panel in internal/ui/tui is the second
// backend over the same layout output, so the drawing technology stays a
// swappable detail rather than three parallel chart implementations.
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lumipallolabs/corpusmap/internal/layout"
)

// Item is one paintable rectangle: the layout rect plus its resolved fill
// and an optional navigation link.
type Item struct {
	Rect layout.LaidOutNode
	Fill string
	Href string // zoom target URL, empty when the rect is not clickable
}

// Config sizes labels and fixes the visual constants of the SVG output
type Config struct {
	FontFamily     string
	FontSize       float64
	LabelMinWidth  float64 // rects narrower than this get no label at all
	LabelMinHeight float64 // rects shorter than this get no label at all
	LabelPad       float64 // fixed horizontal padding subtracted before fitting
	Background     string
}

// DefaultConfig returns the standard label sizing (30×20 px minimum)
func DefaultConfig() Config {
	return Config{
		FontFamily:     "system-ui, sans-serif",
		FontSize:       11,
		LabelMinWidth:  30,
		LabelMinHeight: 20,
		LabelPad:       6,
		Background:     "#FFFFFF",
	}
}

// SVG renders layouts to standalone SVG documents
type SVG struct {
	cfg Config
}

// NewSVG creates an SVG renderer
func NewSVG(cfg Config) *SVG {
	if cfg.FontSize <= 0 {
		cfg = DefaultConfig()
	}
	return &SVG{cfg: cfg}
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// Render draws the items in order (containers come before their children in
// layout output, so nesting paints correctly). Every rect carries a <title>
// with the untruncated name, value, and percentage, so truncation never
// loses information.
func (s *SVG) Render(vp layout.Viewport, items []Item, total int64) []byte {
	vp = vp.Clamped()
	var b strings.Builder
	s.openDocument(&b, vp)

	for _, item := range items {
		s.drawItem(&b, item, total)
	}

	b.WriteString("</svg>\n")
	return []byte(b.String())
}

// RenderPlaceholder draws the "no data" (or error) state: a short centered
// message instead of a chart, never a blank canvas.
func (s *SVG) RenderPlaceholder(vp layout.Viewport, message string) []byte {
	vp = vp.Clamped()
	var b strings.Builder
	s.openDocument(&b, vp)

	fmt.Fprintf(&b, `<text x="%.0f" y="%.0f" text-anchor="middle" font-size="%.0f" fill="#6B7280">%s</text>`+"\n",
		vp.Width/2, vp.Height/2, s.cfg.FontSize+3, escaper.Replace(message))

	b.WriteString("</svg>\n")
	return []byte(b.String())
}

func (s *SVG) openDocument(b *strings.Builder, vp layout.Viewport) {
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(b, `<svg width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f" xmlns="http://www.w3.org/2000/svg" font-family="%s">`+"\n",
		vp.Width, vp.Height, vp.Width, vp.Height, escaper.Replace(s.cfg.FontFamily))
	fmt.Fprintf(b, `<rect width="%.0f" height="%.0f" fill="%s"/>`+"\n",
		vp.Width, vp.Height, s.cfg.Background)
}

func (s *SVG) drawItem(b *strings.Builder, item Item, total int64) {
	x := math.Round(item.Rect.X0)
	y := math.Round(item.Rect.Y0)
	w := math.Round(item.Rect.X1) - x
	h := math.Round(item.Rect.Y1) - y
	if w < 1 || h < 1 {
		return
	}

	node := item.Rect.Node
	tooltip := fmt.Sprintf("%s — %d (%.1f%%)",
		node.Name, node.TotalValue(), node.PercentOf(total))

	if item.Href != "" {
		fmt.Fprintf(b, `<a href="%s">`, escaper.Replace(item.Href))
	}

	fmt.Fprintf(b, `<rect x="%.0f" y="%.0f" width="%.0f" height="%.0f" fill="%s" stroke="#FFFFFF" stroke-width="1"><title>%s</title></rect>`,
		x, y, w, h, item.Fill, escaper.Replace(tooltip))

	if label := s.labelFor(node.Name, w, h); label != "" {
		fmt.Fprintf(b, `<text x="%.0f" y="%.0f" font-size="%.0f" fill="%s" pointer-events="none">%s</text>`,
			x+s.cfg.LabelPad/2, y+s.cfg.FontSize+2, s.cfg.FontSize,
			labelColor(item.Fill), escaper.Replace(label))
	}

	if item.Href != "" {
		b.WriteString(`</a>`)
	}
	b.WriteString("\n")
}

// labelFor applies the minimum-size suppression and truncation rules:
// nothing at all below the minimum rect size, otherwise the name truncated
// to the available width.
func (s *SVG) labelFor(name string, w, h float64) string {
	if w < s.cfg.LabelMinWidth || h < s.cfg.LabelMinHeight {
		return ""
	}
	return TruncateToWidth(name, w-s.cfg.LabelPad, s.cfg.FontSize)
}

// labelColor picks dark or light text for contrast against the fill
func labelColor(fill string) string {
	c, err := colorful.Hex(fill)
	if err != nil {
		return "#111827"
	}
	if _, _, l := c.Hsl(); l > 0.62 {
		return "#111827"
	}
	return "#FFFFFF"
}
