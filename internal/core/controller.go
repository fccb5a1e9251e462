// Package core wires the pipeline together: hierarchy → colors → layout →
// renderer, with navigation state feeding back into the layout pass. The
// hierarchy and color table persist across renders; layouts are recomputed
// wholesale on every pass.
package core

import (
	"errors"

	"github.com/lumipallolabs/corpusmap/internal/hierarchy"
	"github.com/lumipallolabs/corpusmap/internal/layout"
	"github.com/lumipallolabs/corpusmap/internal/logging"
	"github.com/lumipallolabs/corpusmap/internal/model"
	"github.com/lumipallolabs/corpusmap/internal/nav"
	"github.com/lumipallolabs/corpusmap/internal/palette"
	"github.com/lumipallolabs/corpusmap/internal/render"
)

// PlaceholderNoData is the user-visible message for the empty-data state
const PlaceholderNoData = "no data available"

// Renderer is the drawing capability the controller needs. The SVG backend
// satisfies it; the terminal panel draws from Layout/FillFor directly, so
// the rendering technology stays an internal detail of each frontend.
type Renderer interface {
	Render(vp layout.Viewport, items []render.Item, total int64) []byte
	RenderPlaceholder(vp layout.Viewport, message string) []byte
}

// Controller owns the pipeline state for one chart. All operations run
// synchronously to completion; callers serialize invocations (the TUI
// debounces resizes, the HTTP frontend builds state per request).
type Controller struct {
	opts   Options
	events Events

	tax    model.Taxonomy
	root   *model.Node
	noData bool

	assigner *palette.Assigner
	engine   *layout.Engine
	renderer Renderer
	nav      *nav.Controller
}

// NewController creates a pipeline with the given options and event hooks
func NewController(opts Options, events Events) *Controller {
	switch {
	case opts.MinSizeThreshold < 0:
		// NoThreshold and friends: keep every category
		opts.MinSizeThreshold = 0
	case opts.MinSizeThreshold == 0:
		// Zero-valued Options means unset, not "no filtering"
		opts.MinSizeThreshold = hierarchy.DefaultThreshold
	}
	if opts.RootLabel == "" {
		opts.RootLabel = DefaultOptions().RootLabel
	}
	if opts.LabelMinWidth <= 0 {
		opts.LabelMinWidth = DefaultOptions().LabelMinWidth
	}
	if opts.LabelMinHeight <= 0 {
		opts.LabelMinHeight = DefaultOptions().LabelMinHeight
	}
	if opts.Padding == (layout.Padding{}) {
		opts.Padding = layout.DefaultPadding()
	}

	renderCfg := render.DefaultConfig()
	renderCfg.LabelMinWidth = opts.LabelMinWidth
	renderCfg.LabelMinHeight = opts.LabelMinHeight

	c := &Controller{
		opts:     opts,
		events:   events,
		assigner: palette.NewAssigner(nil, opts.ColorPalette, opts.ChildColorMode),
		engine:   layout.NewEngine(opts.Padding),
		renderer: render.NewSVG(renderCfg),
		nav:      nav.NewController(nil),
		noData:   true,
	}
	c.nav.OnZoom(func(n *model.Node) {
		if c.events.OnZoom != nil {
			c.events.OnZoom(n)
		}
	})
	return c
}

// SetData rebuilds the hierarchy from fresh records. Colors assigned in
// earlier calls survive: top-level names keep their table entry and only
// genuinely new names receive palette slots. Returns hierarchy.ErrNoData
// when nothing remains to draw; rendering then degrades to the placeholder.
func (c *Controller) SetData(records []model.Record, tax model.Taxonomy) error {
	c.tax = tax
	root, err := hierarchy.Build(records, tax, hierarchy.Config{
		RootLabel: c.opts.RootLabel,
		Threshold: c.opts.MinSizeThreshold,
	})
	c.root = root
	c.noData = err != nil
	c.nav.SetRoot(root)

	if err != nil {
		if errors.Is(err, hierarchy.ErrNoData) {
			logging.Debug.Printf("core: empty hierarchy, placeholder will render")
		}
		return err
	}

	c.assigner.AssignTopLevel(root.Children)
	return nil
}

// ResetColors clears the color table for a full data reload, where stale
// assignments should not pin palette slots. Current top-level nodes are
// re-assigned immediately in their present order.
func (c *Controller) ResetColors() {
	c.assigner = palette.NewAssigner(nil, c.opts.ColorPalette, c.opts.ChildColorMode)
	if c.HasData() {
		c.assigner.AssignTopLevel(c.root.Children)
	}
}

// RestoreColors seeds the color table from a persisted snapshot, keeping
// colors stable across runs. Call before or after SetData; existing
// assignments for current categories win over palette order.
func (c *Controller) RestoreColors(table palette.Table) {
	if len(table) == 0 {
		return
	}
	c.assigner = palette.NewAssigner(table.Clone(), c.opts.ColorPalette, c.opts.ChildColorMode)
	if c.HasData() {
		c.assigner.AssignTopLevel(c.root.Children)
	}
}

// Colors exposes the current color table (for persistence and frontends)
func (c *Controller) Colors() palette.Table {
	return c.assigner.Table()
}

// HasData reports whether there is anything to draw
func (c *Controller) HasData() bool {
	return c.root != nil && !c.noData && len(c.root.Children) > 0
}

// Root returns the hierarchy root (read-only downstream)
func (c *Controller) Root() *model.Node {
	return c.root
}

// Total returns the grand total, the base for all percentages
func (c *Controller) Total() int64 {
	if c.root == nil {
		return 0
	}
	return c.root.TotalValue()
}

// Zoomed returns the zoomed node or nil
func (c *Controller) Zoomed() *model.Node {
	return c.nav.Current()
}

// ZoomTo zooms into a top-level category; no-op while already zoomed
func (c *Controller) ZoomTo(node *model.Node) bool {
	return c.nav.ZoomTo(node)
}

// ZoomToName zooms by category name
func (c *Controller) ZoomToName(name string) bool {
	return c.nav.ZoomToName(name)
}

// ZoomOut returns to the overview; no-op when already there
func (c *Controller) ZoomOut() bool {
	return c.nav.ZoomOut()
}

// Breadcrumb returns the navigation trail for the current state
func (c *Controller) Breadcrumb() []string {
	return c.nav.Breadcrumb(c.opts.RootLabel)
}

// UseBreadcrumbs reports which navigation chrome the configuration selected
func (c *Controller) UseBreadcrumbs() bool {
	return c.opts.UseBreadcrumbs
}

// Layout computes rectangles for the current navigation state: the nested
// overview, or the zoomed node's children spread flat across the viewport.
func (c *Controller) Layout(vp layout.Viewport) ([]layout.LaidOutNode, error) {
	if zoomed := c.nav.Current(); zoomed != nil {
		return c.engine.Zoomed(zoomed, vp)
	}
	return c.engine.Overview(c.root, vp)
}

// FillFor resolves the color for one laid-out rectangle under the current
// navigation state and child-color mode
func (c *Controller) FillFor(r layout.LaidOutNode) string {
	if zoomed := c.nav.Current(); zoomed != nil {
		return c.assigner.ZoomedChildColor(c.assigner.TopLevelColor(zoomed.Name))
	}
	if r.Depth == 0 || r.Node.Parent == nil {
		return c.assigner.TopLevelColor(r.Node.Name)
	}
	parentColor := c.assigner.TopLevelColor(r.Node.Parent.Name)
	return c.assigner.ChildColor(parentColor, r.Node.Name)
}

// RenderSVG runs layout and rendering for the current state. Every failure
// path inside degrades to a placeholder document; nothing escapes. link,
// when non-nil, supplies zoom URLs for clickable top-level rects in the
// overview.
func (c *Controller) RenderSVG(vp layout.Viewport, link func(*model.Node) string) []byte {
	vp = vp.Clamped()

	if !c.HasData() {
		return c.renderer.RenderPlaceholder(vp, PlaceholderNoData)
	}

	rects, err := c.Layout(vp)
	if err != nil {
		logging.Debug.Printf("core: layout computation failed: %v, rendering placeholder", err)
		return c.renderer.RenderPlaceholder(vp, PlaceholderNoData)
	}
	if len(rects) == 0 {
		return c.renderer.RenderPlaceholder(vp, PlaceholderNoData)
	}

	items := make([]render.Item, 0, len(rects))
	clickable := !c.nav.IsZoomed()
	for _, r := range rects {
		var href string
		if link != nil && clickable && r.Depth == 0 && !r.Node.IsLeaf() {
			href = link(r.Node)
		}
		items = append(items, render.Item{Rect: r, Fill: c.FillFor(r), Href: href})
	}

	return c.renderer.Render(vp, items, c.Total())
}

// Hover reports a frontend hover/selection entering a node
func (c *Controller) Hover(node *model.Node) {
	if node == nil || c.events.OnHover == nil {
		return
	}
	c.events.OnHover(node.Name, node.TotalValue(), node.PercentOf(c.Total()))
}

// HoverEnd reports the hover leaving the chart
func (c *Controller) HoverEnd() {
	if c.events.OnHoverEnd != nil {
		c.events.OnHoverEnd()
	}
}

// BuildAndRender is the one-shot entry point: records and taxonomy in, SVG
// document out. All recoverable failures (empty data, bad dimensions,
// layout errors) come back as a rendered placeholder, never as an error.
func BuildAndRender(records []model.Record, tax model.Taxonomy, vp layout.Viewport, opts Options) []byte {
	ctrl := NewController(opts, Events{})
	if err := ctrl.SetData(records, tax); err != nil {
		logging.Debug.Printf("core: build: %v", err)
	}
	return ctrl.RenderSVG(vp, nil)
}
