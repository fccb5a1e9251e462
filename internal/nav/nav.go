// Package nav owns the zoom state machine: Overview (no zoomed node) or
// Zoomed into exactly one top-level category. Zoom depth is one level;
// the two-tier hierarchy has nothing deeper to zoom into.
package nav

import "github.com/lumipallolabs/corpusmap/internal/model"

// Controller tracks the currently zoomed node. It never mutates the
// hierarchy or the color table; transitions only swap which subtree the
// layout engine sees next.
type Controller struct {
	root   *model.Node
	zoomed *model.Node
	onZoom func(*model.Node)
}

// NewController creates a controller in the Overview state
func NewController(root *model.Node) *Controller {
	return &Controller{root: root}
}

// OnZoom registers a callback fired on every real state transition, with
// the new zoomed node or nil for Overview. No-op transitions never fire it.
func (c *Controller) OnZoom(fn func(*model.Node)) {
	c.onZoom = fn
}

// SetRoot swaps in a freshly built hierarchy. If a node with the same name
// as the current zoom target exists in the new tree, the zoom survives the
// data refresh; otherwise the controller falls back to Overview.
func (c *Controller) SetRoot(root *model.Node) {
	c.root = root
	if c.zoomed == nil {
		return
	}
	if root != nil {
		if match := root.ChildByName(c.zoomed.Name); match != nil && !match.IsLeaf() {
			c.zoomed = match
			return
		}
	}
	c.zoomed = nil
}

// Current returns the zoomed node, or nil in Overview
func (c *Controller) Current() *model.Node {
	return c.zoomed
}

// IsZoomed reports whether a node is zoomed
func (c *Controller) IsZoomed() bool {
	return c.zoomed != nil
}

// ZoomTo zooms into a top-level category. Returns true when the state
// changed. Clicking while already zoomed is a no-op, as is zooming into a
// leaf or into a node that is not a direct child of the root.
func (c *Controller) ZoomTo(node *model.Node) bool {
	if c.zoomed != nil || node == nil || node.IsLeaf() {
		return false
	}
	if c.root == nil || node.Parent != c.root {
		return false
	}
	c.zoomed = node
	if c.onZoom != nil {
		c.onZoom(node)
	}
	return true
}

// ZoomToName zooms by top-level category name (used by the HTTP frontend,
// where state arrives as a query parameter)
func (c *Controller) ZoomToName(name string) bool {
	if c.root == nil || name == "" {
		return false
	}
	return c.ZoomTo(c.root.ChildByName(name))
}

// ZoomOut returns to Overview. Calling it while already in Overview is a
// no-op: state unchanged, no event fired.
func (c *Controller) ZoomOut() bool {
	if c.zoomed == nil {
		return false
	}
	c.zoomed = nil
	if c.onZoom != nil {
		c.onZoom(nil)
	}
	return true
}

// Breadcrumb returns the trail for the current state: just the root label
// in Overview, root label plus the zoomed name when zoomed. Both chrome
// styles (breadcrumb bar and back button) render from this.
func (c *Controller) Breadcrumb(rootLabel string) []string {
	if c.zoomed == nil {
		return []string{rootLabel}
	}
	return []string{rootLabel, c.zoomed.Name}
}
