// Package layout computes the squarified treemap tiling. It is a pure data
// stage: given a hierarchy and a viewport it returns absolute pixel
// rectangles, and nothing here touches rendering or navigation state.
package layout

import (
	"errors"
	"math"

	"github.com/jeffwilliams/squarify"

	"github.com/lumipallolabs/corpusmap/internal/logging"
	"github.com/lumipallolabs/corpusmap/internal/model"
)

// ErrBadValue is returned when the hierarchy carries a negative metric
// value. Caught at this boundary so the caller can degrade to the no-data
// placeholder instead of producing a broken tiling.
var ErrBadValue = errors.New("layout: negative metric value")

// Padding configures the whitespace of the tiling, in pixels
type Padding struct {
	Outer float64 // margin around the whole diagram
	Top   float64 // label band reserved inside each non-leaf rectangle
	Inner float64 // gap between adjacent sibling rectangles
}

// DefaultPadding returns the standard 3/16/1 px configuration
func DefaultPadding() Padding {
	return Padding{Outer: 3, Top: 16, Inner: 1}
}

// Viewport is the target drawing area in pixels
type Viewport struct {
	Width  float64
	Height float64
}

// MinViewportSide substitutes for non-positive viewport dimensions
const MinViewportSide = 300

// Clamped replaces non-positive dimensions with MinViewportSide
func (v Viewport) Clamped() Viewport {
	if v.Width <= 0 || v.Height <= 0 {
		logging.Debug.Printf("layout: invalid viewport %.0fx%.0f, substituting %dx%d",
			v.Width, v.Height, MinViewportSide, MinViewportSide)
		if v.Width <= 0 {
			v.Width = MinViewportSide
		}
		if v.Height <= 0 {
			v.Height = MinViewportSide
		}
	}
	return v
}

// LaidOutNode is one computed rectangle. Coordinates are exact (unrounded);
// renderers snap to whole pixels themselves.
type LaidOutNode struct {
	Node           *model.Node
	X0, Y0, X1, Y1 float64
	Depth          int
}

// Width returns the rectangle width
func (r LaidOutNode) Width() float64 { return r.X1 - r.X0 }

// Height returns the rectangle height
func (r LaidOutNode) Height() float64 { return r.Y1 - r.Y0 }

// Engine computes treemap layouts with a fixed padding configuration
type Engine struct {
	pad Padding
}

// NewEngine creates a layout engine
func NewEngine(pad Padding) *Engine {
	return &Engine{pad: pad}
}

// Overview lays out the full two-level hierarchy: category containers with
// their subcategory leaves nested inside each container's interior. The
// result lists every container immediately before its children.
func (e *Engine) Overview(root *model.Node, vp Viewport) ([]LaidOutNode, error) {
	if root == nil || len(root.Children) == 0 {
		return nil, nil
	}
	if err := validateValues(root); err != nil {
		return nil, err
	}
	vp = vp.Clamped()

	x := e.pad.Outer
	y := e.pad.Outer
	w := vp.Width - 2*e.pad.Outer
	h := vp.Height - 2*e.pad.Outer
	if w < 1 || h < 1 {
		return nil, nil
	}

	out := make([]LaidOutNode, 0, countNodes(root))
	for _, cat := range tileLevel(root.Children, x, y, w, h, 0, e.pad.Inner) {
		out = append(out, cat)

		if len(cat.Node.Children) == 0 {
			continue
		}

		// Interior: the label band at the top, flush sides and bottom.
		// Sibling separation inside comes from the inner gap.
		ix := cat.X0
		iy := cat.Y0 + e.pad.Top
		iw := cat.X1 - ix
		ih := cat.Y1 - iy
		if iw < 1 || ih < 1 {
			continue
		}

		out = append(out, tileLevel(cat.Node.Children, ix, iy, iw, ih, 1, e.pad.Inner)...)
	}
	return out, nil
}

// Zoomed lays out the zoomed node's children as a fresh top-level set
// filling the whole viewport: a single flat level, not a clipped view of
// the overview.
func (e *Engine) Zoomed(zoom *model.Node, vp Viewport) ([]LaidOutNode, error) {
	if zoom == nil || len(zoom.Children) == 0 {
		return nil, nil
	}
	if err := validateValues(zoom); err != nil {
		return nil, err
	}
	vp = vp.Clamped()

	x := e.pad.Outer
	y := e.pad.Outer
	w := vp.Width - 2*e.pad.Outer
	h := vp.Height - 2*e.pad.Outer
	if w < 1 || h < 1 {
		return nil, nil
	}

	return tileLevel(zoom.Children, x, y, w, h, 0, e.pad.Inner), nil
}

// sizer adapts model.Node to squarify.TreeSizer for one level at a time
type sizer struct {
	node     *model.Node
	size     float64
	children []*sizer
}

func (s *sizer) Size() float64 { return s.size }

func (s *sizer) NumChildren() int { return len(s.children) }

func (s *sizer) Child(i int) squarify.TreeSizer { return s.children[i] }

// tileLevel runs the squarify algorithm over one sibling set. Each tile is
// inset by half the gap on every side, with the region expanded to
// compensate, so adjacent siblings end up exactly gap apart while edge
// tiles stay flush with the region boundary. Zero-valued nodes take no
// space and are skipped; rectangles whose rounded width or height
// collapses below one pixel are dropped from the output.
func tileLevel(nodes []*model.Node, x, y, w, h float64, depth int, gap float64) []LaidOutNode {
	children := make([]*sizer, 0, len(nodes))
	root := &sizer{}
	for _, n := range nodes {
		if n.TotalValue() <= 0 {
			continue
		}
		s := &sizer{node: n, size: float64(n.TotalValue())}
		children = append(children, s)
		root.size += s.size
	}
	if len(children) == 0 {
		return nil
	}
	root.children = children

	half := gap / 2
	blocks, metas := squarify.Squarify(root, squarify.Rect{X: x - half, Y: y - half, W: w + gap, H: h + gap}, squarify.Options{
		MaxDepth: 1,
		Sort:     true,
	})

	out := make([]LaidOutNode, 0, len(children))
	for i, b := range blocks {
		// Squarify reports the root's children at depth 0
		if i >= len(metas) || metas[i].Depth != 0 {
			continue
		}
		s, ok := b.TreeSizer.(*sizer)
		if !ok || s.node == nil {
			continue
		}
		x0 := b.X + half
		y0 := b.Y + half
		x1 := b.X + b.W - half
		y1 := b.Y + b.H - half
		if rw, rh := roundedWH(x0, y0, x1-x0, y1-y0); rw < 1 || rh < 1 {
			continue
		}
		out = append(out, LaidOutNode{
			Node:  s.node,
			X0:    x0,
			Y0:    y0,
			X1:    x1,
			Y1:    y1,
			Depth: depth,
		})
	}
	return out
}

// roundedWH returns the final pixel width/height after snapping the rect
// corners, which is what decides whether a rect survives rendering
func roundedWH(x, y, w, h float64) (float64, float64) {
	x1 := math.Round(x)
	y1 := math.Round(y)
	x2 := math.Round(x + w)
	y2 := math.Round(y + h)
	return math.Max(0, x2-x1), math.Max(0, y2-y1)
}

func validateValues(n *model.Node) error {
	if n.Value < 0 {
		return ErrBadValue
	}
	for _, child := range n.Children {
		if err := validateValues(child); err != nil {
			return err
		}
	}
	return nil
}

func countNodes(root *model.Node) int {
	count := len(root.Children)
	for _, c := range root.Children {
		count += len(c.Children)
	}
	return count
}
