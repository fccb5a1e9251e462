package tui

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lumipallolabs/corpusmap/internal/core"
	"github.com/lumipallolabs/corpusmap/internal/layout"
	"github.com/lumipallolabs/corpusmap/internal/model"
)

// Block represents a rectangle in the treemap, in terminal cells
type Block struct {
	Node          *model.Node
	X, Y          int
	Width, Height int
	Fill          string // hex color resolved by the pipeline
}

// TreemapPanel displays the treemap for the controller's current
// navigation state, one level per screen: categories in the overview,
// the zoomed category's subcategories after Enter.
type TreemapPanel struct {
	ctrl     *core.Controller
	selected *model.Node
	blocks   []Block
	width    int
	height   int
	focused  bool

	// Render cache
	cachedView     string
	cacheValid     bool
	cachedSelected *model.Node
	cachedFocused  bool
}

// NewTreemapPanel creates a treemap panel over a chart controller
func NewTreemapPanel(ctrl *core.Controller) TreemapPanel {
	return TreemapPanel{ctrl: ctrl}
}

// SetSize sets the panel dimensions
func (t *TreemapPanel) SetSize(w, h int) {
	if t.width != w || t.height != h {
		t.width = w
		t.height = h
		t.Relayout()
	}
}

// SetFocused sets focus state
func (t *TreemapPanel) SetFocused(focused bool) {
	t.focused = focused
}

// InvalidateCache marks the render cache as invalid
func (t *TreemapPanel) InvalidateCache() {
	t.cacheValid = false
}

// Selected returns the currently selected node
func (t TreemapPanel) Selected() *model.Node {
	return t.selected
}

// SelectFirst selects the first (largest) block
func (t *TreemapPanel) SelectFirst() {
	if len(t.blocks) > 0 {
		t.selected = t.blocks[0].Node
	} else {
		t.selected = nil
	}
	t.cacheValid = false
}

// ZoomIn zooms into the selected category; no-op on subcategories and
// while already zoomed
func (t *TreemapPanel) ZoomIn() bool {
	if t.selected == nil {
		return false
	}
	if !t.ctrl.ZoomTo(t.selected) {
		return false
	}
	t.Relayout()
	t.SelectFirst()
	return true
}

// ZoomOut returns to the overview; no-op when already there
func (t *TreemapPanel) ZoomOut() bool {
	zoomed := t.ctrl.Zoomed()
	if !t.ctrl.ZoomOut() {
		return false
	}
	t.Relayout()

	// Reselect the category we just left so navigation feels continuous
	t.selected = nil
	if zoomed != nil {
		for i := range t.blocks {
			if t.blocks[i].Node == zoomed {
				t.selected = t.blocks[i].Node
				break
			}
		}
	}
	if t.selected == nil {
		t.SelectFirst()
	}
	return true
}

// MoveToBlock moves selection to an adjacent block
func (t *TreemapPanel) MoveToBlock(dx, dy int) {
	if len(t.blocks) == 0 {
		return
	}

	var currentBlock *Block
	for i := range t.blocks {
		if t.blocks[i].Node == t.selected {
			currentBlock = &t.blocks[i]
			break
		}
	}

	if currentBlock == nil {
		t.SelectFirst()
		return
	}

	cx := currentBlock.X + currentBlock.Width/2
	cy := currentBlock.Y + currentBlock.Height/2

	// Find best candidate in the requested direction
	var bestBlock *Block
	bestDist := -1

	for i := range t.blocks {
		block := &t.blocks[i]
		if block.Node == nil || block.Node == t.selected {
			continue
		}

		bx := block.X + block.Width/2
		by := block.Y + block.Height/2

		if dx > 0 && bx <= cx {
			continue
		}
		if dx < 0 && bx >= cx {
			continue
		}
		if dy > 0 && by <= cy {
			continue
		}
		if dy < 0 && by >= cy {
			continue
		}

		dist := abs(bx-cx) + abs(by-cy)
		if bestDist < 0 || dist < bestDist {
			bestDist = dist
			bestBlock = block
		}
	}

	if bestBlock != nil {
		t.selected = bestBlock.Node
		t.cacheValid = false
	}
}

const (
	// margin for rightmost block borders
	treemapBorderH = 2
)

// Relayout recomputes blocks from the controller's current state
func (t *TreemapPanel) Relayout() {
	t.blocks = nil
	t.cacheValid = false

	if !t.ctrl.HasData() || t.width <= 2 || t.height <= 2 {
		t.selected = nil
		return
	}

	contentW := t.width - treemapBorderH
	contentH := t.height
	if contentW < 1 {
		contentW = 1
	}
	if contentH < 1 {
		contentH = 1
	}

	rects, err := t.ctrl.Layout(layout.Viewport{
		Width:  float64(contentW),
		Height: float64(contentH),
	})
	if err != nil {
		t.selected = nil
		return
	}

	for _, r := range rects {
		// One level per screen; subcategory rects of the overview stay
		// in the SVG frontend where there is room for them
		if r.Depth != 0 {
			continue
		}

		// Round both edges so adjacent blocks share boundaries
		x := int(math.Round(r.X0))
		y := int(math.Round(r.Y0))
		w := int(math.Round(r.X1)) - x
		h := int(math.Round(r.Y1)) - y

		if x < 0 {
			x = 0
		}
		if y < 0 {
			y = 0
		}
		if x+w > contentW {
			w = contentW - x
		}
		if y+h > contentH {
			h = contentH - y
		}
		if w < 1 || h < 1 || x >= contentW || y >= contentH {
			continue
		}

		t.blocks = append(t.blocks, Block{
			Node:   r.Node,
			X:      x,
			Y:      y,
			Width:  w,
			Height: h,
			Fill:   t.ctrl.FillFor(r),
		})
	}

	// Keep selection if its node survived the relayout
	if t.selected != nil {
		found := false
		for i := range t.blocks {
			if t.blocks[i].Node == t.selected {
				found = true
				break
			}
		}
		if !found {
			t.selected = nil
		}
	}
	if t.selected == nil {
		t.SelectFirst()
	}
}

// View renders the treemap
func (t *TreemapPanel) View() string {
	if !t.ctrl.HasData() {
		return TreemapPanelStyle.Render(core.PlaceholderNoData)
	}

	if t.cacheValid &&
		t.cachedSelected == t.selected &&
		t.cachedFocused == t.focused {
		return t.cachedView
	}

	contentW := t.width - treemapBorderH
	contentH := t.height
	if contentW < 1 {
		contentW = 1
	}
	if contentH < 1 {
		contentH = 1
	}

	// Render each block completely, then composite line by line
	type renderedBlock struct {
		block Block
		lines []string
	}

	var rendered []renderedBlock
	for _, block := range t.blocks {
		if block.Width < 1 || block.Height < 1 {
			continue
		}
		blockStr := t.renderBlock(block)
		lines := strings.Split(blockStr, "\n")
		rendered = append(rendered, renderedBlock{block, lines})
	}

	var outputLines []string
	for y := 0; y < contentH; y++ {
		type blockSegment struct {
			x     int
			width int
			line  string
		}
		var segments []blockSegment

		for _, rb := range rendered {
			lineIdx := y - rb.block.Y
			if lineIdx >= 0 && lineIdx < len(rb.lines) && lineIdx < rb.block.Height {
				segments = append(segments, blockSegment{
					x:     rb.block.X,
					width: rb.block.Width,
					line:  rb.lines[lineIdx],
				})
			}
		}

		sort.Slice(segments, func(i, j int) bool {
			return segments[i].x < segments[j].x
		})

		var lineBuilder strings.Builder
		currentX := 0
		for _, seg := range segments {
			if seg.x > currentX {
				lineBuilder.WriteString(strings.Repeat(" ", seg.x-currentX))
			}
			lineBuilder.WriteString(seg.line)
			currentX = seg.x + seg.width
		}
		outputLines = append(outputLines, lineBuilder.String())
	}

	content := strings.Join(outputLines, "\n")
	style := lipgloss.NewStyle().Height(t.height).MaxHeight(t.height)

	t.cachedView = style.Render(content)
	t.cacheValid = true
	t.cachedSelected = t.selected
	t.cachedFocused = t.focused

	return t.cachedView
}

// renderBlock renders a complete block with its border and label
func (t TreemapPanel) renderBlock(block Block) string {
	fgColor := lipgloss.Color(block.Fill)
	borderColor := lipgloss.Color(block.Fill)

	isSelected := block.Node == t.selected
	if isSelected && t.focused {
		fgColor = lipgloss.Color("#FFFFFF")
		borderColor = ColorPrimary
	} else if isSelected {
		fgColor = lipgloss.Color("#E0E0E0")
		borderColor = lipgloss.Color("#9D7CD8") // dimmer violet
	}

	var label, valueStr string
	if block.Node != nil {
		label = block.Node.Name
		valueStr = FormatValue(block.Node.TotalValue())
		if total := t.ctrl.Total(); total > 0 {
			valueStr = fmt.Sprintf("%s (%.1f%%)", valueStr, block.Node.PercentOf(total))
		}
	}

	innerW := block.Width - 2
	innerH := block.Height - 2
	if innerW < 0 {
		innerW = 0
	}
	if innerH < 0 {
		innerH = 0
	}

	text := label
	if innerH > 1 && valueStr != "" {
		text = label + "\n" + valueStr
	}

	blockStyle := lipgloss.NewStyle().
		Width(innerW).
		Height(innerH).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Foreground(fgColor)

	if isSelected {
		blockStyle = blockStyle.Bold(true)
	}

	return blockStyle.Render(text)
}

// abs returns the absolute value of x
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
