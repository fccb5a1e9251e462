package tui

import (
	"testing"

	"github.com/lumipallolabs/corpusmap/internal/core"
	"github.com/lumipallolabs/corpusmap/internal/model"
)

func testController(t *testing.T) *core.Controller {
	t.Helper()
	ctrl := core.NewController(core.DefaultOptions(), core.Events{})
	records := []model.Record{
		{Category: "Togo", Subcategory: "News", MetricValue: 120},
		{Category: "Togo", Subcategory: "Docs", MetricValue: 80},
		{Category: "Benin", Subcategory: "News", MetricValue: 100},
		{Category: "Benin", Subcategory: "Docs", MetricValue: 50},
	}
	if err := ctrl.SetData(records, model.Taxonomy{}); err != nil {
		t.Fatalf("SetData: %v", err)
	}
	return ctrl
}

func TestPanelLaysOutCategories(t *testing.T) {
	panel := NewTreemapPanel(testController(t))
	panel.SetSize(80, 24)

	if len(panel.blocks) != 2 {
		t.Fatalf("expected 2 category blocks, got %d", len(panel.blocks))
	}

	// Largest category is selected first
	if sel := panel.Selected(); sel == nil || sel.Name != "Togo" {
		t.Errorf("expected Togo selected, got %v", sel)
	}

	// Blocks stay inside the panel
	for _, b := range panel.blocks {
		if b.X < 0 || b.Y < 0 || b.X+b.Width > 80 || b.Y+b.Height > 24 {
			t.Errorf("block %s out of bounds: %+v", b.Node.Name, b)
		}
		if b.Fill == "" {
			t.Errorf("block %s has no fill color", b.Node.Name)
		}
	}
}

func TestPanelMoveSelection(t *testing.T) {
	panel := NewTreemapPanel(testController(t))
	panel.SetSize(80, 24)

	first := panel.Selected()

	// Walk towards the other block; one of the four directions must reach it
	moved := false
	for _, d := range [][2]int{{1, 0}, {0, 1}, {-1, 0}, {0, -1}} {
		panel.MoveToBlock(d[0], d[1])
		if panel.Selected() != first {
			moved = true
			break
		}
	}
	if !moved {
		t.Fatal("selection never moved to the adjacent block")
	}
}

func TestPanelZoomInAndOut(t *testing.T) {
	ctrl := testController(t)
	panel := NewTreemapPanel(ctrl)
	panel.SetSize(80, 24)

	if !panel.ZoomIn() {
		t.Fatal("expected zoom into the selected category")
	}
	if ctrl.Zoomed() == nil || ctrl.Zoomed().Name != "Togo" {
		t.Errorf("controller not zoomed into Togo: %v", ctrl.Zoomed())
	}

	// Zoomed view shows the subcategories
	if len(panel.blocks) != 2 {
		t.Fatalf("expected 2 subcategory blocks, got %d", len(panel.blocks))
	}
	if sel := panel.Selected(); sel == nil || sel.Name != "News" {
		t.Errorf("expected News selected after zoom, got %v", sel)
	}

	// Zooming again while zoomed is a no-op
	if panel.ZoomIn() {
		t.Error("zoom while zoomed must be rejected")
	}

	if !panel.ZoomOut() {
		t.Fatal("expected zoom out")
	}
	if ctrl.Zoomed() != nil {
		t.Error("controller still zoomed after ZoomOut")
	}
	// Selection returns to the category we left
	if sel := panel.Selected(); sel == nil || sel.Name != "Togo" {
		t.Errorf("expected Togo reselected, got %v", sel)
	}

	if panel.ZoomOut() {
		t.Error("zoom out in overview must be a no-op")
	}
}

func TestPanelViewRenders(t *testing.T) {
	panel := NewTreemapPanel(testController(t))
	panel.SetSize(80, 24)
	panel.SetFocused(true)

	view := panel.View()
	if view == "" {
		t.Fatal("empty view")
	}

	// Cache returns the identical string on an unchanged state
	if again := panel.View(); again != view {
		t.Error("render cache returned a different view")
	}
}

func TestPanelNoData(t *testing.T) {
	ctrl := core.NewController(core.DefaultOptions(), core.Events{})
	panel := NewTreemapPanel(ctrl)
	panel.SetSize(80, 24)

	if len(panel.blocks) != 0 {
		t.Errorf("expected no blocks without data, got %d", len(panel.blocks))
	}
	if panel.Selected() != nil {
		t.Error("expected no selection without data")
	}
}
