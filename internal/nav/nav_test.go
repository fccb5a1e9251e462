package nav

import (
	"testing"

	"github.com/lumipallolabs/corpusmap/internal/model"
)

func testTree() *model.Node {
	root := &model.Node{Name: "All"}
	benin := &model.Node{Name: "Benin", Parent: root}
	benin.Children = []*model.Node{
		{Name: "News", Value: 100, Parent: benin},
	}
	togo := &model.Node{Name: "Togo", Parent: root}
	togo.Children = []*model.Node{
		{Name: "Docs", Value: 50, Parent: togo},
	}
	root.Children = []*model.Node{benin, togo}
	root.ComputeValues()
	return root
}

func TestZoomTo(t *testing.T) {
	root := testTree()
	c := NewController(root)

	if !c.ZoomTo(root.Children[0]) {
		t.Fatal("expected zoom into top-level category to succeed")
	}
	if c.Current() != root.Children[0] {
		t.Error("wrong zoomed node")
	}
}

func TestZoomWhileZoomedIsNoOp(t *testing.T) {
	root := testTree()
	c := NewController(root)
	c.ZoomTo(root.Children[0])

	if c.ZoomTo(root.Children[1]) {
		t.Error("zooming while zoomed must be a no-op")
	}
	if c.Current() != root.Children[0] {
		t.Error("zoom target changed on a no-op")
	}
}

func TestZoomToLeafRejected(t *testing.T) {
	root := testTree()
	c := NewController(root)

	leaf := root.Children[0].Children[0]
	if c.ZoomTo(leaf) {
		t.Error("zooming into a subcategory leaf must be rejected")
	}
}

func TestZoomOut(t *testing.T) {
	root := testTree()
	c := NewController(root)
	c.ZoomTo(root.Children[0])

	if !c.ZoomOut() {
		t.Fatal("expected zoom out to succeed")
	}
	if c.IsZoomed() {
		t.Error("still zoomed after ZoomOut")
	}

	// Zooming out in Overview stays a no-op
	if c.ZoomOut() {
		t.Error("ZoomOut in Overview must be a no-op")
	}
}

func TestZoomEvents(t *testing.T) {
	root := testTree()
	c := NewController(root)

	var events []*model.Node
	c.OnZoom(func(n *model.Node) { events = append(events, n) })

	c.ZoomTo(root.Children[0])
	c.ZoomOut()
	c.ZoomOut() // no-op, no event

	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0] != root.Children[0] || events[1] != nil {
		t.Error("wrong event payloads")
	}
}

func TestZoomToName(t *testing.T) {
	root := testTree()
	c := NewController(root)

	if !c.ZoomToName("Togo") {
		t.Fatal("expected zoom by name to succeed")
	}
	if c.Current().Name != "Togo" {
		t.Error("wrong zoomed node")
	}
	c.ZoomOut()
	if c.ZoomToName("Ghana") {
		t.Error("unknown name must not zoom")
	}
}

func TestSetRootResolvesZoomByName(t *testing.T) {
	root := testTree()
	c := NewController(root)
	c.ZoomTo(root.Children[0]) // Benin

	// A rebuilt tree with the same category keeps the zoom
	fresh := testTree()
	c.SetRoot(fresh)
	if c.Current() == nil || c.Current().Name != "Benin" {
		t.Error("zoom did not survive the data refresh")
	}
	if c.Current() == root.Children[0] {
		t.Error("zoom points at the old tree")
	}

	// A tree without the category falls back to Overview
	c.SetRoot(&model.Node{Name: "All"})
	if c.IsZoomed() {
		t.Error("expected fallback to Overview")
	}
}

func TestBreadcrumb(t *testing.T) {
	root := testTree()
	c := NewController(root)

	trail := c.Breadcrumb("All collections")
	if len(trail) != 1 || trail[0] != "All collections" {
		t.Errorf("unexpected overview trail: %v", trail)
	}

	c.ZoomTo(root.Children[0])
	trail = c.Breadcrumb("All collections")
	if len(trail) != 2 || trail[1] != "Benin" {
		t.Errorf("unexpected zoomed trail: %v", trail)
	}
}
