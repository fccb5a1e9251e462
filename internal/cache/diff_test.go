package cache

import (
	"testing"

	"github.com/lumipallolabs/corpusmap/internal/model"
)

func TestApplyDiff(t *testing.T) {
	// Previous load
	prev := &model.Node{
		Name: "All",
		Children: []*model.Node{
			{Name: "old", Value: 100},
			{Name: "same", Value: 200},
		},
	}
	prev.ComputeValues()

	// Current load
	curr := &model.Node{
		Name: "All",
		Children: []*model.Node{
			{Name: "same", Value: 250}, // grew
			{Name: "new", Value: 300},  // new
		},
	}
	curr.ComputeValues()

	ApplyDiff(curr, prev)

	same := curr.ChildByName("same")
	if same == nil {
		t.Fatal("same category not found")
	}
	if same.PrevValue != 200 {
		t.Errorf("expected PrevValue 200, got %d", same.PrevValue)
	}
	if same.IsNew {
		t.Error("existing category must not be marked new")
	}
	if same.ValueChange() != 50 {
		t.Errorf("expected change 50, got %d", same.ValueChange())
	}

	newNode := curr.ChildByName("new")
	if newNode == nil {
		t.Fatal("new category not found")
	}
	if !newNode.IsNew {
		t.Error("expected new category to be marked IsNew")
	}
}

func TestApplyDiffMatchesByPath(t *testing.T) {
	// "News" exists under both categories; only the matching path carries
	// the previous value over
	prev := &model.Node{
		Name: "All",
		Children: []*model.Node{
			{Name: "Benin", Children: []*model.Node{{Name: "News", Value: 100}}},
		},
	}
	prev.ComputeValues()

	curr := &model.Node{
		Name: "All",
		Children: []*model.Node{
			{Name: "Benin", Children: []*model.Node{{Name: "News", Value: 150}}},
			{Name: "Togo", Children: []*model.Node{{Name: "News", Value: 50}}},
		},
	}
	curr.ComputeValues()

	ApplyDiff(curr, prev)

	beninNews := curr.ChildByName("Benin").ChildByName("News")
	if beninNews.PrevValue != 100 || beninNews.IsNew {
		t.Errorf("expected Benin/News matched, got prev=%d new=%v", beninNews.PrevValue, beninNews.IsNew)
	}

	togoNews := curr.ChildByName("Togo").ChildByName("News")
	if !togoNews.IsNew {
		t.Error("Togo/News must be new despite sharing the subcategory name")
	}
}

func TestApplyDiffNoPrevious(t *testing.T) {
	curr := &model.Node{
		Name:     "All",
		Children: []*model.Node{{Name: "Benin", Value: 100}},
	}
	curr.ComputeValues()

	ApplyDiff(curr, nil)

	if !curr.ChildByName("Benin").IsNew {
		t.Error("everything is new on the first load")
	}
}
