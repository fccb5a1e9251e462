package hierarchy

import (
	"errors"

	"github.com/lumipallolabs/corpusmap/internal/model"
)

// ErrNoData marks the explicit "no data" condition: zero records, or every
// category filtered out by the threshold. Callers render a placeholder
// instead of a chart; this never surfaces as a crash.
var ErrNoData = errors.New("hierarchy: no data")

// Config controls hierarchy construction
type Config struct {
	// RootLabel names the synthetic root node
	RootLabel string

	// Threshold is the relative-size filter in [0,1): top-level categories
	// whose share of the total falls below it are dropped entirely (not
	// merged into "other"). Zero disables the filter; values outside the
	// range fall back to DefaultThreshold.
	Threshold float64
}

// DefaultThreshold filters categories below 0.1% of the total
const DefaultThreshold = 0.001

// Build turns flat records into a two-level tree (category → subcategory),
// with values summed bottom-up, small categories filtered out, and children
// sorted largest-first so the layout anchors big categories top-left.
//
// An empty result returns the root alongside ErrNoData so callers can branch
// without a nil check.
func Build(records []model.Record, tax model.Taxonomy, cfg Config) (*model.Node, error) {
	if cfg.RootLabel == "" {
		cfg.RootLabel = "All"
	}
	if cfg.Threshold < 0 {
		cfg.Threshold = 0
	} else if cfg.Threshold >= 1 {
		cfg.Threshold = DefaultThreshold
	}

	root := &model.Node{Name: cfg.RootLabel}

	// Group by canonical category, then by subcategory, preserving
	// first-seen order until the final sort.
	catIndex := make(map[string]*model.Node)
	subIndex := make(map[string]map[string]*model.Node)

	for _, rec := range records {
		catName := tax.CategoryOf(rec)

		cat, ok := catIndex[catName]
		if !ok {
			cat = &model.Node{
				Name:   catName,
				Parent: root,
				Rank:   tax.RankOf(catName),
			}
			catIndex[catName] = cat
			subIndex[catName] = make(map[string]*model.Node)
			root.Children = append(root.Children, cat)
		}

		sub, ok := subIndex[catName][rec.Subcategory]
		if !ok {
			sub = &model.Node{
				Name:   rec.Subcategory,
				Parent: cat,
				Rank:   len(cat.Children),
			}
			subIndex[catName][rec.Subcategory] = sub
			cat.Children = append(cat.Children, sub)
		}

		sub.Value += rec.MetricValue
	}

	total := root.ComputeValues()

	// Threshold filter on top-level categories, relative to the full total
	if cfg.Threshold > 0 && total > 0 {
		kept := root.Children[:0]
		for _, cat := range root.Children {
			if float64(cat.TotalValue())/float64(total) >= cfg.Threshold {
				kept = append(kept, cat)
			} else {
				cat.Parent = nil
			}
		}
		root.Children = kept

		// Keep the sum invariant intact after dropping categories
		root.ComputeValues()
	}

	model.SortByValue(root.Children)
	for _, cat := range root.Children {
		model.SortByValue(cat.Children)
	}

	if len(root.Children) == 0 {
		return root, ErrNoData
	}
	return root, nil
}
