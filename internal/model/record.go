package model

// Record is a single flat catalog item as supplied by the caller.
// Records are read-only inputs; the core never mutates them.
type Record struct {
	Category    string `json:"category" yaml:"category"`
	Subcategory string `json:"subcategory" yaml:"subcategory"`
	MetricValue int64  `json:"metricValue" yaml:"metricValue"`
}

// FallbackCategory is where records land when neither the record nor the
// taxonomy can name a canonical category.
const FallbackCategory = "other"

// Taxonomy maps raw subcategory labels to canonical category ids and fixes
// the canonical category order used for sort tie-breaks.
type Taxonomy struct {
	// Categories lists canonical category ids in display order.
	Categories []string `yaml:"categories"`

	// Mapping resolves raw subcategory labels to canonical category ids.
	// Labels not present here fall back to the record's own category, or to
	// FallbackCategory when the record has none.
	Mapping map[string]string `yaml:"mapping"`
}

// CategoryOf resolves the canonical category for a record. Precedence:
// explicit taxonomy mapping of the subcategory label, then the record's own
// category, then the "other" fallback.
func (t Taxonomy) CategoryOf(rec Record) string {
	if t.Mapping != nil {
		if cat, ok := t.Mapping[rec.Subcategory]; ok && cat != "" {
			return cat
		}
	}
	if rec.Category != "" {
		return rec.Category
	}
	return FallbackCategory
}

// RankOf returns the category's position in the canonical order, or a rank
// past all known categories for names the taxonomy has never seen.
func (t Taxonomy) RankOf(category string) int {
	for i, c := range t.Categories {
		if c == category {
			return i
		}
	}
	return len(t.Categories)
}
