// Package palette owns color assignment for the treemap: one stable base
// color per top-level category, derived or inherited colors for their
// subcategories. The color table is injectable state, not a package global,
// and entries are only ever added, never rewritten.
package palette

// Default is the 10-color categorical palette used when the caller does not
// supply one.
var Default = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// Table maps node names to hex color strings. It grows monotonically within
// a session; only a full data reload may clear it.
type Table map[string]string

// NewTable returns an empty color table
func NewTable() Table {
	return make(Table)
}

// Lookup returns the color assigned to name, if any
func (t Table) Lookup(name string) (string, bool) {
	c, ok := t[name]
	return c, ok
}

// Clone copies the table (used when persisting a snapshot)
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}
