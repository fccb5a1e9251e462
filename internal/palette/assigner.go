package palette

import (
	"hash/fnv"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lumipallolabs/corpusmap/internal/model"
)

// Mode selects how subcategories are colored in the overview
type Mode int

const (
	// ModeInherit gives every subcategory its parent's exact color
	ModeInherit Mode = iota
	// ModeVariant derives a per-subcategory saturation/lightness variant
	// of the parent's hue
	ModeVariant
)

// Legibility clamps for derived variants
const (
	variantSatMin   = 0.2
	variantSatMax   = 0.45
	variantLightMin = 0.1
	variantLightMax = 0.9
)

// Assigner hands out colors from a fixed palette and records them in the
// shared table. Assignment order follows sibling position, so the caller
// must pass nodes in their final (post-sort) order.
type Assigner struct {
	table   Table
	palette []string
	mode    Mode
}

// NewAssigner wraps an existing table (nil starts a fresh one). An empty
// palette falls back to Default.
func NewAssigner(table Table, colors []string, mode Mode) *Assigner {
	if table == nil {
		table = NewTable()
	}
	if len(colors) == 0 {
		colors = Default
	}
	return &Assigner{table: table, palette: colors, mode: mode}
}

// Table exposes the underlying color table (read-only by convention)
func (a *Assigner) Table() Table {
	return a.table
}

// AssignTopLevel assigns palette colors to top-level nodes by sibling
// position. Names already in the table keep their color untouched, which is
// what guarantees stability across re-renders and zoom transitions.
func (a *Assigner) AssignTopLevel(nodes []*model.Node) {
	for i, n := range nodes {
		if _, ok := a.table[n.Name]; ok {
			continue
		}
		a.table[n.Name] = a.palette[i%len(a.palette)]
	}
}

// TopLevelColor returns the assigned color for a top-level node name,
// falling back to the first palette entry for names never assigned.
func (a *Assigner) TopLevelColor(name string) string {
	if c, ok := a.table[name]; ok {
		return c
	}
	return a.palette[0]
}

// ChildColor resolves a subcategory color in the overview, honoring the
// configured mode. Derived variants are a pure function of the parent color
// and the child's name, so they need no table entry (subcategory names are
// not unique across categories).
func (a *Assigner) ChildColor(parentColor, childName string) string {
	if a.mode == ModeInherit {
		return parentColor
	}
	return DeriveVariant(parentColor, childName)
}

// ZoomedChildColor returns the color for children of a zoomed node: all of
// them share the parent's exact color, to read as "these are all of X".
func (a *Assigner) ZoomedChildColor(parentColor string) string {
	return parentColor
}

// DeriveVariant produces a deterministic, visually related variant of the
// parent color: same hue, with saturation and lightness perturbed by a
// stable hash of the child identifier, clamped to legible ranges.
func DeriveVariant(parentColor, childID string) string {
	base, err := colorful.Hex(parentColor)
	if err != nil {
		return parentColor
	}

	u := hashUnit(childID)
	h, _, l := base.Hsl()

	sat := variantSatMin + u*(variantSatMax-variantSatMin)
	light := clamp(l+(u-0.5)*0.4, variantLightMin, variantLightMax)

	return colorful.Hsl(h, sat, light).Clamped().Hex()
}

// hashUnit maps an identifier to a stable value in [0,1)
func hashUnit(id string) float64 {
	h := fnv.New32a()
	h.Write([]byte(id))
	return float64(h.Sum32()) / float64(math.MaxUint32+1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
