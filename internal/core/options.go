package core

import (
	"github.com/lumipallolabs/corpusmap/internal/hierarchy"
	"github.com/lumipallolabs/corpusmap/internal/layout"
	"github.com/lumipallolabs/corpusmap/internal/model"
	"github.com/lumipallolabs/corpusmap/internal/palette"
)

// NoThreshold as MinSizeThreshold disables the small-category filter.
// Any negative value works; zero means unset and takes the default.
const NoThreshold = -1

// Options is the recognized configuration surface of the pipeline
type Options struct {
	// MinSizeThreshold drops top-level categories below this share of the
	// total (default 0.001, NoThreshold to keep everything)
	MinSizeThreshold float64

	// Padding is the outer/top/inner whitespace of the tiling (default 3/16/1)
	Padding layout.Padding

	// ColorPalette is the ordered list of base colors for top-level
	// categories (default: the built-in 10-color categorical palette)
	ColorPalette []string

	// ChildColorMode picks exact inheritance (default) or derived variants
	// for subcategory colors in the overview
	ChildColorMode palette.Mode

	// UseBreadcrumbs selects the breadcrumb bar over the floating back
	// button as the navigation chrome
	UseBreadcrumbs bool

	// RootLabel names the hierarchy root (shown in the breadcrumb)
	RootLabel string

	// LabelMinWidth/LabelMinHeight suppress labels on rects smaller than
	// this (defaults 30/20 px)
	LabelMinWidth  float64
	LabelMinHeight float64
}

// DefaultOptions returns the standard configuration
func DefaultOptions() Options {
	return Options{
		MinSizeThreshold: hierarchy.DefaultThreshold,
		Padding:          layout.DefaultPadding(),
		ChildColorMode:   palette.ModeInherit,
		UseBreadcrumbs:   true,
		RootLabel:        "All collections",
		LabelMinWidth:    30,
		LabelMinHeight:   20,
	}
}

// Events are the callbacks the pipeline exposes to surrounding UI. All are
// optional; the core never requires a response.
type Events struct {
	// OnHover fires when a frontend reports the pointer/selection entering
	// a node, with its share of the grand total
	OnHover func(name string, value int64, percent float64)

	// OnHoverEnd fires when the hover leaves the chart
	OnHoverEnd func()

	// OnZoom fires on every navigation transition, with the zoomed node or
	// nil for the overview
	OnZoom func(node *model.Node)
}
