package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Header displays dataset info and the navigation trail (2 lines)
type Header struct {
	width      int
	version    string
	dataset    string
	loading    bool
	total      int64
	categories int
	trail      []string
	crumbs     bool
	lastLoaded time.Time
}

// NewHeader creates a new header component
func NewHeader(version, dataset string, crumbs bool) Header {
	return Header{
		version: version,
		dataset: dataset,
		crumbs:  crumbs,
	}
}

// SetLoading sets the loading state
func (h *Header) SetLoading(loading bool) {
	h.loading = loading
}

// SetTotals sets the grand total and category count
func (h *Header) SetTotals(total int64, categories int) {
	h.total = total
	h.categories = categories
	h.lastLoaded = time.Now()
}

// SetTrail sets the navigation trail, root first
func (h *Header) SetTrail(trail []string) {
	h.trail = trail
}

// SetWidth sets the header width
func (h *Header) SetWidth(w int) {
	h.width = w
}

// View renders the header (2 lines)
// Line 1: corpusmap 0.1.0                    Total: X across N categories
// Line 2: All collections / Benin            Loaded: Jan 2 15:04
func (h Header) View() string {
	nameStyle := lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	dimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#9CA3AF"))
	labelStyle := dimStyle
	trailStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Bold(true)

	// === LINE 1: App name (left) | totals (right) ===
	appName := nameStyle.Render("corpusmap") + dimStyle.Render(" "+h.version)

	var totals string
	if h.loading {
		totals = dimStyle.Render("loading…")
	} else if h.total > 0 {
		totals = labelStyle.Render("Total: ") +
			StatsStyle.Render(FormatValue(h.total)) +
			dimStyle.Render(fmt.Sprintf(" across %d categories", h.categories))
	}

	gap1 := h.width - lipgloss.Width(appName) - lipgloss.Width(totals)
	if gap1 < 2 {
		gap1 = 2
	}
	line1 := appName + strings.Repeat(" ", gap1) + totals

	// === LINE 2: trail or dataset (left) | last loaded (right) ===
	var left string
	switch {
	case h.crumbs && len(h.trail) > 0:
		sep := dimStyle.Render(" / ")
		parts := make([]string, 0, len(h.trail))
		for i, c := range h.trail {
			if i == len(h.trail)-1 {
				parts = append(parts, trailStyle.Render(c))
			} else {
				parts = append(parts, dimStyle.Render(c))
			}
		}
		left = strings.Join(parts, sep)
	case len(h.trail) > 1:
		// Back-hint mode: show where we are plus how to leave
		left = trailStyle.Render(h.trail[len(h.trail)-1]) +
			dimStyle.Render("  ") + KeyHint.Render("esc") + dimStyle.Render(" back")
	default:
		left = labelStyle.Render("Data: ") + trailStyle.Render(h.dataset)
	}

	var right string
	if !h.lastLoaded.IsZero() {
		right = labelStyle.Render("Loaded: ") + dimStyle.Render(FormatTime(h.lastLoaded))
	}

	gap2 := h.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap2 < 2 {
		gap2 = 2
	}
	line2 := left + strings.Repeat(" ", gap2) + right

	return lipgloss.JoinVertical(lipgloss.Left, line1, line2)
}
