package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	ColorPrimary    = lipgloss.Color("#C084FC") // soft violet
	ColorSuccess    = lipgloss.Color("#39FF14") // neon green
	ColorDanger     = lipgloss.Color("#FF5555") // red
	ColorMuted      = lipgloss.Color("#4A5568") // darker muted
	ColorBorder     = lipgloss.Color("#4A5568") // border
	ColorBackground = lipgloss.Color("#1F1F23") // dark background
	ColorCyan       = lipgloss.Color("#00FFFF") // neon cyan
	ColorText       = lipgloss.Color("#E4E4E7") // default text

	// Change indicators between dataset loads
	ColorGrown  = lipgloss.Color("#34D399") // green - value grew
	ColorShrunk = lipgloss.Color("#5EEAD4") // teal - value shrank
)

// Styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Background(ColorBackground).
			Padding(0, 1)

	StatsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	TreemapPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorder).
				Padding(0, 1)

	// Help bar - dimmer with bright key highlights
	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3D4555")). // very dim
			Padding(0, 1)

	HelpKey = lipgloss.NewStyle().
			Foreground(ColorCyan).
			Background(lipgloss.Color("#1E3A4C")). // subtle dark cyan bg
			Padding(0, 1)

	// Inline key hint (for use in text)
	KeyHint = lipgloss.NewStyle().
		Foreground(ColorCyan).
		Background(lipgloss.Color("#1E3A4C")).
		Padding(0, 1)

	// Help overlay key style (no background for cleaner look)
	HelpOverlayKey = lipgloss.NewStyle().
			Foreground(ColorCyan).
			Padding(0, 1)

	NewBadge = lipgloss.NewStyle().
			Background(lipgloss.Color("#374151")). // dark gray
			Foreground(lipgloss.Color("#9CA3AF")). // light gray
			Padding(0, 1)
)

// FormatValue formats a metric value to a compact human readable string
func FormatValue(v int64) string {
	const (
		K = 1000
		M = K * 1000
		B = M * 1000
		T = B * 1000
	)

	negative := v < 0
	if negative {
		v = -v
	}

	var result string
	switch {
	case v >= T:
		result = fmt.Sprintf("%.1fT", float64(v)/T)
	case v >= B:
		result = fmt.Sprintf("%.1fB", float64(v)/B)
	case v >= M:
		result = fmt.Sprintf("%.1fM", float64(v)/M)
	case v >= K:
		result = fmt.Sprintf("%.1fK", float64(v)/K)
	default:
		result = fmt.Sprintf("%d", v)
	}

	if negative {
		return "-" + result
	}
	return result
}

// FormatTime formats a time for display, using shorter format for current year
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	if t.Year() == time.Now().Year() {
		return t.Format("Jan 2 15:04")
	}
	return t.Format("Jan 2, 2006 15:04")
}
