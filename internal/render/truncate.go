package render

// Approximate mean glyph width as a fraction of the font size. Good enough
// for sans-serif label fitting without a font metrics dependency; the full
// name always travels in the tooltip, so a pessimistic estimate only costs
// an earlier ellipsis.
const glyphWidthRatio = 0.6

const ellipsis = "…"

// EstimateTextWidth returns the approximate rendered width of s in pixels
func EstimateTextWidth(s string, fontSize float64) float64 {
	n := 0
	for range s {
		n++
	}
	return float64(n) * fontSize * glyphWidthRatio
}

// TruncateToWidth fits a label into maxWidth pixels. A name that fits is
// returned unmodified; otherwise trailing runes are stripped and an
// ellipsis appended until it fits or three runes remain, whichever first.
func TruncateToWidth(name string, maxWidth, fontSize float64) string {
	if EstimateTextWidth(name, fontSize) <= maxWidth {
		return name
	}
	runes := []rune(name)
	for len(runes) > 3 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + ellipsis
		if EstimateTextWidth(candidate, fontSize) <= maxWidth {
			return candidate
		}
	}
	return string(runes) + ellipsis
}
