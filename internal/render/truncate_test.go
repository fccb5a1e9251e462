package render

import (
	"strings"
	"testing"
)

func TestEstimateTextWidth(t *testing.T) {
	// 10 runes at 11px and 0.6 ratio
	if w := EstimateTextWidth("Literature", 11); w != 66 {
		t.Errorf("expected 66, got %.1f", w)
	}
	// Multibyte runes count once, not per byte
	if EstimateTextWidth("日本語", 11) != EstimateTextWidth("abc", 11) {
		t.Error("expected rune-based width estimate")
	}
}

func TestTruncateFitsUnchanged(t *testing.T) {
	if got := TruncateToWidth("News", 100, 11); got != "News" {
		t.Errorf("expected unchanged label, got %q", got)
	}
}

func TestTruncateAppendsEllipsis(t *testing.T) {
	got := TruncateToWidth("International Correspondence", 60, 11)

	if !strings.HasSuffix(got, ellipsis) {
		t.Fatalf("expected ellipsis suffix, got %q", got)
	}
	if EstimateTextWidth(got, 11) > 60 {
		t.Errorf("truncated label %q still exceeds the width budget", got)
	}
	if got == ellipsis {
		t.Error("truncation removed the whole label")
	}
}

func TestTruncateFloor(t *testing.T) {
	// Absurdly narrow budget still leaves three runes plus the ellipsis
	got := TruncateToWidth("Encyclopedia", 1, 11)

	runes := []rune(got)
	if len(runes) != 4 || string(runes[3]) != ellipsis {
		t.Errorf("expected 3 runes plus ellipsis, got %q", got)
	}
}
