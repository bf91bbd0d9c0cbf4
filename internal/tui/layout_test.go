package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestFitLinesPadsAndClips(t *testing.T) {
	out := fitLines("a\nbb\nccc", 4, 2)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0] != "a   " || lines[1] != "bb  " {
		t.Fatalf("unexpected lines: %q", lines)
	}

	out = fitLines("x", 2, 3)
	if strings.Count(out, "\n") != 2 {
		t.Fatalf("expected padding to 3 lines, got %q", out)
	}
}

func TestTruncateLineWideRunes(t *testing.T) {
	if got := truncateLine("short", 10); got != "short" {
		t.Fatalf("expected untouched text, got %q", got)
	}
	if got := truncateLine("Arquitectura romana", 10); got != "Arquite..." {
		t.Fatalf("unexpected truncation: %q", got)
	}
	got := truncateLine("日本語のテキスト", 9)
	if lipgloss.Width(got) > 9 || !strings.HasSuffix(got, "...") {
		t.Fatalf("expected width <= 9 with ellipsis, got %q", got)
	}
	if got := truncateLine("abcdef", 2); got != "ab" {
		t.Fatalf("expected hard cut for tiny widths, got %q", got)
	}
}

func TestProgressBarWidth(t *testing.T) {
	for _, pct := range []float64{-5, 0, 33, 100, 150} {
		if got := lipgloss.Width(progressBar(pct, 12)); got != 12 {
			t.Fatalf("percent %v: expected width 12, got %d", pct, got)
		}
	}
	full := progressBar(100, 4)
	if strings.Contains(full, "░") {
		t.Fatalf("expected a full bar, got %q", full)
	}
}

func TestFormatClock(t *testing.T) {
	cases := map[int]string{0: "00:00", 59: "00:59", 1500: "25:00", -3: "00:00"}
	for in, want := range cases {
		if got := formatClock(in); got != want {
			t.Fatalf("formatClock(%d): expected %q, got %q", in, want, got)
		}
	}
}

func TestModalWidthBounds(t *testing.T) {
	if got := modalWidth(20); got != 40 {
		t.Fatalf("expected minimum width 40, got %d", got)
	}
	if got := modalWidth(200); got != 72 {
		t.Fatalf("expected maximum width 72, got %d", got)
	}
	if got := modalInnerWidth(200); got != 66 {
		t.Fatalf("expected inner width 66, got %d", got)
	}
}
