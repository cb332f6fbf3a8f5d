package components

import (
	"strings"
	"testing"

	"github.com/theirongolddev/tracks/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRowSumsToTotal(t *testing.T) {
	for _, tc := range []struct{ total, n int }{{80, 3}, {100, 7}, {10, 1}} {
		sum := 0
		for _, w := range LayoutRow(tc.total, tc.n) {
			sum += w
		}
		if sum != tc.total {
			t.Errorf("LayoutRow(%d, %d) sums to %d", tc.total, tc.n, sum)
		}
	}
	if LayoutRow(10, 0) != nil {
		t.Error("LayoutRow with n=0 should be nil")
	}
}

func TestCardRowMatchesTallestCard(t *testing.T) {
	theme.SetActive("dark")

	short := ContentCard("Short", "Content", 22)
	tall := TrackCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4", lipgloss.Color("#D14D41"), 22)

	tallLines := len(strings.Split(tall, "\n"))
	joined := CardRow([]string{tall, short})
	if got := len(strings.Split(joined, "\n")); got != tallLines {
		t.Fatalf("joined height = %d, want %d", got, tallLines)
	}
	if w := lipgloss.Width(joined); w != 44 {
		t.Fatalf("joined width = %d, want 44", w)
	}
}

func TestCardGridRows(t *testing.T) {
	theme.SetActive("dark")

	grid := CardGrid(func(i, w int) string {
		return ContentCard("", strings.Repeat("x", i+1), w)
	}, 5, 2, 60)

	// Three rows of 3-line cards.
	if got := len(strings.Split(grid, "\n")); got != 9 {
		t.Fatalf("grid lines = %d, want 9", got)
	}
	if CardGrid(nil, 0, 2, 60) != "" {
		t.Fatal("empty grid should render nothing")
	}
}

func TestTabBarHitWidths(t *testing.T) {
	theme.SetActive("dark")
	total := 0
	for i, tab := range Tabs {
		total += TabVisualWidth(tab, i == 0)
	}
	total += len(Tabs) - 1
	bar := RenderTabBar(0, 200)
	if !strings.Contains(bar, "Today") || lipgloss.Width(bar) != 200 {
		t.Fatalf("tab bar width = %d", lipgloss.Width(bar))
	}
	if total >= 200 {
		t.Fatalf("tabs overflow: %d", total)
	}
	if TabIdxByKey('g') != 3 || TabIdxByKey('z') != -1 {
		t.Fatal("TabIdxByKey mismatch")
	}
}
