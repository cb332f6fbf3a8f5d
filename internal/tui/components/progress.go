package components

import (
	"fmt"

	"github.com/theirongolddev/tracks/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// GoalBar renders a progress bar in the track's color followed by a
// "progress/target" count.
func GoalBar(current, target int, color lipgloss.Color, width int) string {
	t := theme.Active

	pct := 0.0
	if target > 0 {
		pct = min(1, float64(current)/float64(target))
	}

	countStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	if current >= target {
		countStyle = countStyle.Foreground(t.Green).Bold(true)
	}
	label := countStyle.Render(fmt.Sprintf(" %d/%d", current, target))

	return solidBar(pct, color, max(4, width-lipgloss.Width(label))) + label
}

// RateBar renders a 0-100 percentage bar with the percentage after it.
func RateBar(rate float64, color lipgloss.Color, width int) string {
	t := theme.Active

	pct := max(0, min(1, rate/100))
	label := lipgloss.NewStyle().
		Foreground(t.TextPrimary).
		Background(t.Surface).
		Bold(true).
		Render(fmt.Sprintf(" %3.0f%%", rate))

	return solidBar(pct, color, max(4, width-lipgloss.Width(label))) + label
}

func solidBar(pct float64, color lipgloss.Color, width int) string {
	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(theme.Active.TextDim)
	return bar.ViewAs(pct)
}
