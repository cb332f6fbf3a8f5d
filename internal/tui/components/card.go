// Package components provides reusable TUI widgets for the tracks dashboard.
package components

import (
	"github.com/theirongolddev/tracks/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// LayoutRow distributes totalWidth into n widths that sum to exactly totalWidth.
// First items absorb the remainder from integer division.
func LayoutRow(totalWidth, n int) []int {
	if n <= 0 {
		return nil
	}
	base := totalWidth / n
	remainder := totalWidth % n
	widths := make([]int, n)
	for i := range widths {
		widths[i] = base
		if i < remainder {
			widths[i]++
		}
	}
	return widths
}

func cardStyle(border lipgloss.Border, outerWidth int) lipgloss.Style {
	t := theme.Active
	return lipgloss.NewStyle().
		Border(border).
		BorderForeground(t.Border).
		BorderBackground(t.Background).
		Background(t.Surface).
		Width(max(10, outerWidth-2)).
		Padding(0, 1)
}

// ContentCard renders a bordered content card with an optional title.
// outerWidth controls the total rendered width including border.
func ContentCard(title, body string, outerWidth int) string {
	t := theme.Active

	titleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Bold(true)

	content := ""
	if title != "" {
		content = titleStyle.Render(title) + "\n"
	}
	content += body

	return cardStyle(lipgloss.RoundedBorder(), outerWidth).Render(content)
}

// TrackCard renders a card whose left edge is drawn in the track's color.
func TrackCard(name, body string, color lipgloss.Color, outerWidth int) string {
	t := theme.Active

	nameStyle := lipgloss.NewStyle().
		Foreground(t.TextPrimary).
		Background(t.Surface).
		Bold(true)

	return cardStyle(lipgloss.RoundedBorder(), outerWidth).
		BorderLeftForeground(color).
		Render(nameStyle.Render(name) + "\n" + body)
}

// CardRow joins pre-rendered card strings horizontally.
func CardRow(cards []string) string {
	if len(cards) == 0 {
		return ""
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

// CardGrid lays cards out in rows of perRow, each card getting an equal
// share of totalWidth.
func CardGrid(render func(i, width int) string, n, perRow, totalWidth int) string {
	if n == 0 || perRow <= 0 {
		return ""
	}
	widths := LayoutRow(totalWidth, perRow)

	var rows []string
	for start := 0; start < n; start += perRow {
		var cards []string
		for i := start; i < min(n, start+perRow); i++ {
			cards = append(cards, render(i, widths[i-start]))
		}
		rows = append(rows, CardRow(cards))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// CardInnerWidth returns the usable text width inside a ContentCard
// given its outer width (subtracts border + padding).
func CardInnerWidth(outerWidth int) int {
	return max(10, outerWidth-4)
}
