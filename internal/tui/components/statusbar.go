package components

import (
	"github.com/theirongolddev/tracks/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar. A non-empty message is
// shown on the right, in red when isErr is set.
func RenderStatusBar(width int, hints, message string, isErr bool) string {
	t := theme.Active

	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	msgStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	if isErr {
		msgStyle = msgStyle.Foreground(t.Red)
	}

	left := base.Render(" " + hints)
	right := ""
	if message != "" {
		right = msgStyle.Render(message + " ")
	}

	padding := max(0, width-lipgloss.Width(left)-lipgloss.Width(right))
	return lipgloss.NewStyle().Background(t.Surface).Width(width).
		Render(left + base.Render(spaces(padding)) + right)
}

func spaces(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
