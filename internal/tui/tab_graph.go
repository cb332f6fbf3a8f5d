package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/tracks/internal/cli"
	"github.com/theirongolddev/tracks/internal/model"
	"github.com/theirongolddev/tracks/internal/pipeline"
	"github.com/theirongolddev/tracks/internal/tui/components"
	"github.com/theirongolddev/tracks/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

type graphState struct {
	cursor int
	rng    pipeline.Range
}

// measurementHabits returns every measurement habit, hidden ones included,
// in stored order.
func (a App) measurementHabits() []model.Habit {
	var out []model.Habit
	for _, h := range a.habits.Habits {
		if h.IsMeasurement() {
			out = append(out, h)
		}
	}
	return out
}

func (a App) updateGraph(key string) App {
	n := len(a.measurementHabits())
	switch key {
	case "j", "down":
		a.graph.cursor = clamp(a.graph.cursor+1, 0, n-1)
	case "k", "up":
		a.graph.cursor = clamp(a.graph.cursor-1, 0, n-1)
	case "r":
		a.graph.rng = cycleRange(a.graph.rng, 1)
	case "R":
		a.graph.rng = cycleRange(a.graph.rng, -1)
	}
	return a
}

func cycleRange(r pipeline.Range, delta int) pipeline.Range {
	idx := 0
	for i, known := range pipeline.Ranges {
		if known == r {
			idx = i
		}
	}
	n := len(pipeline.Ranges)
	return pipeline.Ranges[(idx+delta+n)%n]
}

func (a App) renderGraphTab(cw, ch int) string {
	t := theme.Active
	habits := a.measurementHabits()
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	if len(habits) == 0 {
		return components.ContentCard("Graph",
			muted.Render("No measurement tracks. Add one with `tracks add NAME --type measurement`."), cw)
	}

	cursor := clamp(a.graph.cursor, 0, len(habits)-1)
	h := habits[cursor]
	color := trackColor(h)

	// Range selector
	var ranges []string
	for _, r := range pipeline.Ranges {
		if r == a.graph.rng {
			ranges = append(ranges, lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).
				Bold(true).Padding(0, 1).Render(string(r)))
		} else {
			ranges = append(ranges, muted.Padding(0, 1).Render(string(r)))
		}
	}

	// Track selector
	var names []string
	for i, m := range habits {
		style := muted
		if i == cursor {
			style = lipgloss.NewStyle().Foreground(markColor(m.Color)).Background(t.Surface).Bold(true)
		}
		names = append(names, style.Render(m.Name))
	}
	sep := muted.Render(" · ")

	window := pipeline.Window(h.Measurements, a.graph.rng, a.clock())
	values := make([]float64, len(window))
	labels := make([]string, len(window))
	for i, m := range window {
		values[i] = m.Value
		labels[i] = m.Date[5:]
	}

	inner := components.CardInnerWidth(cw)
	var body string
	if len(window) == 0 {
		from, to := pipeline.RangeBounds(a.graph.rng, a.clock())
		body = muted.Render(fmt.Sprintf("No data for %s in %s to %s.", h.Name, from, to))
	} else {
		chartH := max(3, ch-12)
		body = components.LineChart(values, labels, color, inner, chartH)

		s := pipeline.Summarize(window)
		body += "\n\n" + muted.Render(fmt.Sprintf("%d entries  mean %s  min %s  max %s",
			s.Count, cli.FormatMean(s.Mean),
			cli.FormatMeasurement(s.Min, h.Unit), cli.FormatMeasurement(s.Max, h.Unit)))
	}

	title := h.Name
	if h.Unit != "" {
		title += " (" + h.Unit + ")"
	}

	header := strings.Join(names, sep) + "\n" + strings.Join(ranges, muted.Render(" "))
	return components.ContentCard("", header, cw) + "\n" + components.TrackCard(title, body, color, cw)
}
