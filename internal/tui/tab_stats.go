package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/tracks/internal/cli"
	"github.com/theirongolddev/tracks/internal/model"
	"github.com/theirongolddev/tracks/internal/pipeline"
	"github.com/theirongolddev/tracks/internal/tui/components"
	"github.com/theirongolddev/tracks/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

type statsState struct {
	year  int
	month time.Month
}

func (a App) updateStats(key string) App {
	switch key {
	case "[", "h", "left":
		a.stats = a.stats.shift(-1)
	case "]", "l", "right":
		a.stats = a.stats.shift(1)
	case "home", ".":
		now := a.clock()
		a.stats = statsState{year: now.Year(), month: now.Month()}
	}
	return a
}

func (s statsState) shift(delta int) statsState {
	t := time.Date(s.year, s.month+time.Month(delta), 1, 0, 0, 0, 0, time.UTC)
	return statsState{year: t.Year(), month: t.Month()}
}

func (a App) renderStatsTab(cw int) string {
	t := theme.Active
	visible := a.habits.Visible()

	if len(visible) == 0 {
		return components.ContentCard("Stats",
			lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).
				Render("No active tracks. Enable some tracks to see stats!"), cw)
	}

	perRow := 3
	switch {
	case cw < 90:
		perRow = 1
	case cw < 130:
		perRow = 2
	}

	monthly := pipeline.MonthlyStats(visible, a.stats.year, a.stats.month)
	details := pipeline.HabitStats(visible, a.clock())

	heading := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Background).Bold(true).
		Render(" " + cli.FormatMonth(a.stats.year, a.stats.month))

	grid := components.CardGrid(func(i, w int) string {
		return statCard(monthly[i], details[i], w)
	}, len(monthly), perRow, cw)

	return heading + "\n" + grid
}

// statCard combines the monthly completion card with the habit's detail
// metrics. monthly and detail describe the same habit.
func statCard(m model.MonthlyStat, d model.HabitStat, width int) string {
	t := theme.Active
	inner := components.CardInnerWidth(width)
	color := markColor(m.Color)

	label := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	row := func(k, v string) string {
		return label.Render(fmt.Sprintf("%-16s", k)) + value.Render(v)
	}

	var lines []string
	lines = append(lines, components.RateBar(m.Rate, color, inner))
	lines = append(lines, label.Render(fmt.Sprintf("%d of %d expected days", m.CompletedDays, m.ExpectedDays)))
	lines = append(lines, "")

	if d.TrackType == model.TrackMeasurement {
		s := d.Summary
		last := "-"
		if d.Last != nil {
			last = cli.FormatMeasurement(d.Last.Value, d.Unit) + " (" + d.Last.Date + ")"
		}
		lines = append(lines,
			row("Entries", fmt.Sprint(s.Count)),
			row("Mean", cli.FormatMean(s.Mean)),
			row("Min / Max", cli.FormatValue(s.Min)+" / "+cli.FormatValue(s.Max)),
			row("Last", last),
		)
	} else {
		lines = append(lines,
			row("Schedule", d.FrequencyLabel),
			row("Total", cli.FormatDays(d.TotalDays)),
			row("Current streak", cli.FormatDays(d.CurrentStreak)),
			row("Longest streak", cli.FormatDays(d.LongestStreak)),
		)
	}

	return components.TrackCard(m.Name, strings.Join(lines, "\n"), color, width)
}
