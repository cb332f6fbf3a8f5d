package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/tracks/internal/cli"
	"github.com/theirongolddev/tracks/internal/dates"
	"github.com/theirongolddev/tracks/internal/model"
	"github.com/theirongolddev/tracks/internal/pipeline"
	"github.com/theirongolddev/tracks/internal/tui/components"
	"github.com/theirongolddev/tracks/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// calendarState holds the selected day; the displayed month is always the
// one containing it.
type calendarState struct {
	selected time.Time
}

func newCalendarState(now time.Time) calendarState {
	return calendarState{selected: dates.StartOfDay(now)}
}

func (a App) updateCalendar(key string) (tea.Model, tea.Cmd) {
	sel := a.cal.selected

	switch key {
	case "h", "left":
		a.cal.selected = sel.AddDate(0, 0, -1)
	case "l", "right":
		a.cal.selected = sel.AddDate(0, 0, 1)
	case "k", "up":
		a.cal.selected = sel.AddDate(0, 0, -7)
	case "j", "down":
		a.cal.selected = sel.AddDate(0, 0, 7)
	case "[":
		a.cal.selected = shiftMonth(sel, -1)
	case "]":
		a.cal.selected = shiftMonth(sel, 1)
	case "home", ".":
		a.cal.selected = dates.StartOfDay(a.clock())
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			return a.editDayEntry(int(key[0] - '1'))
		}
	}
	return a, nil
}

// shiftMonth moves t by delta months, clamping the day to the target
// month's length.
func shiftMonth(t time.Time, delta int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(delta), 1, 0, 0, 0, 0, t.Location())
	day := min(t.Day(), dates.DaysInMonth(first.Year(), first.Month()))
	return first.AddDate(0, 0, day-1)
}

// editDayEntry toggles or edits the nth habit listed for the selected day.
func (a App) editDayEntry(n int) (tea.Model, tea.Cmd) {
	date := dates.Key(a.cal.selected)
	entries := pipeline.DayDetail(a.habits.Habits, date)
	if n >= len(entries) {
		return a, nil
	}

	h, ok := a.habits.Find(entries[n].HabitID)
	if !ok {
		return a, nil
	}
	if h.IsMeasurement() {
		cmd := a.startInput(h, date)
		return a, cmd
	}

	a.habits.ToggleDate(h.ID, date)
	verb := "cleared"
	if h.History.Has(date) {
		verb = "done"
	}
	a.persist(fmt.Sprintf("%s %s on %s", h.Name, verb, date))
	return a, nil
}

func (a App) renderCalendarTab(cw int) string {
	sel := a.cal.selected
	selKey := dates.Key(sel)
	today := a.todayKey()

	days := pipeline.CalendarMonth(a.habits.Habits, sel.Year(), sel.Month(), sel.Location())

	gridW := cw
	detailW := 0
	if cw >= 100 {
		detailW = max(36, cw/3)
		gridW = cw - detailW
	}

	grid := components.ContentCard(cli.FormatMonth(sel.Year(), sel.Month()),
		renderMonthGrid(days, selKey, today, components.CardInnerWidth(gridW)), gridW)

	entries := pipeline.DayDetail(a.habits.Habits, selKey)
	detail := renderDayDetail(entries, selKey, a.habits)

	if detailW == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, grid, components.ContentCard(cli.FormatDate(selKey), detail, cw))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, grid,
		components.ContentCard(cli.FormatDate(selKey), detail, detailW))
}

func renderMonthGrid(days []model.CalendarDay, selKey, today string, width int) string {
	t := theme.Active
	if len(days) == 0 {
		return ""
	}

	cellW := max(5, min(14, width/7))
	base := lipgloss.NewStyle().Background(t.Surface)
	cell := base.Width(cellW)
	head := base.Foreground(t.TextMuted).Bold(true)

	var b strings.Builder
	for col := 0; col < 7; col++ {
		b.WriteString(cell.Render(head.Render(cli.FormatDayOfWeek(col))))
	}
	b.WriteString("\n")

	lead := (int(days[0].Date.Weekday()) + 6) % 7
	for i := 0; i < lead; i++ {
		b.WriteString(cell.Render(""))
	}

	maxDots := max(1, cellW-4)
	col := lead
	for _, d := range days {
		style := base
		if d.Key == selKey {
			style = style.Background(t.SurfaceBright)
		}
		numStyle := style.Foreground(t.TextPrimary)
		if d.Key == today {
			numStyle = style.Foreground(t.Accent).Bold(true)
		}

		var dots strings.Builder
		for i, m := range d.Habits {
			if i == maxDots {
				dots.WriteString(style.Foreground(t.TextMuted).Render("+"))
				break
			}
			dots.WriteString(style.Foreground(markColor(m.Color)).Render("●"))
		}

		content := numStyle.Render(fmt.Sprintf("%2d", d.Date.Day())) + style.Render(" ") + dots.String()
		b.WriteString(style.Width(cellW).Render(content))

		col++
		if col == 7 {
			b.WriteString("\n")
			col = 0
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderDayDetail(entries []model.DayEntry, date string, c *model.Collection) string {
	t := theme.Active
	base := lipgloss.NewStyle().Background(t.Surface)

	if len(entries) == 0 {
		return base.Foreground(t.TextMuted).Render("No tracks yet.")
	}

	var lines []string
	for i, e := range entries {
		key := base.Foreground(t.TextDim).Render("  ")
		if i < 9 {
			key = base.Foreground(t.Accent).Bold(true).Render(fmt.Sprintf("%d ", i+1))
		}
		swatch := base.Foreground(markColor(e.Color)).Render("● ")

		nameStyle := base.Foreground(t.TextPrimary)
		if h, ok := c.Find(e.HabitID); ok && !h.ShowInCalendar {
			nameStyle = base.Foreground(t.TextDim)
		}

		var state string
		switch {
		case e.TrackType == model.TrackMeasurement && e.Value != nil:
			state = base.Foreground(t.TextPrimary).Bold(true).Render(cli.FormatMeasurement(*e.Value, e.Unit))
		case e.TrackType == model.TrackMeasurement:
			state = base.Foreground(t.TextDim).Render("-")
		case e.Done:
			state = base.Foreground(t.Green).Bold(true).Render("✓ done")
		default:
			state = base.Foreground(t.TextDim).Render("○")
		}

		lines = append(lines, key+swatch+nameStyle.Render(e.Name)+base.Render("  ")+state)
	}
	lines = append(lines, "", base.Foreground(t.TextMuted).Render("1-9 toggle or edit · "+date))
	return strings.Join(lines, "\n")
}

func markColor(c string) lipgloss.Color {
	if strings.HasPrefix(c, "#") {
		return lipgloss.Color(c)
	}
	return theme.Active.TextMuted
}
