package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/tracks/internal/cli"
	"github.com/theirongolddev/tracks/internal/model"
	"github.com/theirongolddev/tracks/internal/pipeline"
	"github.com/theirongolddev/tracks/internal/tui/components"
	"github.com/theirongolddev/tracks/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// todayState tracks the Today tab: a cursor over every habit in stored
// order, hidden ones included.
type todayState struct {
	cursor        int
	confirmDelete bool
}

func (a App) selectedHabit() (*model.Habit, bool) {
	if a.today.cursor < 0 || a.today.cursor >= a.habits.Len() {
		return nil, false
	}
	return &a.habits.Habits[a.today.cursor], true
}

func (a App) updateToday(key string) (tea.Model, tea.Cmd) {
	last := a.habits.Len() - 1

	switch key {
	case "j", "down":
		a.today.cursor = clamp(a.today.cursor+1, 0, last)
		return a, nil
	case "k", "up":
		a.today.cursor = clamp(a.today.cursor-1, 0, last)
		return a, nil
	case "home":
		a.today.cursor = 0
		return a, nil
	case "G", "end":
		a.today.cursor = max(0, last)
		return a, nil
	}

	h, ok := a.selectedHabit()
	if !ok {
		return a, nil
	}

	switch key {
	case " ", "enter":
		if h.IsMeasurement() {
			cmd := a.startInput(h, a.todayKey())
			return a, cmd
		}
		h.ToggleDate(a.todayKey())
		verb := "undone"
		if h.History.Has(a.todayKey()) {
			verb = "done"
		}
		a.persist(fmt.Sprintf("%s marked %s", h.Name, verb))

	case "v":
		a.habits.ToggleVisibility(h.ID)
		state := "shown"
		if !h.ShowInCalendar {
			state = "hidden"
		}
		a.persist(fmt.Sprintf("%s %s", h.Name, state))

	case "K", "shift+up":
		if a.today.cursor > 0 {
			name := h.Name
			a.habits.Move(h.ID, a.today.cursor-1)
			a.today.cursor--
			a.persist(name + " moved up")
		}

	case "J", "shift+down":
		if a.today.cursor < last {
			name := h.Name
			a.habits.Move(h.ID, a.today.cursor+1)
			a.today.cursor++
			a.persist(name + " moved down")
		}

	case "d", "delete":
		a.today.confirmDelete = true
		a.setStatus(fmt.Sprintf("Delete %s? [y/N]", h.Name))
	}
	return a, nil
}

func (a App) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	a.today.confirmDelete = false
	h, ok := a.selectedHabit()
	if !ok || (key != "y" && key != "Y") {
		a.setStatus("Delete cancelled")
		return a, nil
	}

	name := h.Name
	a.habits.Delete(h.ID)
	a.today.cursor = clamp(a.today.cursor, 0, a.habits.Len()-1)
	a.persist("Deleted " + name)
	return a, nil
}

func (a App) renderTodayTab(cw int) string {
	t := theme.Active

	if a.habits.Len() == 0 {
		return components.ContentCard("Today",
			lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).
				Render("No tracks yet. Add one with `tracks add NAME`."), cw)
	}

	now := a.clock()
	today := a.todayKey()
	inner := components.CardInnerWidth(cw)

	nameW := 4
	for _, h := range a.habits.Habits {
		nameW = max(nameW, lipgloss.Width(h.Name))
	}
	nameW = min(nameW, inner/3)
	barW := max(10, min(40, inner-nameW-34))

	base := lipgloss.NewStyle().Background(t.Surface)
	muted := base.Foreground(t.TextMuted)
	dim := base.Foreground(t.TextDim)

	var rows []string
	for i, h := range a.habits.Habits {
		selected := i == a.today.cursor
		rowStyle := base
		if selected {
			rowStyle = rowStyle.Background(t.SurfaceBright)
		}

		marker := "  "
		if selected {
			marker = rowStyle.Foreground(t.Accent).Bold(true).Render("▸ ")
		} else {
			marker = rowStyle.Render(marker)
		}

		swatch := rowStyle.Foreground(trackColor(h)).Render("● ")
		nameStyle := rowStyle.Foreground(t.TextPrimary)
		if !h.ShowInCalendar {
			nameStyle = rowStyle.Foreground(t.TextDim)
		}
		name := nameStyle.Render(fmt.Sprintf("%-*s", nameW, truncate(h.Name, nameW)))

		var detail string
		if h.IsMeasurement() {
			detail = a.measurementDetail(h, today, rowStyle)
		} else {
			p := pipeline.PeriodicProgress(h, now)
			check := rowStyle.Foreground(t.TextDim).Render(" ○")
			if h.History.Has(today) {
				check = rowStyle.Foreground(t.Green).Bold(true).Render(" ✓")
			}
			detail = components.GoalBar(p.Progress, p.Target, trackColor(h), barW) +
				rowStyle.Foreground(t.TextMuted).Render(" "+p.Label) + check
		}
		if !h.ShowInCalendar {
			detail += dim.Render("  hidden")
		}

		rows = append(rows, marker+swatch+name+rowStyle.Render("  ")+detail)
	}

	visible := a.habits.Visible()
	done := 0
	periodic := 0
	for _, item := range pipeline.Todo(visible, now) {
		periodic++
		if item.Remaining == 0 {
			done++
		}
	}
	title := fmt.Sprintf("Today  %s", cli.FormatDate(today))
	footer := muted.Render(fmt.Sprintf("%d of %d periodic goals met", done, periodic))
	if periodic == 0 {
		footer = muted.Render("No active periodic tracks. Add some tracks to see goals!")
	}

	return components.ContentCard(title, strings.Join(rows, "\n")+"\n\n"+footer, cw)
}

func (a App) measurementDetail(h model.Habit, today string, style lipgloss.Style) string {
	t := theme.Active

	value := style.Foreground(t.TextDim).Render("no entry today")
	if v, ok := pipeline.ValueOnDate(h, today); ok {
		value = style.Foreground(t.TextPrimary).Bold(true).Render(cli.FormatMeasurement(v, h.Unit))
	}
	if last, ok := pipeline.LastMeasurement(h); ok && last.Date != today {
		value += style.Foreground(t.TextMuted).Render(
			fmt.Sprintf("  last %s on %s", cli.FormatMeasurement(last.Value, h.Unit), last.Date))
	}
	return value
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
