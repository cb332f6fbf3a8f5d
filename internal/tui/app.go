// Package tui provides the interactive Bubble Tea dashboard for tracks.
package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/theirongolddev/tracks/internal/cli"
	"github.com/theirongolddev/tracks/internal/dates"
	"github.com/theirongolddev/tracks/internal/model"
	"github.com/theirongolddev/tracks/internal/pipeline"
	"github.com/theirongolddev/tracks/internal/tui/components"
	"github.com/theirongolddev/tracks/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	tabToday = iota
	tabCalendar
	tabStats
	tabGraph
	tabSettings
)

const (
	minTerminalWidth = 60
	maxContentWidth  = 140
	minContentHeight = 5
)

// valueInput is the inline prompt used to record a measurement.
type valueInput struct {
	active  bool
	habitID string
	date    string
	field   textinput.Model
}

// App is the root Bubble Tea model. Every mutation goes through one
// read-modify-write: change the collection, persist it, re-render.
type App struct {
	kv     pipeline.KV
	habits *model.Collection
	clock  func() time.Time

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	status    string
	statusErr bool

	input valueInput

	// Per-tab state
	today    todayState
	cal      calendarState
	stats    statsState
	graph    graphState
	settings settingsState
}

// NewApp creates a new TUI app model over an already loaded collection.
func NewApp(kv pipeline.KV, habits *model.Collection, clock func() time.Time, graphRange pipeline.Range) App {
	now := clock()
	return App{
		kv:     kv,
		habits: habits,
		clock:  clock,
		cal:    newCalendarState(now),
		stats:  statsState{year: now.Year(), month: now.Month()},
		graph:  graphState{rng: graphRange},
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

func (a App) todayKey() string {
	return dates.Key(a.clock())
}

// persist saves the collection and reports the outcome in the status bar.
func (a *App) persist(done string) {
	if err := pipeline.SaveCollection(a.kv, a.habits); err != nil {
		slog.Error("saving habits", "error", err)
		a.setError(fmt.Errorf("save failed: %w", err))
		return
	}
	a.setStatus(done)
}

func (a *App) setStatus(s string) {
	a.status, a.statusErr = s, false
}

func (a *App) setError(err error) {
	a.status, a.statusErr = err.Error(), true
}

// startInput opens the value prompt for a measurement habit on date.
func (a *App) startInput(h *model.Habit, date string) tea.Cmd {
	ti := textinput.New()
	ti.Placeholder = "value, blank to clear"
	ti.Width = 24
	if v, ok := pipeline.ValueOnDate(*h, date); ok {
		ti.SetValue(cli.FormatValue(v))
	}
	ti.Focus()

	a.input = valueInput{active: true, habitID: h.ID, date: date, field: ti}
	return textinput.Blink
}

func (a App) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.input.active = false
		return a, nil
	case "enter":
		a.input.active = false
		h, ok := a.habits.Find(a.input.habitID)
		if !ok {
			return a, nil
		}
		raw := a.input.field.Value()
		if err := h.SetMeasurementInput(a.input.date, raw); err != nil {
			if errors.Is(err, model.ErrInvalidValue) {
				err = fmt.Errorf("%q is not a number", strings.TrimSpace(raw))
			}
			a.setError(err)
			return a, nil
		}
		a.persist(fmt.Sprintf("%s updated for %s", h.Name, a.input.date))
		return a, nil
	}

	var cmd tea.Cmd
	a.input.field, cmd = a.input.field.Update(msg)
	return a, cmd
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || a.input.active {
			return a, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			return a.scroll(-1), nil
		case tea.MouseButtonWheelDown:
			return a.scroll(1), nil
		case tea.MouseButtonLeft:
			if msg.Action == tea.MouseActionPress && msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.activeTab = tab
				}
			}
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		// Text entry intercepts all keys
		if a.input.active {
			return a.updateInput(msg)
		}
		if a.activeTab == tabSettings && a.settings.editing {
			return a.updateSettingsInput(msg)
		}
		if a.today.confirmDelete {
			return a.updateDeleteConfirm(key)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		switch key {
		case "q":
			return a, tea.Quit
		case "tab":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
			return a, nil
		case "shift+tab":
			a.activeTab = (a.activeTab + len(components.Tabs) - 1) % len(components.Tabs)
			return a, nil
		}
		if len(key) == 1 {
			if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
				a.activeTab = idx
				return a, nil
			}
		}

		a.status = ""
		switch a.activeTab {
		case tabToday:
			return a.updateToday(key)
		case tabCalendar:
			return a.updateCalendar(key)
		case tabStats:
			return a.updateStats(key), nil
		case tabGraph:
			return a.updateGraph(key), nil
		case tabSettings:
			return a.updateSettings(key)
		}
	}

	return a, nil
}

// scroll moves the active list cursor by delta.
func (a App) scroll(delta int) App {
	switch a.activeTab {
	case tabToday:
		a.today.cursor = clamp(a.today.cursor+delta, 0, a.habits.Len()-1)
	case tabGraph:
		a.graph.cursor = clamp(a.graph.cursor+delta, 0, len(a.measurementHabits())-1)
	}
	return a
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return max(lo, min(v, hi))
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return fmt.Sprintf("\n  Terminal too narrow (%d cols)\n\n  tracks needs at least %d columns.\n",
			a.width, minTerminalWidth)
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	sections := []struct {
		title    string
		bindings [][2]string
	}{
		{"Navigation", [][2]string{
			{"t c s g x", "Jump to tab"},
			{"Tab S-Tab", "Next / Previous tab"},
			{"j k", "Move selection"},
		}},
		{"Today", [][2]string{
			{"Space", "Toggle done today / enter value"},
			{"v", "Show / hide track"},
			{"J K", "Move track down / up"},
			{"d", "Delete track"},
		}},
		{"Calendar", [][2]string{
			{"h l ← →", "Previous / next day"},
			{"↑ ↓", "Previous / next week"},
			{"[ ]", "Previous / next month"},
			{"1-9", "Toggle or edit the nth track that day"},
		}},
		{"Stats & Graph", [][2]string{
			{"[ ]", "Previous / next month (stats)"},
			{"r R", "Cycle graph range"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, s := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(s.title))
		b.WriteString("\n")
		for _, bind := range s.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind[0])),
				descStyle.Render(bind[1]))
		}
	}
	b.WriteString("\n")
	b.WriteString(descStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()

	header := components.RenderTabBar(a.activeTab, w)

	hints := "[?]help  [q]uit"
	if a.input.active {
		hints = "[Enter]save  [Esc]cancel"
	}
	statusBar := components.RenderStatusBar(w, hints, a.status, a.statusErr)

	contentH := max(minContentHeight, a.height-lipgloss.Height(header)-lipgloss.Height(statusBar))

	var content string
	switch a.activeTab {
	case tabToday:
		content = a.renderTodayTab(cw)
	case tabCalendar:
		content = a.renderCalendarTab(cw)
	case tabStats:
		content = a.renderStatsTab(cw)
	case tabGraph:
		content = a.renderGraphTab(cw, contentH)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}
	if a.input.active {
		content += "\n" + a.renderInput(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, a.height, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) renderInput(cw int) string {
	name := a.input.habitID
	if h, ok := a.habits.Find(a.input.habitID); ok {
		name = h.Name
		if h.Unit != "" {
			name += " (" + h.Unit + ")"
		}
	}
	title := fmt.Sprintf("%s on %s", name, cli.FormatDate(a.input.date))
	return components.ContentCard(title, a.input.field.View(), cw)
}

// ─── Helpers ────────────────────────────────────────────────────

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW + 1 // separator
	}
	return -1
}

func trackColor(h model.Habit) lipgloss.Color {
	return markColor(h.Color)
}
