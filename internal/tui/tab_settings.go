package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/theirongolddev/tracks/internal/cli"
	"github.com/theirongolddev/tracks/internal/config"
	"github.com/theirongolddev/tracks/internal/pipeline"
	"github.com/theirongolddev/tracks/internal/tui/components"
	"github.com/theirongolddev/tracks/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldTheme = iota
	settingsFieldRange
	settingsFieldDBPath
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool  // flash "saved" message until the next edit
	saveErr error // non-nil if last save failed
}

func loadConfigOrDefault() config.Config {
	cfg, err := config.Load()
	if err != nil {
		slog.Warn("config unreadable, using defaults", "error", err)
		return config.DefaultConfig()
	}
	return cfg
}

func (a App) updateSettings(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "j", "down":
		a.settings.cursor = clamp(a.settings.cursor+1, 0, settingsFieldCount-1)
	case "k", "up":
		a.settings.cursor = clamp(a.settings.cursor-1, 0, settingsFieldCount-1)
	case "enter", " ":
		return a.settingsActivate()
	}
	return a, nil
}

// settingsActivate cycles enumerated fields in place and opens the text
// input for free-form ones.
func (a App) settingsActivate() (tea.Model, tea.Cmd) {
	cfg := loadConfigOrDefault()
	a.settings.saved = false

	switch a.settings.cursor {
	case settingsFieldTheme:
		cfg.Appearance.Theme = theme.Next(theme.Active.Name)
		theme.SetActive(cfg.Appearance.Theme)
	case settingsFieldRange:
		a.graph.rng = cycleRange(a.graph.rng, 1)
		cfg.General.DefaultRange = string(a.graph.rng)
	case settingsFieldDBPath:
		ti := textinput.New()
		ti.Placeholder = pipeline.DBPath()
		ti.CharLimit = 256
		ti.Width = 50
		ti.SetValue(cfg.General.DBPath)
		ti.Focus()
		a.settings.input = ti
		a.settings.editing = true
		return a, textinput.Blink
	}

	a.settings.saveErr = config.Save(cfg)
	a.settings.saved = a.settings.saveErr == nil
	return a, nil
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		cfg := loadConfigOrDefault()
		cfg.General.DBPath = strings.TrimSpace(a.settings.input.Value())
		a.settings.saveErr = config.Save(cfg)
		a.settings.editing = false
		a.settings.saved = a.settings.saveErr == nil
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	cfg := loadConfigOrDefault()

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	dbPath := cfg.General.DBPath
	if dbPath == "" {
		dbPath = "(default)"
	}

	fields := []struct{ label, value string }{
		{"Theme", theme.Active.Name},
		{"Graph range", string(a.graph.rng)},
		{"Database", dbPath},
	}

	innerW := components.CardInnerWidth(cw)
	var form strings.Builder
	for i, f := range fields {
		if a.settings.editing && i == a.settings.cursor {
			form.WriteString(markerStyle.Render("▸ "))
			form.WriteString(selectedLabelStyle.Render(fmt.Sprintf("%-14s ", f.label)))
			form.WriteString(a.settings.input.View())
			form.WriteString("\n")
			continue
		}

		if i == a.settings.cursor {
			line := markerStyle.Render("▸ ") +
				selectedLabelStyle.Render(fmt.Sprintf("%-14s ", f.label+":")) +
				selectedStyle.Render(f.value)
			if pad := innerW - lipgloss.Width(line); pad > 0 {
				line += lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", pad))
			}
			form.WriteString(line)
		} else {
			form.WriteString(labelStyle.Render("  " + fmt.Sprintf("%-14s ", f.label+":")))
			form.WriteString(valueStyle.Render(f.value))
		}
		form.WriteString("\n")
	}

	switch {
	case a.settings.saveErr != nil:
		form.WriteString("\n" + lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface).
			Render(fmt.Sprintf("Save failed: %s", a.settings.saveErr)))
	case a.settings.saved:
		msg := "Saved!"
		if a.settings.cursor == settingsFieldDBPath {
			msg = "Saved. The new database is used from the next launch."
		}
		form.WriteString("\n" + lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface).Render(msg))
	}
	form.WriteString("\n" + labelStyle.Render("[j/k] navigate  [Enter] change  [Esc] cancel"))

	measurements := 0
	for _, h := range a.habits.Habits {
		measurements += len(h.Measurements)
	}
	var info strings.Builder
	info.WriteString(labelStyle.Render("Tracks:        ") + valueStyle.Render(cli.FormatNumber(int64(a.habits.Len()))) + "\n")
	info.WriteString(labelStyle.Render("Visible:       ") + valueStyle.Render(cli.FormatNumber(int64(len(a.habits.Visible())))) + "\n")
	info.WriteString(labelStyle.Render("Measurements:  ") + valueStyle.Render(cli.FormatNumber(int64(measurements))) + "\n")
	info.WriteString(labelStyle.Render("Config file:   ") + valueStyle.Render(config.Path()))

	return components.ContentCard("Settings", form.String(), cw) + "\n" +
		components.ContentCard("General", info.String(), cw)
}
