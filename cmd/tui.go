package cmd

import (
	"fmt"

	"github.com/theirongolddev/tracks/internal/config"
	"github.com/theirongolddev/tracks/internal/pipeline"
	"github.com/theirongolddev/tracks/internal/tui"
	"github.com/theirongolddev/tracks/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor so background styling always produces ANSI codes.
	lipgloss.SetColorProfile(termenv.TrueColor)

	rng, err := pipeline.ParseRange(cfg.General.DefaultRange)
	if err != nil {
		rng = pipeline.RangeWeek
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	c, err := pipeline.LoadCollection(s)
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.NewApp(s, c, now, rng), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
