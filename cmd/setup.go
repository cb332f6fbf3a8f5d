package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/tracks/internal/config"
	"github.com/theirongolddev/tracks/internal/pipeline"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	// Load existing config or defaults
	cfg, _ := config.Load()

	dbPathIn := cfg.General.DBPath
	rangeIn := cfg.General.DefaultRange
	themeIn := cfg.Appearance.Theme

	rangeOpts := make([]huh.Option[string], 0, len(pipeline.Ranges))
	for _, r := range pipeline.Ranges {
		rangeOpts = append(rangeOpts, huh.NewOption(string(r), string(r)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to tracks!").
				Description("Let's set up a few things."),
			huh.NewInput().
				Title("Database path").
				Description("Leave blank for "+pipeline.DBPath()).
				Value(&dbPathIn),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Default graph range").
				Options(rangeOpts...).
				Value(&rangeIn),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(huh.NewOptions(config.Themes...)...).
				Value(&themeIn),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("setup: %w", err)
	}

	cfg.General.DBPath = strings.TrimSpace(dbPathIn)
	cfg.General.DefaultRange = rangeIn
	cfg.Appearance.Theme = themeIn

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `tracks setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
