package cmd

import (
	"fmt"

	"github.com/theirongolddev/tracks/internal/cli"
	"github.com/theirongolddev/tracks/internal/config"
	"github.com/theirongolddev/tracks/internal/pipeline"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration and storage",
	RunE:  runConfig,
}

var flagDropBackup bool

func init() {
	configCmd.Flags().BoolVar(&flagDropBackup, "drop-backup", false, "Delete the copy of the data kept by the last import")
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	if cfg.General.DBPath != "" {
		fmt.Printf("    Database (config): %s\n", cfg.General.DBPath)
	}
	fmt.Printf("    Database (active): %s\n", dbPath())
	fmt.Printf("    Default range:     %s\n", cfg.General.DefaultRange)
	fmt.Println("    Week starts:       Monday")
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	if flagDropBackup {
		if err := s.Delete(pipeline.BackupKey); err != nil {
			return fmt.Errorf("dropping backup: %w", err)
		}
		progressf("  Dropped %s\n", pipeline.BackupKey)
	}

	entries, err := s.Entries()
	if err != nil {
		return fmt.Errorf("listing storage: %w", err)
	}

	fmt.Println("  [Storage]")
	if len(entries) == 0 {
		fmt.Println("    empty")
	}
	for _, e := range entries {
		fmt.Printf("    %-22s %8s bytes  %s\n", e.Key, cli.FormatNumber(int64(e.Size)),
			e.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	fmt.Println()

	fmt.Println("  Run `tracks setup` to reconfigure.")
	return nil
}
