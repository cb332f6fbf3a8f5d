// Package cmd implements the tracks CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/theirongolddev/tracks/internal/config"
	"github.com/theirongolddev/tracks/internal/dates"
	"github.com/theirongolddev/tracks/internal/model"
	"github.com/theirongolddev/tracks/internal/pipeline"
	"github.com/theirongolddev/tracks/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagDB      string
	flagDate    string
	flagQuiet   bool
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "tracks",
	Short: "Habit and measurement tracker",
	Long:  "Track recurring habits and daily measurements, and see progress, streaks and trends.",
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		setupLogging()
		if flagDate != "" && !dates.Valid(flagDate) {
			return fmt.Errorf("--date %q: want YYYY-MM-DD", flagDate)
		}
		return nil
	},
	RunE:          runTodo,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "  Error: %s\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Database path (default: $TRACKS_DB, config, or XDG data dir)")
	rootCmd.PersistentFlags().StringVar(&flagDate, "date", "", "Treat this date (YYYY-MM-DD) as today")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug diagnostics to stderr")
}

func setupLogging() {
	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// now returns the instant every command computes against. --date pins it
// to noon of the given local day.
func now() time.Time {
	if flagDate != "" {
		if t, err := time.ParseInLocation(dates.Layout, flagDate, time.Local); err == nil {
			return t.Add(12 * time.Hour)
		}
	}
	return time.Now()
}

func today() string {
	return dates.Key(now())
}

func dbPath() string {
	if flagDB != "" {
		return flagDB
	}
	cfg, err := config.Load()
	if err != nil {
		slog.Warn("config unreadable, using defaults", "error", err)
	}
	if p := config.DBPath(cfg); p != "" {
		return p
	}
	return pipeline.DBPath()
}

func openStore() (*store.Store, error) {
	path := dbPath()
	slog.Debug("opening store", "path", path)
	s, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return s, nil
}

// loadCollection is the shared read path used by all reporting commands.
func loadCollection() (*model.Collection, error) {
	s, err := openStore()
	if err != nil {
		return nil, err
	}
	defer s.Close()

	c, err := pipeline.LoadCollection(s)
	if err != nil {
		return nil, err
	}
	slog.Debug("loaded habits", "count", c.Len())
	return c, nil
}

// mutate runs one read-modify-write cycle. fn reports whether it changed
// anything; only then is the collection persisted.
func mutate(fn func(c *model.Collection) (bool, error)) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	c, err := pipeline.LoadCollection(s)
	if err != nil {
		return err
	}
	changed, err := fn(c)
	if err != nil || !changed {
		return err
	}
	if err := pipeline.SaveCollection(s, c); err != nil {
		return err
	}
	slog.Debug("saved habits", "count", c.Len())
	return nil
}

// resolve finds a habit by id, id prefix or name.
func resolve(c *model.Collection, ref string) (*model.Habit, error) {
	h, err := c.Resolve(ref)
	if errors.Is(err, model.ErrNotFound) {
		return nil, fmt.Errorf("no track matching %q (see `tracks list`)", ref)
	}
	return h, err
}

// dateArg returns the date argument at index i, or today when absent.
func dateArg(args []string, i int) (string, error) {
	if len(args) <= i {
		return today(), nil
	}
	if !dates.Valid(args[i]) {
		return "", fmt.Errorf("invalid date %q: want YYYY-MM-DD", args[i])
	}
	return args[i], nil
}

func progressf(format string, a ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, format, a...)
}
