package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/theirongolddev/tracks/internal/cli"
	"github.com/theirongolddev/tracks/internal/dates"
	"github.com/theirongolddev/tracks/internal/model"
	"github.com/theirongolddev/tracks/internal/pipeline"

	"github.com/spf13/cobra"
)

var flagMonth string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Monthly completion rates and per-track streaks",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().StringVar(&flagMonth, "month", "", "Month to summarize (YYYY-MM, default current)")
	rootCmd.AddCommand(statsCmd)
}

// monthFlag resolves --month, defaulting to the month containing now.
func monthFlag() (int, time.Month, error) {
	if flagMonth == "" {
		t := now()
		return t.Year(), t.Month(), nil
	}
	return dates.ParseMonth(flagMonth)
}

func runStats(_ *cobra.Command, _ []string) error {
	year, month, err := monthFlag()
	if err != nil {
		return err
	}
	c, err := loadCollection()
	if err != nil {
		return err
	}

	monthly := pipeline.MonthlyStats(c.Habits, year, month)
	if len(monthly) == 0 {
		fmt.Println("\n  No active tracks. Enable some tracks to see stats!")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("STATS  " + cli.FormatMonth(year, month)))
	fmt.Println()

	rows := make([][]string, 0, len(monthly))
	for _, m := range monthly {
		rows = append(rows, []string{
			cli.Swatch(m.Color) + " " + m.Name,
			strconv.Itoa(m.CompletedDays),
			strconv.Itoa(m.ExpectedDays),
			cli.FormatRate(m.Rate),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "This Month",
		Headers: []string{"Track", "Done", "Expected", "Rate"},
		Rows:    rows,
	}))
	fmt.Println()

	var periodic, measures [][]string
	for _, s := range pipeline.HabitStats(c.Habits, now()) {
		name := cli.Swatch(s.Color) + " " + s.Name
		if s.TrackType == model.TrackMeasurement {
			measures = append(measures, measurementRow(name, s))
			continue
		}
		periodic = append(periodic, []string{
			name,
			s.FrequencyLabel,
			cli.FormatNumber(int64(s.TotalDays)),
			cli.FormatDays(s.CurrentStreak),
			cli.FormatDays(s.LongestStreak),
		})
	}

	if len(periodic) > 0 {
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Streaks",
			Headers: []string{"Track", "Schedule", "Total", "Current", "Longest"},
			Rows:    periodic,
		}))
		fmt.Println()
	}
	if len(measures) > 0 {
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Measurements",
			Headers: []string{"Track", "Entries", "Mean", "Min", "Max", "Last"},
			Rows:    measures,
		}))
		fmt.Println()
	}
	return nil
}

func measurementRow(name string, s model.HabitStat) []string {
	if s.Summary.Count == 0 {
		return []string{name, "0", "-", "-", "-", "No data"}
	}
	last := "No data"
	if s.Last != nil {
		last = fmt.Sprintf("%s (%s)", cli.FormatMeasurement(s.Last.Value, s.Unit), s.Last.Date)
	}
	return []string{
		name,
		strconv.Itoa(s.Summary.Count),
		cli.FormatMean(s.Summary.Mean),
		cli.FormatValue(s.Summary.Min),
		cli.FormatValue(s.Summary.Max),
		last,
	}
}
