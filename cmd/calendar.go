package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/tracks/internal/cli"
	"github.com/theirongolddev/tracks/internal/model"
	"github.com/theirongolddev/tracks/internal/pipeline"

	"github.com/spf13/cobra"
)

var flagYear int

var calendarCmd = &cobra.Command{
	Use:     "calendar",
	Aliases: []string{"cal"},
	Short:   "Month calendar with completed tracks per day",
	RunE:    runCalendar,
}

var dayCmd = &cobra.Command{
	Use:   "day [DATE]",
	Short: "Every track's state on one day",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDay,
}

func init() {
	calendarCmd.Flags().StringVar(&flagMonth, "month", "", "Month to show (YYYY-MM, default current)")
	calendarCmd.Flags().IntVar(&flagYear, "year", 0, "Show a whole year as a completion heatmap")
	rootCmd.AddCommand(calendarCmd, dayCmd)
}

func runCalendar(_ *cobra.Command, _ []string) error {
	c, err := loadCollection()
	if err != nil {
		return err
	}
	if flagYear != 0 {
		return renderYear(c, flagYear)
	}

	year, month, err := monthFlag()
	if err != nil {
		return err
	}
	days := pipeline.CalendarMonth(c.Habits, year, month, time.Local)

	fmt.Println()
	fmt.Println(cli.RenderTitle(strings.ToUpper(cli.FormatMonth(year, month))))
	fmt.Println()
	fmt.Print(cli.RenderCalendar(days, today(), 4))
	fmt.Println()

	visible := c.Visible()
	legend := make([]string, 0, len(visible))
	for _, h := range visible {
		legend = append(legend, cli.Swatch(h.Color)+" "+h.Name)
	}
	if len(legend) > 0 {
		fmt.Println("  " + strings.Join(legend, "   "))
	}
	return nil
}

// renderYear prints one row per month, each day shaded by how many
// visible tracks were completed on it.
func renderYear(c *model.Collection, year int) error {
	shades := []rune{'·', '░', '▒', '▓', '█'}
	total := len(c.Visible())

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("YEAR %d", year)))
	fmt.Println()
	for m := time.January; m <= time.December; m++ {
		var b strings.Builder
		for _, d := range pipeline.CalendarMonth(c.Habits, year, m, time.Local) {
			idx := 0
			if total > 0 && len(d.Habits) > 0 {
				idx = 1 + len(d.Habits)*(len(shades)-2)/total
			}
			b.WriteRune(shades[min(idx, len(shades)-1)])
		}
		fmt.Printf("  %-4s %s\n", m.String()[:3], b.String())
	}
	fmt.Println()
	return nil
}

func runDay(_ *cobra.Command, args []string) error {
	date, err := dateArg(args, 0)
	if err != nil {
		return err
	}
	c, err := loadCollection()
	if err != nil {
		return err
	}

	entries := pipeline.DayDetail(c.Habits, date)
	if len(entries) == 0 {
		fmt.Println("\n  No tracks yet.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(cli.FormatDate(date)))
	fmt.Println()

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		state := cli.Done(e.Done)
		if e.TrackType == model.TrackMeasurement {
			state = cli.Muted("-")
			if e.Value != nil {
				state = cli.FormatMeasurement(*e.Value, e.Unit)
			}
		}
		rows = append(rows, []string{cli.Swatch(e.Color) + " " + e.Name, state})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Track", "State"},
		Rows:    rows,
	}))
	return nil
}
