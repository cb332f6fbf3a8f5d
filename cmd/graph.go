package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/tracks/internal/cli"
	"github.com/theirongolddev/tracks/internal/config"
	"github.com/theirongolddev/tracks/internal/pipeline"

	"github.com/spf13/cobra"
)

var flagRange string

var graphCmd = &cobra.Command{
	Use:   "graph TRACK",
	Short: "Trend of a measurement track over a time window",
	Args:  cobra.ExactArgs(1),
	RunE:  runGraph,
}

func init() {
	graphCmd.Flags().StringVarP(&flagRange, "range", "r", "", "Window: week, month, ytd, year or all (default from config)")
	rootCmd.AddCommand(graphCmd)
}

func graphRange() (pipeline.Range, error) {
	if flagRange != "" {
		return pipeline.ParseRange(flagRange)
	}
	cfg, _ := config.Load()
	r, err := pipeline.ParseRange(cfg.General.DefaultRange)
	if err != nil {
		return pipeline.RangeWeek, nil
	}
	return r, nil
}

func runGraph(_ *cobra.Command, args []string) error {
	r, err := graphRange()
	if err != nil {
		return err
	}
	c, err := loadCollection()
	if err != nil {
		return err
	}
	h, err := resolve(c, args[0])
	if err != nil {
		return err
	}
	if !h.IsMeasurement() {
		return fmt.Errorf("%s is a periodic track; graphs are for measurement tracks", h.Name)
	}

	t := now()
	points := pipeline.Window(h.Measurements, r, t)
	from, to := pipeline.RangeBounds(r, t)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("%s  %s", strings.ToUpper(h.Name), strings.ToUpper(string(r)))))
	fmt.Println()
	if len(points) == 0 {
		fmt.Printf("  No measurements between %s and %s.\n", from, to)
		return nil
	}

	values := make([]float64, len(points))
	rows := make([][]string, len(points))
	for i, p := range points {
		values[i] = p.Value
		rows[i] = []string{p.Date, cli.FormatMeasurement(p.Value, h.Unit)}
	}

	s := pipeline.Summarize(points)
	fmt.Printf("  %s  %s\n", cli.Swatch(h.Color), cli.RenderSparkline(values))
	fmt.Printf("  %s\n\n", cli.Muted(fmt.Sprintf("%s .. %s   mean %s   min %s   max %s",
		from, to, cli.FormatMean(s.Mean), cli.FormatValue(s.Min), cli.FormatValue(s.Max))))

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Value"},
		Rows:    rows,
	}))
	return nil
}
