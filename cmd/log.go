package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/tracks/internal/cli"
	"github.com/theirongolddev/tracks/internal/model"
	"github.com/theirongolddev/tracks/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	flagClear bool
	flagValue string
)

var doneCmd = &cobra.Command{
	Use:   "done TRACK [DATE]",
	Short: "Mark a periodic track done (today by default)",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runDone,
}

var toggleCmd = &cobra.Command{
	Use:   "toggle TRACK [DATE]",
	Short: "Flip a periodic track's completion for a date",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runToggle,
}

var measureCmd = &cobra.Command{
	Use:   "measure TRACK [VALUE] [DATE]",
	Short: "Record, replace or clear a measurement",
	Example: `  tracks measure Weight 72.4
  tracks measure Weight 71.9 2024-03-01
  tracks measure Balance --value -3
  tracks measure Balance -- -3 2024-03-01
  tracks measure Weight --clear 2024-03-01`,
	Args: cobra.RangeArgs(1, 3),
	RunE: runMeasure,
}

func init() {
	measureCmd.Flags().BoolVar(&flagClear, "clear", false, "Remove the measurement for the date")
	measureCmd.Flags().StringVar(&flagValue, "value", "", "Value to record; use this (or --) for negative numbers")
	rootCmd.AddCommand(doneCmd, toggleCmd, measureCmd)
}

func periodicTrack(c *model.Collection, ref string) (*model.Habit, error) {
	h, err := resolve(c, ref)
	if err != nil {
		return nil, err
	}
	if h.IsMeasurement() {
		return nil, fmt.Errorf("%s is a measurement track; use `tracks measure`", h.Name)
	}
	return h, nil
}

func runDone(_ *cobra.Command, args []string) error {
	date, err := dateArg(args, 1)
	if err != nil {
		return err
	}
	return mutate(func(c *model.Collection) (bool, error) {
		h, err := periodicTrack(c, args[0])
		if err != nil {
			return false, err
		}
		if !h.MarkDone(date) {
			fmt.Printf("  %s %s already done on %s\n", cli.Swatch(h.Color), h.Name, date)
			return false, nil
		}
		p := pipeline.PeriodicProgress(*h, now())
		fmt.Printf("  %s %s done on %s  %s\n", cli.Swatch(h.Color), h.Name, date,
			cli.Muted(fmt.Sprintf("%d/%d %s", p.Progress, p.Target, p.Label)))
		return true, nil
	})
}

func runToggle(_ *cobra.Command, args []string) error {
	date, err := dateArg(args, 1)
	if err != nil {
		return err
	}
	return mutate(func(c *model.Collection) (bool, error) {
		h, err := periodicTrack(c, args[0])
		if err != nil {
			return false, err
		}
		state := "not done"
		if h.ToggleDate(date) {
			state = "done"
		}
		fmt.Printf("  %s %s %s on %s\n", cli.Swatch(h.Color), h.Name, state, date)
		return true, nil
	})
}

func runMeasure(_ *cobra.Command, args []string) error {
	raw := ""
	dateIdx := 2
	switch {
	case flagClear && flagValue != "":
		return fmt.Errorf("--clear and --value cannot be combined")
	case flagClear, flagValue != "":
		raw = flagValue
		dateIdx = 1
		if len(args) > 2 {
			return fmt.Errorf("with --clear or --value, measure takes TRACK [DATE]")
		}
	case len(args) < 2:
		return fmt.Errorf("a value is required (or pass --value or --clear)")
	default:
		raw = args[1]
	}
	date, err := dateArg(args, dateIdx)
	if err != nil {
		return err
	}

	return mutate(func(c *model.Collection) (bool, error) {
		h, err := resolve(c, args[0])
		if err != nil {
			return false, err
		}
		if !h.IsMeasurement() {
			return false, fmt.Errorf("%s is a periodic track; use `tracks done` or `tracks toggle`", h.Name)
		}

		if err := h.SetMeasurementInput(date, raw); err != nil {
			if errors.Is(err, model.ErrInvalidValue) {
				return false, fmt.Errorf("%q is not a number", raw)
			}
			return false, err
		}
		v, ok := pipeline.ValueOnDate(*h, date)
		if !ok {
			fmt.Printf("  %s Cleared %s for %s\n", cli.Swatch(h.Color), h.Name, date)
		} else {
			fmt.Printf("  %s %s: %s on %s\n", cli.Swatch(h.Color), h.Name, cli.FormatMeasurement(v, h.Unit), date)
		}
		return true, nil
	})
}
