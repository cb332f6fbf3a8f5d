package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/tracks/internal/cli"
	"github.com/theirongolddev/tracks/internal/model"
	"github.com/theirongolddev/tracks/internal/pipeline"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// palette is cycled through when a new track has no --color.
var palette = []string{"#6366F1", "#3AA99F", "#DA702C", "#D14D41", "#879A39", "#8B7EC8", "#D0A215", "#4385BE"}

var (
	flagType    string
	flagCadence string
	flagTimes   int
	flagUnit    string
	flagColor   string
	flagName    string
	flagHidden  bool
	flagYes     bool
)

var addCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Create a track",
	Example: `  tracks add Run --cadence perWeek --times 3
  tracks add Weight --type measurement --unit kg`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

var editCmd = &cobra.Command{
	Use:   "edit TRACK",
	Short: "Change a track's name, color or schedule",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

var deleteCmd = &cobra.Command{
	Use:     "delete TRACK",
	Aliases: []string{"rm"},
	Short:   "Delete a track and all its history",
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tracks in display order",
	RunE:    runList,
}

var moveCmd = &cobra.Command{
	Use:   "move TRACK POSITION",
	Short: "Move a track to a 1-based position in the display order",
	Args:  cobra.ExactArgs(2),
	RunE:  runMove,
}

var showCmd = &cobra.Command{
	Use:   "show TRACK",
	Short: "Include a track in calendar, to-do and stats views",
	Args:  cobra.ExactArgs(1),
	RunE:  func(_ *cobra.Command, args []string) error { return setVisibility(args[0], true) },
}

var hideCmd = &cobra.Command{
	Use:   "hide TRACK",
	Short: "Exclude a track from calendar, to-do and stats views",
	Args:  cobra.ExactArgs(1),
	RunE:  func(_ *cobra.Command, args []string) error { return setVisibility(args[0], false) },
}

func init() {
	for _, c := range []*cobra.Command{addCmd, editCmd} {
		c.Flags().StringVarP(&flagType, "type", "t", "periodic", "Track type: periodic or measurement")
		c.Flags().StringVar(&flagCadence, "cadence", "perWeek", "Cadence: everyday, perWeek, perMonth or everyXDays")
		c.Flags().IntVarP(&flagTimes, "times", "x", model.DefaultFrequency, "Target count per period, or the interval for everyXDays")
		c.Flags().StringVar(&flagUnit, "unit", "", "Unit label for measurement tracks")
		c.Flags().StringVar(&flagColor, "color", "", "Display color (#RRGGBB)")
	}
	addCmd.Flags().BoolVar(&flagHidden, "hidden", false, "Create the track hidden from aggregate views")
	editCmd.Flags().StringVar(&flagName, "name", "", "New name")
	deleteCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Skip the confirmation prompt")

	rootCmd.AddCommand(addCmd, editCmd, deleteCmd, listCmd, moveCmd, showCmd, hideCmd)
}

func validColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	_, err := strconv.ParseUint(s[1:], 16, 32)
	return err == nil
}

// applySchedule configures h from the schedule flags. Only flags the user
// set are applied, so edit leaves the rest alone.
func applySchedule(cmd *cobra.Command, h *model.Habit) error {
	f := cmd.Flags()

	trackType := h.TrackType
	if f.Changed("type") || trackType == "" {
		tt, ok := model.ParseTrackType(flagType)
		if !ok {
			return fmt.Errorf("unknown track type %q (want periodic or measurement)", flagType)
		}
		trackType = tt
	}

	if f.Changed("color") {
		if !validColor(flagColor) {
			return fmt.Errorf("invalid color %q: want #RRGGBB", flagColor)
		}
		h.Color = strings.ToUpper(flagColor)
	}

	if trackType == model.TrackMeasurement {
		unit := h.Unit
		if f.Changed("unit") || !h.IsMeasurement() {
			unit = strings.TrimSpace(flagUnit)
		}
		h.SetMeasurementUnit(unit)
		h.PeriodicType = ""
		h.FrequencyX = 0
		return nil
	}

	pt := h.PeriodicType
	if f.Changed("cadence") || pt == "" {
		parsed, ok := model.ParsePeriodicType(flagCadence)
		if !ok {
			return fmt.Errorf("unknown cadence %q (want everyday, perWeek, perMonth or everyXDays)", flagCadence)
		}
		pt = parsed
	}
	x := h.FrequencyX
	if f.Changed("times") || x <= 0 {
		if flagTimes < 1 {
			return fmt.Errorf("--times must be at least 1")
		}
		x = flagTimes
	}
	h.SetSchedule(pt, x)
	h.Unit = ""
	return nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(args[0])
	if name == "" {
		return fmt.Errorf("track name is required")
	}

	return mutate(func(c *model.Collection) (bool, error) {
		h := model.NewHabit(name, palette[c.Len()%len(palette)], "")
		if err := applySchedule(cmd, &h); err != nil {
			return false, err
		}
		h.ShowInCalendar = !flagHidden
		c.Add(h)

		fmt.Printf("  %s Added %s (%s)\n", cli.Swatch(h.Color), h.Name, describe(h))
		return true, nil
	})
}

func runEdit(cmd *cobra.Command, args []string) error {
	return mutate(func(c *model.Collection) (bool, error) {
		h, err := resolve(c, args[0])
		if err != nil {
			return false, err
		}
		if cmd.Flags().Changed("name") {
			name := strings.TrimSpace(flagName)
			if name == "" {
				return false, fmt.Errorf("track name is required")
			}
			h.Name = name
		}
		if err := applySchedule(cmd, h); err != nil {
			return false, err
		}
		fmt.Printf("  %s Updated %s (%s)\n", cli.Swatch(h.Color), h.Name, describe(*h))
		return true, nil
	})
}

func runDelete(_ *cobra.Command, args []string) error {
	return mutate(func(c *model.Collection) (bool, error) {
		h, err := resolve(c, args[0])
		if err != nil {
			return false, err
		}
		if !flagYes {
			ok, err := confirm(fmt.Sprintf("Delete %q and all of its history?", h.Name))
			if err != nil {
				return false, err
			}
			if !ok {
				fmt.Println("  Cancelled.")
				return false, nil
			}
		}
		name := h.Name
		c.Delete(h.ID)
		fmt.Printf("  Deleted %s\n", name)
		return true, nil
	})
}

func confirm(title string) (bool, error) {
	var ok bool
	err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Affirmative("Yes").
			Negative("No").
			Value(&ok),
	)).Run()
	if err != nil {
		return false, fmt.Errorf("confirmation: %w", err)
	}
	return ok, nil
}

func runList(_ *cobra.Command, _ []string) error {
	c, err := loadCollection()
	if err != nil {
		return err
	}
	if c.Len() == 0 {
		fmt.Println("\n  No tracks yet. Add one with `tracks add NAME`.")
		return nil
	}

	rows := make([][]string, 0, c.Len())
	for i, h := range c.Habits {
		visible := "yes"
		if !h.ShowInCalendar {
			visible = "hidden"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d. %s %s", i+1, cli.Swatch(h.Color), h.Name),
			describe(h),
			strconv.Itoa(h.History.Len()),
			visible,
			h.ID[:min(8, len(h.ID))],
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Track", "Schedule", "Days", "Shown", "ID"},
		Rows:    rows,
	}))
	return nil
}

// describe summarizes a track's schedule.
func describe(h model.Habit) string {
	if h.IsMeasurement() {
		if h.Unit == "" {
			return "measurement"
		}
		return "measurement, " + h.Unit
	}
	return pipeline.FrequencyLabel(h)
}

func runMove(_ *cobra.Command, args []string) error {
	pos, err := strconv.Atoi(args[1])
	if err != nil || pos < 1 {
		return fmt.Errorf("invalid position %q: want a number from 1", args[1])
	}
	return mutate(func(c *model.Collection) (bool, error) {
		h, err := resolve(c, args[0])
		if err != nil {
			return false, err
		}
		name := h.Name
		c.Move(h.ID, pos-1)
		fmt.Printf("  Moved %s to position %d\n", name, min(pos, c.Len()))
		return true, nil
	})
}

func setVisibility(ref string, visible bool) error {
	return mutate(func(c *model.Collection) (bool, error) {
		h, err := resolve(c, ref)
		if err != nil {
			return false, err
		}
		if h.ShowInCalendar == visible {
			fmt.Printf("  %s is already %s\n", h.Name, visibilityWord(visible))
			return false, nil
		}
		c.ToggleVisibility(h.ID)
		fmt.Printf("  %s is now %s\n", h.Name, visibilityWord(visible))
		return true, nil
	})
}

func visibilityWord(visible bool) string {
	if visible {
		return "shown"
	}
	return "hidden"
}
