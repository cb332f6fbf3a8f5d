package cmd

import (
	"fmt"

	"github.com/theirongolddev/tracks/internal/cli"
	"github.com/theirongolddev/tracks/internal/pipeline"

	"github.com/spf13/cobra"
)

var todoCmd = &cobra.Command{
	Use:   "todo",
	Short: "Goals for the current period (default command)",
	RunE:  runTodo,
}

func init() {
	rootCmd.AddCommand(todoCmd)
}

func runTodo(_ *cobra.Command, _ []string) error {
	c, err := loadCollection()
	if err != nil {
		return err
	}

	t := now()
	items := pipeline.Todo(c.Habits, t)
	if len(items) == 0 {
		fmt.Println("\n  No active periodic tracks. Add some tracks to see goals!")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("TO-DO  %s", cli.FormatDate(today()))))
	fmt.Println()

	rows := make([][]string, 0, len(items))
	pending := 0
	for _, it := range items {
		left := cli.Done(true)
		if it.Remaining > 0 {
			left = fmt.Sprintf("%d left", it.Remaining)
			pending++
		}
		rows = append(rows, []string{
			cli.Swatch(it.Color) + " " + it.Name,
			cli.RenderProgressBar(it.Progress.Progress, it.Progress.Target, 12),
			it.Progress.Label,
			left,
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Track", "Progress", "Period", "Status"},
		Rows:    rows,
	}))

	if pending == 0 {
		fmt.Println("  All goals met.")
	} else {
		progressf("  %d of %d goals open\n", pending, len(items))
	}
	return nil
}
