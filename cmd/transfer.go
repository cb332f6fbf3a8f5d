package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/theirongolddev/tracks/internal/model"
	"github.com/theirongolddev/tracks/internal/pipeline"
	"github.com/theirongolddev/tracks/internal/snapshot"

	"github.com/spf13/cobra"
)

var flagOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write all tracks to a JSON file",
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Replace all tracks with the contents of a JSON export",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output file, or - for stdout (default habits-YYYY-MM-DD.json)")
	importCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(exportCmd, importCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	c, err := loadCollection()
	if err != nil {
		return err
	}
	data, err := snapshot.Encode(c.Habits)
	if err != nil {
		return err
	}

	out := flagOutput
	if out == "-" {
		_, err := os.Stdout.Write(append(data, '\n'))
		return err
	}
	if out == "" {
		out = snapshot.ExportFileName(now())
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	fmt.Printf("  Exported %d tracks to %s\n", c.Len(), out)
	return nil
}

func runImport(_ *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading import: %w", err)
	}
	habits, err := snapshot.Decode(data)
	if errors.Is(err, snapshot.ErrInvalidFormat) {
		return fmt.Errorf("%s: invalid file format (expected a JSON list of tracks)", args[0])
	}
	if err != nil {
		return err
	}

	if !flagYes {
		ok, err := confirm(fmt.Sprintf("Replace all current tracks with %d tracks from %s?", len(habits), args[0]))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("  Cancelled.")
			return nil
		}
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	c, err := pipeline.ReplaceCollection(s, habits)
	if err != nil {
		return err
	}
	fmt.Printf("  Imported %d tracks (%d measurements)\n", c.Len(), countMeasurements(c))
	progressf("  Previous data kept under %s\n", pipeline.BackupKey)
	return nil
}

func countMeasurements(c *model.Collection) int {
	n := 0
	for _, h := range c.Habits {
		n += len(h.Measurements)
	}
	return n
}
