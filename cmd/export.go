package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marinamaarina/analisedecontato/internal/dataset"
)

var expOutputPath string

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export the filtered view as CSV (canonical + derived columns)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(args[0])
		if err != nil {
			return err
		}
		spec, err := buildSpec()
		if err != nil {
			return err
		}
		view := s.View(spec)

		if expOutputPath == "" {
			return dataset.WriteCSV(os.Stdout, view)
		}
		f, err := os.Create(expOutputPath)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		if err := dataset.WriteCSV(f, view); err != nil {
			return err
		}
		fmt.Printf("✓ Wrote %d row(s) to %s\n", view.Len(), expOutputPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	addFilterFlags(exportCmd)
	exportCmd.Flags().StringVarP(&expOutputPath, "output", "o", "", "output path (stdout if omitted)")
}
