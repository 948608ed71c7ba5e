package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marinamaarina/analisedecontato/internal/dataset"
	"github.com/marinamaarina/analisedecontato/internal/ingest"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Show how the file's columns map onto the canonical schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := ingest.ReadFile(args[0], ingest.Options{Sheet: flagSheet})
		if err != nil {
			return err
		}
		fmt.Printf("[INPUT]\nColumns (%d): %v\nRows: %d\n\n", len(raw.Columns), raw.Columns, len(raw.Rows))

		normalized, err := dataset.NormalizeColumns(raw, cfg.Aliases)
		var schemaErr *dataset.SchemaError
		if errors.As(err, &schemaErr) {
			fmt.Println("[SCHEMA]")
			for _, f := range schemaErr.Missing {
				fmt.Printf("✗ %s: no matching column\n", f)
			}
			return err
		}
		if err != nil {
			return err
		}

		table, dropped, err := dataset.CoerceAndDerive(normalized, cfg.CoerceOptions())
		fmt.Println("[SCHEMA]")
		fmt.Printf("Canonical columns: %v\n", normalized.Columns)
		if errors.Is(err, dataset.ErrEmptyDataset) {
			fmt.Printf("✗ no usable rows (%d dropped during coercion)\n", dropped)
			return err
		}
		if err != nil {
			return err
		}
		fmt.Printf("Usable rows: %d\nDropped rows: %d\n", table.Len(), dropped)
		if table.Len() > 0 {
			first, last := table.Rows[0], table.Rows[table.Len()-1]
			fmt.Printf("First date: %s\nLast date: %s\n",
				first.Date.Format("2006-01-02"), last.Date.Format("2006-01-02"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
