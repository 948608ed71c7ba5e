package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
)

// ExportColumns is the header row of every delimited export: the canonical
// fields followed by the derived period labels.
var ExportColumns = []string{
	ColDate, ColValue, ColCompany, ColSalesperson, ColSegment, ColCadence, ColReason,
	"month", "quarter", "year", "week",
}

// WriteCSV serializes a table view as comma-delimited UTF-8 text with a
// header row. The output re-parses through NormalizeColumns and
// CoerceAndDerive to the same row set.
func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, r := range t.Rows {
		rec := []string{
			r.Date.Format("2006-01-02"),
			r.Value.String(),
			r.Company,
			r.Salesperson,
			r.Segment,
			r.Cadence,
			r.Reason,
			r.Month,
			r.Quarter,
			r.Year,
			r.Week,
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
