package ingest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX extracts one worksheet of an xlsx workbook as a RawTable.
// The first row is the header. Cells come back as formatted strings, the
// same shape the CSV path produces, so coercion treats both alike.
func ReadXLSX(data []byte, opt Options) (RawTable, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return RawTable{}, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheet := opt.Sheet
	if sheet == "" {
		list := f.GetSheetList()
		if len(list) == 0 {
			return RawTable{}, fmt.Errorf("xlsx: workbook has no sheets")
		}
		sheet = list[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return RawTable{}, fmt.Errorf("sheet %q not found (available: %s)", sheet, strings.Join(f.GetSheetList(), ", "))
	}
	if len(rows) == 0 {
		return RawTable{}, nil
	}

	cols := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		cols[i] = strings.TrimSpace(h)
	}
	out := RawTable{Columns: cols}
	for _, rec := range rows[1:] {
		out.Rows = append(out.Rows, padRow(rec, len(cols)))
	}
	return out, nil
}
