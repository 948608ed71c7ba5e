package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ReadCSV parses delimited text into a RawTable. The first record is the
// header; ragged data rows are padded or truncated to the header width.
func ReadCSV(data []byte, opt Options) (RawTable, error) {
	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(data)
	}
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return RawTable{}, nil
		}
		return RawTable{}, fmt.Errorf("read header: %w", err)
	}
	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = strings.TrimSpace(h)
	}

	out := RawTable{Columns: cols}
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return RawTable{}, fmt.Errorf("read row %d: %w", len(out.Rows)+2, err)
		}
		row := make([]string, len(rec))
		copy(row, rec)
		out.Rows = append(out.Rows, padRow(row, len(cols)))
	}
	return out, nil
}

// sniffDelimiter picks the candidate that appears most often in the header
// line. Comma wins ties, matching the most common upload format.
func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	best := ','
	bestCount := bytes.Count(line, []byte{','})
	for _, c := range []byte{';', '\t'} {
		if n := bytes.Count(line, []byte{c}); n > bestCount {
			best = rune(c)
			bestCount = n
		}
	}
	return best
}
