package ingest

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// RawTable is an uploaded table exactly as read from disk: arbitrary column
// names and untyped string cells. It only lives long enough to be normalized.
type RawTable struct {
	Columns []string
	Rows    [][]string
}

// Options controls how an upload is read.
type Options struct {
	// Delimiter for CSV. If 0, auto-detects among ',', ';', '\t'.
	Delimiter rune
	// Sheet selects the XLSX worksheet by name. Empty means the first sheet.
	Sheet string
}

// ErrUnsupported indicates a file format we cannot read.
var ErrUnsupported = errors.New("unsupported file format (want .csv, .tsv or .xlsx)")

// ReadFile selects a reader based on the file extension and returns the raw
// table. The whole file is held in memory.
func ReadFile(path string, opt Options) (RawTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RawTable{}, fmt.Errorf("read file: %w", err)
	}
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".xlsx"):
		return ReadXLSX(data, opt)
	case strings.HasSuffix(lower, ".tsv"):
		if opt.Delimiter == 0 {
			opt.Delimiter = '\t'
		}
		return ReadCSV(data, opt)
	case strings.HasSuffix(lower, ".csv"), strings.HasSuffix(lower, ".txt"):
		return ReadCSV(data, opt)
	}
	return RawTable{}, fmt.Errorf("%s: %w", path, ErrUnsupported)
}

// padRow grows rec to ncol cells so every row is uniformly shaped.
func padRow(rec []string, ncol int) []string {
	if len(rec) >= ncol {
		return rec[:ncol]
	}
	tmp := make([]string, ncol)
	copy(tmp, rec)
	return tmp
}
