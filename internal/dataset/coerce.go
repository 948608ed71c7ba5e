package dataset

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/marinamaarina/analisedecontato/internal/ingest"
)

// CoerceOptions fixes the parsing policy for one whole upload. Locale
// choices are applied uniformly to every row, never decided per cell.
type CoerceOptions struct {
	// DayFirst resolves ambiguous numeric dates: with DayFirst,
	// "02/03/2024" is 2 March; without it, 3 February.
	DayFirst bool
	// Numeric locale. If DecimalSeparator is 0, auto-detect per value.
	DecimalSeparator   rune
	ThousandsSeparator rune
}

// CoerceAndDerive converts a column-normalized raw table into the canonical
// table: dates become time.Time, values become decimals, categorical blanks
// become the Unknown sentinel, and the period labels are derived. Rows whose
// date or value cannot be parsed are dropped; the count of dropped rows is
// returned so the loss stays visible.
//
// A clean table with zero rows is reported as ErrEmptyDataset.
func CoerceAndDerive(raw ingest.RawTable, opt CoerceOptions) (Table, int, error) {
	idx := make(map[string]int, len(raw.Columns))
	for i, c := range raw.Columns {
		idx[c] = i
	}
	cell := func(rec []string, name string) string {
		if i, ok := idx[name]; ok && i < len(rec) {
			return strings.TrimSpace(rec[i])
		}
		return ""
	}

	var (
		rows    []Row
		dropped int
	)
	for _, rec := range raw.Rows {
		date, ok := parseDate(cell(rec, ColDate), opt.DayFirst)
		if !ok {
			dropped++
			continue
		}
		value, ok := parseValue(cell(rec, ColValue), opt)
		if !ok {
			dropped++
			continue
		}
		rows = append(rows, NewRow(date, value,
			cell(rec, ColCompany), cell(rec, ColSalesperson), cell(rec, ColSegment),
			cell(rec, ColCadence), cell(rec, ColReason)))
	}
	if len(rows) == 0 {
		return Table{}, dropped, ErrEmptyDataset
	}
	return Table{Rows: rows}, dropped, nil
}

// unambiguousLayouts are tried first, for either date policy.
var unambiguousLayouts = []string{
	"2006-01-02", time.RFC3339, "2006-01-02 15:04:05", "2006-01-02 15:04",
	"2006/01/02", "02-Jan-2006", "2 Jan 2006",
}

var dayFirstLayouts = []string{
	"02/01/2006", "2/1/2006", "02-01-2006", "02.01.2006", "02/01/2006 15:04",
}

var monthFirstLayouts = []string{
	"01/02/2006", "1/2/2006", "01-02-2006", "01.02.2006", "01/02/2006 15:04",
}

func parseDate(s string, dayFirst bool) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	layouts := append([]string(nil), unambiguousLayouts...)
	if dayFirst {
		layouts = append(layouts, dayFirstLayouts...)
	} else {
		layouts = append(layouts, monthFirstLayouts...)
	}
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return midnightUTC(t), true
		}
	}
	// Spreadsheet serial dates survive some xlsx exports as plain numbers.
	if n, err := strconv.Atoi(s); err == nil && n > 20000 && n < 80000 {
		base := time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
		return base.AddDate(0, 0, n), true
	}
	return time.Time{}, false
}

// midnightUTC discards time-of-day; filtering compares whole days.
func midnightUTC(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var currencyTokens = []string{"R$", "US$", "$", "€", "£", "BRL", "USD", "EUR"}

// parseValue parses a monetary amount. Currency tokens and spaces are
// stripped, accounting parentheses mean negative, and decimal/thousands
// separators follow the upload-wide locale policy (auto-detected per value
// when unset).
func parseValue(s string, opt CoerceOptions) (decimal.Decimal, bool) {
	raw := strings.ReplaceAll(s, "\u00A0", " ")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Decimal{}, false
	}
	neg := false
	if strings.HasPrefix(raw, "(") && strings.HasSuffix(raw, ")") {
		neg = true
		raw = raw[1 : len(raw)-1]
	}
	upper := strings.ToUpper(raw)
	for _, tok := range currencyTokens {
		if i := strings.Index(upper, tok); i >= 0 {
			raw = raw[:i] + raw[i+len(tok):]
			upper = upper[:i] + upper[i+len(tok):]
		}
	}
	raw = strings.TrimSpace(raw)

	dec := opt.DecimalSeparator
	thou := opt.ThousandsSeparator
	if dec == 0 {
		cpos := strings.LastIndex(raw, ",")
		dpos := strings.LastIndex(raw, ".")
		switch {
		case cpos >= 0 && dpos >= 0 && cpos > dpos:
			dec, thou = ',', '.'
		case cpos >= 0 && dpos >= 0:
			dec, thou = '.', ','
		case cpos >= 0:
			dec = ','
		default:
			dec = '.'
		}
	}
	if thou == 0 {
		for _, sep := range []rune{',', '.', ' '} {
			if sep != dec {
				raw = strings.ReplaceAll(raw, string(sep), "")
			}
		}
	} else if thou != dec {
		raw = strings.ReplaceAll(raw, string(thou), "")
		raw = strings.ReplaceAll(raw, " ", "")
	}
	if dec != '.' {
		raw = strings.ReplaceAll(raw, string(dec), ".")
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, false
	}
	if neg {
		d = d.Neg()
	}
	return d, true
}
