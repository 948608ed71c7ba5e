package dataset

import (
	"strings"

	"github.com/marinamaarina/analisedecontato/internal/ingest"
)

// Field is one canonical column identity together with the input column
// names accepted for it. Alias order is the match priority: when several
// input columns could serve a field, the earliest alias wins, regardless of
// where the columns sit in the upload.
type Field struct {
	Name      string
	Aliases   []string
	Mandatory bool
}

// Fields returns the canonical schema in resolution order.
func Fields() []Field {
	return []Field{
		{Name: ColDate, Mandatory: true, Aliases: []string{
			"data", "date", "data_venda", "data_da_venda", "dia",
		}},
		{Name: ColValue, Mandatory: true, Aliases: []string{
			"valor", "value", "valor_venda", "amount", "montante", "receita", "revenue", "total",
		}},
		{Name: ColCompany, Aliases: []string{
			"empresa", "company", "cliente", "customer", "conta", "account",
		}},
		{Name: ColSalesperson, Aliases: []string{
			"vendedor", "responsável", "responsavel", "salesperson", "seller", "rep",
		}},
		{Name: ColSegment, Aliases: []string{
			"segmento", "segment", "setor", "sector",
		}},
		{Name: ColCadence, Aliases: []string{
			"cadência", "cadencia", "cadence", "frequência", "frequencia", "frequency",
		}},
		{Name: ColReason, Aliases: []string{
			"motivo", "reason", "motivo_contato", "justificativa",
		}},
	}
}

// columnKey normalizes a column name for alias matching: lowercase, trimmed,
// runs of spaces/hyphens collapsed to underscores. Accented variants are
// listed explicitly in the alias tables instead of being transliterated.
func columnKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	pending := false
	for _, r := range s {
		if r == ' ' || r == '-' || r == '_' {
			pending = b.Len() > 0
			continue
		}
		if pending {
			b.WriteByte('_')
			pending = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// NormalizeColumns maps an uploaded table's columns onto the canonical
// schema. Cell values are passed through untouched; only the column identity
// changes. extra carries config-supplied aliases, tried after the built-ins.
//
// Optional fields with no matching column come back as empty cells (the
// coercion stage turns those into the Unknown sentinel). If any mandatory
// field stays unresolved the whole load fails with a SchemaError.
func NormalizeColumns(raw ingest.RawTable, extra map[string][]string) (ingest.RawTable, error) {
	byKey := make(map[string]int, len(raw.Columns))
	for i, c := range raw.Columns {
		k := columnKey(c)
		if _, dup := byKey[k]; !dup {
			byKey[k] = i
		}
	}

	fields := Fields()
	srcIdx := make(map[string]int, len(fields)) // canonical name -> input column
	var missing []string
	for _, f := range fields {
		aliases := append(append([]string(nil), f.Aliases...), extra[f.Name]...)
		idx := -1
		for _, a := range aliases {
			if i, ok := byKey[columnKey(a)]; ok {
				idx = i
				break
			}
		}
		if idx < 0 && f.Name == ColDate {
			idx = dtPrefixed(raw.Columns)
		}
		if idx < 0 {
			if f.Mandatory {
				missing = append(missing, f.Name)
			}
			continue
		}
		srcIdx[f.Name] = idx
	}
	if len(missing) > 0 {
		return ingest.RawTable{}, &SchemaError{Missing: missing}
	}

	out := ingest.RawTable{
		Columns: make([]string, len(fields)),
		Rows:    make([][]string, len(raw.Rows)),
	}
	for i, f := range fields {
		out.Columns[i] = f.Name
	}
	for ri, rec := range raw.Rows {
		row := make([]string, len(fields))
		for fi, f := range fields {
			if idx, ok := srcIdx[f.Name]; ok && idx < len(rec) {
				row[fi] = rec[idx]
			}
		}
		out.Rows[ri] = row
	}
	return out, nil
}

// dtPrefixed is the last-resort date rule: the first input column (in upload
// order) whose normalized name starts with "dt".
func dtPrefixed(columns []string) int {
	for i, c := range columns {
		if strings.HasPrefix(columnKey(c), "dt") {
			return i
		}
	}
	return -1
}
