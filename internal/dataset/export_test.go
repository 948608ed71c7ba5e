package dataset

import (
	"bytes"
	"strings"
	"testing"

	"github.com/marinamaarina/analisedecontato/internal/ingest"
)

func TestWriteCSVHeaderAndRows(t *testing.T) {
	raw := ingest.RawTable{
		Columns: []string{"Data", "Valor", "Empresa", "Vendedor", "Segmento"},
		Rows: [][]string{
			{"2024-01-15", "1000.50", "Acme", "Ana", "Varejo"},
		},
	}
	table, _ := normalizeAndCoerce(t, raw, CoerceOptions{DayFirst: true})

	var buf bytes.Buffer
	if err := WriteCSV(&buf, table); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if lines[0] != strings.Join(ExportColumns, ",") {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[1] != "2024-01-15,1000.5,Acme,Ana,Varejo,unknown,unknown,2024-01,2024-Q1,2024,2024-W03" {
		t.Fatalf("row = %q", lines[1])
	}
}

func TestWriteCSVEmptyTable(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, Table{}); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if strings.TrimSpace(buf.String()) != strings.Join(ExportColumns, ",") {
		t.Fatalf("output = %q, want header only", buf.String())
	}
}

// Exported views must re-parse through the coercion stage to the same rows.
func TestExportRoundTrip(t *testing.T) {
	raw := ingest.RawTable{
		Columns: []string{"Data", "Valor", "Empresa", "Vendedor", "Segmento", "Cadência", "Motivo"},
		Rows: [][]string{
			{"2024-01-15", "1000.50", "Acme", "Ana", "Varejo", "Mensal", "Renovação"},
			{"2024-02-01", "500", "Beta", "Bruno", "Indústria", "Trimestral", "Upsell"},
			{"2024-03-10", "(250)", "Acme", "Ana", "Varejo", "Mensal", "Estorno"},
		},
	}
	table, _ := normalizeAndCoerce(t, raw, CoerceOptions{DayFirst: true})

	var buf bytes.Buffer
	if err := WriteCSV(&buf, table); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	reread, err := ingest.ReadCSV(buf.Bytes(), ingest.Options{})
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	again, dropped := normalizeAndCoerce(t, reread, CoerceOptions{DayFirst: true})
	if dropped != 0 {
		t.Fatalf("dropped = %d on re-parse", dropped)
	}
	if again.Len() != table.Len() {
		t.Fatalf("rows = %d, want %d", again.Len(), table.Len())
	}
	for i := range table.Rows {
		a, b := table.Rows[i], again.Rows[i]
		if !a.Date.Equal(b.Date) || !a.Value.Equal(b.Value) {
			t.Fatalf("row %d mismatch: %v/%s vs %v/%s", i, a.Date, a.Value, b.Date, b.Value)
		}
		if a.Company != b.Company || a.Salesperson != b.Salesperson || a.Segment != b.Segment ||
			a.Cadence != b.Cadence || a.Reason != b.Reason {
			t.Fatalf("row %d labels mismatch: %#v vs %#v", i, a, b)
		}
	}
}
