package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/marinamaarina/analisedecontato/internal/dataset"
	"github.com/marinamaarina/analisedecontato/internal/filter"
)

const sampleCSV = `Data,Valor,Empresa,Vendedor
2024-01-15,1000.50,Acme,Ana
2024-02-01,500,Beta,Bruno
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestOpenCSVFile(t *testing.T) {
	path := writeTemp(t, "vendas.csv", sampleCSV)

	s, err := Open(path, Options{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.Table.Len() != 2 || s.Dropped != 0 {
		t.Fatalf("session = %+v", s)
	}
	if s.Source != path {
		t.Fatalf("source = %q", s.Source)
	}
	if _, err := uuid.Parse(s.ID); err != nil {
		t.Fatalf("session ID %q is not a uuid: %v", s.ID, err)
	}
	if s.LoadedAt.IsZero() {
		t.Fatal("LoadedAt not set")
	}
}

func TestOpenAssignsDistinctIDs(t *testing.T) {
	path := writeTemp(t, "vendas.csv", sampleCSV)
	a, err := Open(path, Options{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	b, err := Open(path, Options{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if a.ID == b.ID {
		t.Fatalf("both sessions share ID %q", a.ID)
	}
}

func TestOpenBytesPicksReaderByName(t *testing.T) {
	s, err := OpenBytes("upload.csv", []byte(sampleCSV), Options{})
	if err != nil {
		t.Fatalf("OpenBytes: %v", err)
	}
	if s.Table.Len() != 2 {
		t.Fatalf("rows = %d", s.Table.Len())
	}
}

func TestOpenSchemaError(t *testing.T) {
	path := writeTemp(t, "vendas.csv", "Empresa\nAcme\n")
	_, err := Open(path, Options{})
	var schemaErr *dataset.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("err = %v, want SchemaError", err)
	}
}

func TestOpenEmptyDataset(t *testing.T) {
	path := writeTemp(t, "vendas.csv", "Data,Valor\njunk,junk\n")
	_, err := Open(path, Options{})
	if !errors.Is(err, dataset.ErrEmptyDataset) {
		t.Fatalf("err = %v, want ErrEmptyDataset", err)
	}
}

func TestViewLeavesTableIntact(t *testing.T) {
	path := writeTemp(t, "vendas.csv", sampleCSV)
	s, err := Open(path, Options{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	view := s.View(filter.Spec{Companies: []string{"Acme"}})
	if view.Len() != 1 || view.Rows[0].Company != "Acme" {
		t.Fatalf("view = %+v", view.Rows)
	}
	if s.Table.Len() != 2 {
		t.Fatalf("session table mutated: rows = %d", s.Table.Len())
	}

	again := s.View(filter.Spec{})
	if again.Len() != 2 {
		t.Fatalf("unfiltered view = %d rows", again.Len())
	}
}

func TestOpenHonorsCoerceOptions(t *testing.T) {
	path := writeTemp(t, "vendas.csv", "Data,Valor\n02/03/2024,10\n")
	s, err := Open(path, Options{Coerce: dataset.CoerceOptions{DayFirst: true}})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got := s.Table.Rows[0].Date.Day(); got != 2 {
		t.Fatalf("day = %d, want 2 under day-first parsing", got)
	}
}

func TestOpenExtraAliases(t *testing.T) {
	path := writeTemp(t, "vendas.csv", "Data,Faturamento\n2024-01-15,10\n")
	opt := Options{ExtraAliases: map[string][]string{dataset.ColValue: {"faturamento"}}}
	s, err := Open(path, opt)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.Table.Len() != 1 {
		t.Fatalf("rows = %d", s.Table.Len())
	}
}
