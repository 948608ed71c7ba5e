// Package session holds one upload's canonical table behind an explicit
// handle. The caller owns the handle and passes the table into the stateless
// core functions; there is no process-wide cache. A new upload builds a new
// Session value and fully replaces the old one, so a view being rendered
// never observes a partially updated table.
package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/marinamaarina/analisedecontato/internal/dataset"
	"github.com/marinamaarina/analisedecontato/internal/filter"
	"github.com/marinamaarina/analisedecontato/internal/ingest"
)

// Options bundles the per-upload policies for the whole load pipeline.
type Options struct {
	Ingest ingest.Options
	Coerce dataset.CoerceOptions
	// ExtraAliases are config-supplied column aliases, keyed by canonical
	// field name, tried after the built-in lists.
	ExtraAliases map[string][]string
}

// Session is one loaded upload: the immutable canonical table plus its load
// diagnostics.
type Session struct {
	ID       string
	Source   string
	Table    dataset.Table
	Dropped  int // rows lost to date/value coercion
	LoadedAt time.Time
}

// Open runs the full ingestion pipeline on a file: read, normalize columns,
// coerce and derive. Schema and empty-dataset failures abort with no
// session; coercion loss is reported through Dropped.
func Open(path string, opt Options) (*Session, error) {
	raw, err := ingest.ReadFile(path, opt.Ingest)
	if err != nil {
		return nil, err
	}
	return fromRaw(path, raw, opt)
}

// OpenBytes is Open for an in-memory upload; kind is a file name or
// extension used to pick the reader.
func OpenBytes(kind string, data []byte, opt Options) (*Session, error) {
	var (
		raw ingest.RawTable
		err error
	)
	switch {
	case strings.HasSuffix(strings.ToLower(kind), ".xlsx"):
		raw, err = ingest.ReadXLSX(data, opt.Ingest)
	default:
		raw, err = ingest.ReadCSV(data, opt.Ingest)
	}
	if err != nil {
		return nil, err
	}
	return fromRaw(kind, raw, opt)
}

func fromRaw(source string, raw ingest.RawTable, opt Options) (*Session, error) {
	normalized, err := dataset.NormalizeColumns(raw, opt.ExtraAliases)
	if err != nil {
		return nil, err
	}
	table, dropped, err := dataset.CoerceAndDerive(normalized, opt.Coerce)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return &Session{
		ID:       uuid.NewString(),
		Source:   source,
		Table:    table,
		Dropped:  dropped,
		LoadedAt: time.Now(),
	}, nil
}

// View applies a filter spec to the session table and returns the filtered
// snapshot. The session table itself is never modified.
func (s *Session) View(spec filter.Spec) dataset.Table {
	return filter.Apply(s.Table, spec)
}
