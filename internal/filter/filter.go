// Package filter narrows a canonical sales table to the rows a user has
// selected. Predicates are AND-combined, each one vacuously true when its
// spec field is unset, so application order can never change the result.
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/marinamaarina/analisedecontato/internal/dataset"
)

// Granularity selects which derived period column keys a time series.
// It is carried with the filter spec but never filters rows itself.
type Granularity string

const (
	Daily     Granularity = "daily"
	Weekly    Granularity = "weekly"
	Monthly   Granularity = "monthly"
	Quarterly Granularity = "quarterly"
	Yearly    Granularity = "yearly"
)

// Dimension maps a granularity onto the table column holding its labels.
// Unknown granularities fall back to monthly, the original dashboard default.
func (g Granularity) Dimension() dataset.Dimension {
	switch g {
	case Daily:
		return dataset.ByDay
	case Weekly:
		return dataset.ByWeek
	case Quarterly:
		return dataset.ByQuarter
	case Yearly:
		return dataset.ByYear
	}
	return dataset.ByMonth
}

// ParseGranularity validates a user-supplied granularity name.
func ParseGranularity(s string) (Granularity, error) {
	g := Granularity(strings.ToLower(strings.TrimSpace(s)))
	switch g {
	case Daily, Weekly, Monthly, Quarterly, Yearly:
		return g, nil
	}
	return "", fmt.Errorf("unknown granularity %q (want daily|weekly|monthly|quarterly|yearly)", s)
}

// Spec is one user interaction's filter selection. A zero Spec restricts
// nothing. Specs are built fresh per interaction and never mutated.
//
// Empty categorical selections mean "no restriction", matching the
// select-all default of the original multi-select widgets.
type Spec struct {
	DateFrom *time.Time
	DateTo   *time.Time

	Companies   []string
	Salespeople []string
	Segments    []string
	Cadences    []string
	Reasons     []string

	MinValue *decimal.Decimal
	MaxValue *decimal.Decimal

	Granularity Granularity
}

// ValidationError reports spec fields that had to be normalized before use.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid filter spec: " + strings.Join(e.Problems, "; ")
}

// Validate reports inverted ranges. Apply tolerates them (it reorders the
// bounds), but callers that want to surface the mistake can check here.
func (s Spec) Validate() error {
	var problems []string
	if s.DateFrom != nil && s.DateTo != nil && s.DateFrom.After(*s.DateTo) {
		problems = append(problems, fmt.Sprintf("date range inverted (%s > %s)",
			s.DateFrom.Format("2006-01-02"), s.DateTo.Format("2006-01-02")))
	}
	if s.MinValue != nil && s.MaxValue != nil && s.MinValue.GreaterThan(*s.MaxValue) {
		problems = append(problems, fmt.Sprintf("value range inverted (%s > %s)", s.MinValue, s.MaxValue))
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// normalized returns a spec with inverted ranges reordered and date bounds
// truncated to whole days.
func (s Spec) normalized() Spec {
	if s.DateFrom != nil {
		t := day(*s.DateFrom)
		s.DateFrom = &t
	}
	if s.DateTo != nil {
		t := day(*s.DateTo)
		s.DateTo = &t
	}
	if s.DateFrom != nil && s.DateTo != nil && s.DateFrom.After(*s.DateTo) {
		s.DateFrom, s.DateTo = s.DateTo, s.DateFrom
	}
	if s.MinValue != nil && s.MaxValue != nil && s.MinValue.GreaterThan(*s.MaxValue) {
		s.MinValue, s.MaxValue = s.MaxValue, s.MinValue
	}
	return s
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Apply returns the subset of t matching every set predicate. The input is
// never mutated; the result is a new table (possibly empty, which every
// consumer tolerates). Apply is idempotent and predicate order independent.
func Apply(t dataset.Table, spec Spec) dataset.Table {
	s := spec.normalized()

	companies := toSet(s.Companies)
	salespeople := toSet(s.Salespeople)
	segments := toSet(s.Segments)
	cadences := toSet(s.Cadences)
	reasons := toSet(s.Reasons)

	rows := make([]dataset.Row, 0, t.Len())
	for _, r := range t.Rows {
		if s.DateFrom != nil && r.Date.Before(*s.DateFrom) {
			continue
		}
		if s.DateTo != nil && r.Date.After(*s.DateTo) {
			continue
		}
		if companies != nil && !companies[r.Company] {
			continue
		}
		if salespeople != nil && !salespeople[r.Salesperson] {
			continue
		}
		if segments != nil && !segments[r.Segment] {
			continue
		}
		if cadences != nil && !cadences[r.Cadence] {
			continue
		}
		if reasons != nil && !reasons[r.Reason] {
			continue
		}
		if s.MinValue != nil && r.Value.LessThan(*s.MinValue) {
			continue
		}
		if s.MaxValue != nil && r.Value.GreaterThan(*s.MaxValue) {
			continue
		}
		rows = append(rows, r)
	}
	return dataset.Table{Rows: rows}
}

// toSet builds an exact-match lookup set; nil means unrestricted. Matching is
// exact because selections are made from the dataset's own distinct values,
// and counting treats differently-cased spellings as distinct entities.
func toSet(items []string) map[string]bool {
	if len(items) == 0 {
		return nil
	}
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
