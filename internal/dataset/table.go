package dataset

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Canonical column names every downstream stage depends on.
const (
	ColDate        = "date"
	ColValue       = "value"
	ColCompany     = "company"
	ColSalesperson = "salesperson"
	ColSegment     = "segment"
	ColCadence     = "cadence"
	ColReason      = "reason"
)

// Unknown is the sentinel for categorical fields the upload did not carry.
const Unknown = "unknown"

// Row is one canonical sales transaction. The period labels are derived from
// Date in a single place (derivePeriods) so they can never drift apart.
type Row struct {
	Date        time.Time
	Value       decimal.Decimal
	Company     string
	Salesperson string
	Segment     string
	Cadence     string
	Reason      string

	Month   string // "2006-01"
	Quarter string // "2006-Q1"
	Year    string // "2006"
	Week    string // ISO week, "2006-W03"
}

// NewRow builds a row with its period labels derived from date.
func NewRow(date time.Time, value decimal.Decimal, company, salesperson, segment, cadence, reason string) Row {
	r := Row{
		Date:        date,
		Value:       value,
		Company:     sentinel(company),
		Salesperson: sentinel(salesperson),
		Segment:     sentinel(segment),
		Cadence:     sentinel(cadence),
		Reason:      sentinel(reason),
	}
	r.Month, r.Quarter, r.Year, r.Week = derivePeriods(date)
	return r
}

func sentinel(s string) string {
	if s == "" {
		return Unknown
	}
	return s
}

func derivePeriods(d time.Time) (month, quarter, year, week string) {
	y, m, _ := d.Date()
	year = fmt.Sprintf("%04d", y)
	month = fmt.Sprintf("%04d-%02d", y, int(m))
	quarter = fmt.Sprintf("%04d-Q%d", y, (int(m)+2)/3)
	iy, iw := d.ISOWeek()
	week = fmt.Sprintf("%04d-W%02d", iy, iw)
	return
}

// Dimension is a groupable column of the canonical table.
type Dimension string

const (
	ByCompany     Dimension = "company"
	BySalesperson Dimension = "salesperson"
	BySegment     Dimension = "segment"
	ByCadence     Dimension = "cadence"
	ByReason      Dimension = "reason"
	ByDay         Dimension = "day"
	ByWeek        Dimension = "week"
	ByMonth       Dimension = "month"
	ByQuarter     Dimension = "quarter"
	ByYear        Dimension = "year"
)

// Dimension returns the row's label for a groupable column. Period labels
// sort lexicographically in chronological order.
func (r Row) Dimension(d Dimension) string {
	switch d {
	case ByCompany:
		return r.Company
	case BySalesperson:
		return r.Salesperson
	case BySegment:
		return r.Segment
	case ByCadence:
		return r.Cadence
	case ByReason:
		return r.Reason
	case ByDay:
		return r.Date.Format("2006-01-02")
	case ByWeek:
		return r.Week
	case ByMonth:
		return r.Month
	case ByQuarter:
		return r.Quarter
	case ByYear:
		return r.Year
	}
	return ""
}

// Table is an ordered snapshot of canonical rows. Tables are treated as
// immutable: filtering and aggregation return new tables and never write
// through Rows.
type Table struct {
	Rows []Row
}

// Len reports the number of rows.
func (t Table) Len() int { return len(t.Rows) }

// Empty reports whether the table has no rows. An empty table is a valid
// state for every consumer.
func (t Table) Empty() bool { return len(t.Rows) == 0 }
