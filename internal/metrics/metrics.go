// Package metrics computes summary numbers and grouped aggregates over a
// canonical table view. Every function is a pure function of its input and
// treats an empty table as a valid state.
package metrics

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/marinamaarina/analisedecontato/internal/dataset"
	"github.com/marinamaarina/analisedecontato/internal/filter"
)

// GroupTotal is one grouped aggregate: a label with its value sum and row
// count, ready for a chart or table.
type GroupTotal struct {
	Label string
	Total decimal.Decimal
	Count int
}

// TotalValue sums the value column. Zero for an empty table.
func TotalValue(t dataset.Table) decimal.Decimal {
	total := decimal.Zero
	for _, r := range t.Rows {
		total = total.Add(r.Value)
	}
	return total
}

// TransactionCount reports the number of rows.
func TransactionCount(t dataset.Table) int { return t.Len() }

// AverageValue reports the mean value. The second return is false when the
// table is empty: "no data" rather than a crash or a fake zero.
func AverageValue(t dataset.Table) (decimal.Decimal, bool) {
	if t.Empty() {
		return decimal.Zero, false
	}
	return TotalValue(t).Div(decimal.NewFromInt(int64(t.Len()))), true
}

// DistinctCompanies counts unique company values. No fuzzy matching; two
// spellings are two companies.
func DistinctCompanies(t dataset.Table) int {
	seen := make(map[string]bool)
	for _, r := range t.Rows {
		seen[r.Company] = true
	}
	return len(seen)
}

// ValueStats is the overview panel's describe() block for the value column.
type ValueStats struct {
	Count int
	Min   float64
	Max   float64
	Mean  float64
	Std   float64
}

// DescribeValue computes count/min/max/mean and sample standard deviation of
// the value column via a Welford pass. Zero-valued stats for an empty table.
func DescribeValue(t dataset.Table) ValueStats {
	s := ValueStats{}
	var mean, m2 float64
	for _, r := range t.Rows {
		v := r.Value.InexactFloat64()
		s.Count++
		if s.Count == 1 || v < s.Min {
			s.Min = v
		}
		if s.Count == 1 || v > s.Max {
			s.Max = v
		}
		delta := v - mean
		mean += delta / float64(s.Count)
		m2 += delta * (v - mean)
	}
	s.Mean = mean
	if s.Count > 1 {
		s.Std = math.Sqrt(m2 / float64(s.Count-1))
	}
	return s
}

// GroupTotals aggregates value sums and row counts per label of the given
// dimension, in first-seen row order.
func GroupTotals(t dataset.Table, dim dataset.Dimension) []GroupTotal {
	byLabel := make(map[string]int)
	var groups []GroupTotal
	for _, r := range t.Rows {
		label := r.Dimension(dim)
		i, ok := byLabel[label]
		if !ok {
			i = len(groups)
			byLabel[label] = i
			groups = append(groups, GroupTotal{Label: label, Total: decimal.Zero})
		}
		groups[i].Total = groups[i].Total.Add(r.Value)
		groups[i].Count++
	}
	return groups
}

// TopByValue returns groups sorted by total descending (label ascending on
// ties), truncated to limit when limit > 0. This is the "top N" ordering.
func TopByValue(t dataset.Table, dim dataset.Dimension, limit int) []GroupTotal {
	groups := GroupTotals(t, dim)
	sort.Slice(groups, func(i, j int) bool {
		if c := groups[i].Total.Cmp(groups[j].Total); c != 0 {
			return c > 0
		}
		return groups[i].Label < groups[j].Label
	})
	if limit > 0 && len(groups) > limit {
		groups = groups[:limit]
	}
	return groups
}

// TopByCount returns groups sorted by row count descending, the ordering of
// the original distribution bar charts.
func TopByCount(t dataset.Table, dim dataset.Dimension, limit int) []GroupTotal {
	groups := GroupTotals(t, dim)
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Label < groups[j].Label
	})
	if limit > 0 && len(groups) > limit {
		groups = groups[:limit]
	}
	return groups
}

// PeriodSeries aggregates per period bucket of the selected granularity,
// ordered chronologically. Period labels sort lexicographically in date
// order, so label order is chronological order.
func PeriodSeries(t dataset.Table, g filter.Granularity) []GroupTotal {
	groups := GroupTotals(t, g.Dimension())
	sort.Slice(groups, func(i, j int) bool { return groups[i].Label < groups[j].Label })
	return groups
}
