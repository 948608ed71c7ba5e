// Package alerts applies static threshold rules to a table view and returns
// structured findings for the presentation layer. Findings are recomputed on
// every view and never persisted.
package alerts

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/marinamaarina/analisedecontato/internal/dataset"
	"github.com/marinamaarina/analisedecontato/internal/metrics"
)

// Kind identifies an alert rule.
type Kind string

const (
	KindLowPerformer     Kind = "low_performer"
	KindInactiveCustomer Kind = "inactive_customer"
	KindValueOutlier     Kind = "value_outlier"
	KindVolumeOverLimit  Kind = "volume_over_limit"
)

// Config carries the rule thresholds. Rules with non-positive thresholds or
// windows are disabled.
type Config struct {
	// LowPerformerThreshold flags salespeople whose value sum stays below it.
	LowPerformerThreshold decimal.Decimal
	// InactivityWindowDays flags companies with no sale in the window before
	// the table's latest date.
	InactivityWindowDays int
	// OutlierMultiplier scales the IQR fences. Zero means the 1.5 default.
	OutlierMultiplier float64
	// VolumeLimit flags salespeople with more sales than the limit.
	VolumeLimit int
}

// DefaultConfig mirrors the original dashboard defaults: outlier fences at
// 1.5×IQR, a 30-day inactivity window, amount and volume rules off.
func DefaultConfig() Config {
	return Config{
		OutlierMultiplier:    1.5,
		InactivityWindowDays: 30,
	}
}

// Finding is one alert result. Kind decides which evidence fields are set.
type Finding struct {
	Kind     Kind
	Entity   string   // salesperson or company, when the finding is singular
	Entities []string // inactive customer membership

	Amount     decimal.Decimal // observed amount (group sum or row value)
	Count      int             // row count evidence (over limit, inactive size)
	Days       int             // inactivity window applied
	LowerBound float64         // IQR fences for value outliers
	UpperBound float64
}

// Evaluate runs every enabled rule over the table. The result order is
// deterministic: low performers (amount ascending), the inactivity summary,
// value outliers (row order), then volume findings (count descending).
func Evaluate(t dataset.Table, cfg Config) []Finding {
	var out []Finding
	out = append(out, lowPerformers(t, cfg.LowPerformerThreshold)...)
	out = append(out, inactiveCustomers(t, cfg.InactivityWindowDays)...)
	out = append(out, valueOutliers(t, cfg.OutlierMultiplier)...)
	out = append(out, volumeOverLimit(t, cfg.VolumeLimit)...)
	return out
}

func lowPerformers(t dataset.Table, threshold decimal.Decimal) []Finding {
	if !threshold.IsPositive() {
		return nil
	}
	var out []Finding
	for _, g := range metrics.GroupTotals(t, dataset.BySalesperson) {
		if g.Total.LessThan(threshold) {
			out = append(out, Finding{
				Kind:   KindLowPerformer,
				Entity: g.Label,
				Amount: g.Total,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Amount.Cmp(out[j].Amount); c != 0 {
			return c < 0
		}
		return out[i].Entity < out[j].Entity
	})
	return out
}

func inactiveCustomers(t dataset.Table, windowDays int) []Finding {
	if windowDays <= 0 || t.Empty() {
		return nil
	}
	latest := t.Rows[0].Date
	for _, r := range t.Rows[1:] {
		if r.Date.After(latest) {
			latest = r.Date
		}
	}
	cutoff := latest.AddDate(0, 0, -windowDays)

	active := make(map[string]bool)
	all := make(map[string]bool)
	for _, r := range t.Rows {
		all[r.Company] = true
		if !r.Date.Before(cutoff) {
			active[r.Company] = true
		}
	}
	var inactive []string
	for c := range all {
		if !active[c] {
			inactive = append(inactive, c)
		}
	}
	if len(inactive) == 0 {
		return nil
	}
	sort.Strings(inactive)
	return []Finding{{
		Kind:     KindInactiveCustomer,
		Entities: inactive,
		Count:    len(inactive),
		Days:     windowDays,
	}}
}

func valueOutliers(t dataset.Table, multiplier float64) []Finding {
	if t.Len() < 4 {
		return nil
	}
	if multiplier <= 0 {
		multiplier = 1.5
	}
	vals := make([]float64, t.Len())
	for i, r := range t.Rows {
		vals[i] = r.Value.InexactFloat64()
	}
	sort.Float64s(vals)
	q1 := quantile(vals, 0.25)
	q3 := quantile(vals, 0.75)
	iqr := q3 - q1
	if iqr == 0 {
		return nil
	}
	lo := q1 - multiplier*iqr
	hi := q3 + multiplier*iqr

	var out []Finding
	for _, r := range t.Rows {
		v := r.Value.InexactFloat64()
		if v < lo || v > hi {
			out = append(out, Finding{
				Kind:       KindValueOutlier,
				Entity:     r.Company,
				Amount:     r.Value,
				LowerBound: lo,
				UpperBound: hi,
			})
		}
	}
	return out
}

func volumeOverLimit(t dataset.Table, limit int) []Finding {
	if limit <= 0 {
		return nil
	}
	var out []Finding
	for _, g := range metrics.GroupTotals(t, dataset.BySalesperson) {
		if g.Count > limit {
			out = append(out, Finding{
				Kind:   KindVolumeOverLimit,
				Entity: g.Label,
				Amount: g.Total,
				Count:  g.Count,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Entity < out[j].Entity
	})
	return out
}

// quantile interpolates linearly between the closest ranks of a sorted
// sample (the inclusive method).
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(pos)
	hi := lo + 1
	if hi >= len(sorted) || pos == float64(lo) {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
