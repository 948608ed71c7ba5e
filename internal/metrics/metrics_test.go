package metrics

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/marinamaarina/analisedecontato/internal/dataset"
	"github.com/marinamaarina/analisedecontato/internal/filter"
)

func row(y int, m time.Month, d int, value string, company, person, segment string) dataset.Row {
	return dataset.NewRow(
		time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		decimal.RequireFromString(value),
		company, person, segment, "", "",
	)
}

func sampleTable() dataset.Table {
	return dataset.Table{Rows: []dataset.Row{
		row(2024, time.January, 15, "1000.50", "Acme", "Ana", "Varejo"),
		row(2024, time.February, 1, "500", "Beta", "Bruno", "Indústria"),
	}}
}

func TestSummaryMetrics(t *testing.T) {
	table := sampleTable()

	if got := TotalValue(table); !got.Equal(decimal.RequireFromString("1500.50")) {
		t.Fatalf("total = %s", got)
	}
	if got := TransactionCount(table); got != 2 {
		t.Fatalf("count = %d", got)
	}
	avg, ok := AverageValue(table)
	if !ok || !avg.Equal(decimal.RequireFromString("750.25")) {
		t.Fatalf("average = %s, ok = %v", avg, ok)
	}
	if got := DistinctCompanies(table); got != 2 {
		t.Fatalf("distinct companies = %d", got)
	}
}

func TestAverageValueEmptyTable(t *testing.T) {
	if got := TotalValue(dataset.Table{}); !got.IsZero() {
		t.Fatalf("total = %s, want 0", got)
	}
	if _, ok := AverageValue(dataset.Table{}); ok {
		t.Fatal("average of empty table must report no data")
	}
}

func TestDescribeValue(t *testing.T) {
	table := dataset.Table{Rows: []dataset.Row{
		row(2024, time.January, 1, "10", "A", "", ""),
		row(2024, time.January, 2, "20", "B", "", ""),
		row(2024, time.January, 3, "30", "C", "", ""),
	}}
	s := DescribeValue(table)
	if s.Count != 3 || s.Min != 10 || s.Max != 30 || s.Mean != 20 {
		t.Fatalf("stats = %+v", s)
	}
	if math.Abs(s.Std-10) > 1e-9 {
		t.Fatalf("std = %g, want 10 (sample deviation)", s.Std)
	}
}

func TestDescribeValueEmpty(t *testing.T) {
	s := DescribeValue(dataset.Table{})
	if s != (ValueStats{}) {
		t.Fatalf("stats = %+v, want zero", s)
	}
}

func TestGroupTotalsFirstSeenOrder(t *testing.T) {
	table := dataset.Table{Rows: []dataset.Row{
		row(2024, time.January, 1, "100", "Acme", "Ana", ""),
		row(2024, time.January, 2, "50", "Beta", "Bruno", ""),
		row(2024, time.January, 3, "25", "Acme", "Ana", ""),
	}}
	groups := GroupTotals(table, dataset.ByCompany)
	if len(groups) != 2 {
		t.Fatalf("groups = %d", len(groups))
	}
	if groups[0].Label != "Acme" || !groups[0].Total.Equal(decimal.NewFromInt(125)) || groups[0].Count != 2 {
		t.Fatalf("group 0 = %+v", groups[0])
	}
	if groups[1].Label != "Beta" || groups[1].Count != 1 {
		t.Fatalf("group 1 = %+v", groups[1])
	}
}

func TestTopByValueOrderAndLimit(t *testing.T) {
	table := dataset.Table{Rows: []dataset.Row{
		row(2024, time.January, 1, "100", "", "Bruno", ""),
		row(2024, time.January, 2, "300", "", "Ana", ""),
		row(2024, time.January, 3, "100", "", "Carla", ""),
		row(2024, time.January, 4, "100", "", "Bruno", ""),
	}}
	top := TopByValue(table, dataset.BySalesperson, 2)
	if len(top) != 2 {
		t.Fatalf("top = %d entries", len(top))
	}
	if top[0].Label != "Ana" || top[1].Label != "Bruno" {
		t.Fatalf("order = %q, %q", top[0].Label, top[1].Label)
	}

	all := TopByValue(table, dataset.BySalesperson, 0)
	if len(all) != 3 {
		t.Fatalf("unlimited = %d entries", len(all))
	}
}

func TestTopByValueTiesBreakByLabel(t *testing.T) {
	table := dataset.Table{Rows: []dataset.Row{
		row(2024, time.January, 1, "100", "", "Zeca", ""),
		row(2024, time.January, 2, "100", "", "Ana", ""),
	}}
	top := TopByValue(table, dataset.BySalesperson, 0)
	if top[0].Label != "Ana" || top[1].Label != "Zeca" {
		t.Fatalf("tie order = %q, %q", top[0].Label, top[1].Label)
	}
}

func TestTopByCount(t *testing.T) {
	table := dataset.Table{Rows: []dataset.Row{
		row(2024, time.January, 1, "1", "", "", "Varejo"),
		row(2024, time.January, 2, "1000", "", "", "Indústria"),
		row(2024, time.January, 3, "1", "", "", "Varejo"),
	}}
	top := TopByCount(table, dataset.BySegment, 0)
	if top[0].Label != "Varejo" || top[0].Count != 2 {
		t.Fatalf("top = %+v", top[0])
	}
	if top[1].Label != "Indústria" {
		t.Fatalf("second = %+v", top[1])
	}
}

func TestPeriodSeriesChronological(t *testing.T) {
	table := dataset.Table{Rows: []dataset.Row{
		row(2024, time.March, 1, "30", "", "", ""),
		row(2024, time.January, 15, "10", "", "", ""),
		row(2024, time.January, 20, "5", "", "", ""),
		row(2023, time.December, 31, "1", "", "", ""),
	}}
	series := PeriodSeries(table, filter.Monthly)
	want := []string{"2023-12", "2024-01", "2024-03"}
	if len(series) != len(want) {
		t.Fatalf("series = %d buckets", len(series))
	}
	for i, label := range want {
		if series[i].Label != label {
			t.Fatalf("bucket %d = %q, want %q", i, series[i].Label, label)
		}
	}
	if !series[1].Total.Equal(decimal.NewFromInt(15)) || series[1].Count != 2 {
		t.Fatalf("january bucket = %+v", series[1])
	}
}

func TestPeriodSeriesYearly(t *testing.T) {
	table := dataset.Table{Rows: []dataset.Row{
		row(2024, time.March, 1, "30", "", "", ""),
		row(2023, time.December, 31, "1", "", "", ""),
	}}
	series := PeriodSeries(table, filter.Yearly)
	if len(series) != 2 || series[0].Label != "2023" || series[1].Label != "2024" {
		t.Fatalf("series = %+v", series)
	}
}
