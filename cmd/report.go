package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marinamaarina/analisedecontato/internal/dataset"
	"github.com/marinamaarina/analisedecontato/internal/metrics"
)

var repTopN int

var reportCmd = &cobra.Command{
	Use:   "report <file>",
	Short: "Summarize a sales file: totals, rankings and a period series",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(args[0])
		if err != nil {
			return err
		}
		spec, err := buildSpec()
		if err != nil {
			return err
		}
		view := s.View(spec)

		fmt.Printf("[SUMMARY]\nFile: %s\nRows: %d (of %d loaded, %d dropped)\n",
			s.Source, view.Len(), s.Table.Len(), s.Dropped)
		fmt.Printf("Total value: %s\n", metrics.TotalValue(view))
		if avg, ok := metrics.AverageValue(view); ok {
			fmt.Printf("Average value: %s\n", avg.StringFixed(2))
		} else {
			fmt.Println("Average value: no data")
		}
		fmt.Printf("Distinct companies: %d\n", metrics.DistinctCompanies(view))
		st := metrics.DescribeValue(view)
		if st.Count > 0 {
			fmt.Printf("Value range: min %.2f, max %.2f, std %.2f\n", st.Min, st.Max, st.Std)
		}

		printTop(view, dataset.ByCompany, "TOP COMPANIES BY VALUE")
		printTop(view, dataset.BySalesperson, "TOP SALESPEOPLE BY VALUE")
		printCounts(view, dataset.BySegment, "SALES BY SEGMENT")
		printCounts(view, dataset.ByCadence, "SALES BY CADENCE")
		printCounts(view, dataset.ByReason, "SALES BY REASON")

		series := metrics.PeriodSeries(view, spec.Granularity)
		if len(series) > 0 {
			fmt.Printf("\n[SALES OVER TIME, %s]\n", strings.ToUpper(string(spec.Granularity)))
			for _, g := range series {
				fmt.Printf("- %s: %s (%d sale(s))\n", g.Label, g.Total, g.Count)
			}
		}
		return nil
	},
}

func printTop(view dataset.Table, dim dataset.Dimension, title string) {
	groups := metrics.TopByValue(view, dim, repTopN)
	if len(groups) == 0 {
		return
	}
	fmt.Printf("\n[%s]\n", title)
	for _, g := range groups {
		fmt.Printf("- %s: %s (%d sale(s))\n", g.Label, g.Total, g.Count)
	}
}

func printCounts(view dataset.Table, dim dataset.Dimension, title string) {
	groups := metrics.TopByCount(view, dim, repTopN)
	if len(groups) == 0 {
		return
	}
	// A column the upload never carried collapses into one sentinel bucket;
	// a distribution over it says nothing.
	if len(groups) == 1 && groups[0].Label == dataset.Unknown {
		return
	}
	fmt.Printf("\n[%s]\n", title)
	for _, g := range groups {
		fmt.Printf("- %s: %d sale(s), %s total\n", g.Label, g.Count, g.Total)
	}
}

func init() {
	rootCmd.AddCommand(reportCmd)
	addFilterFlags(reportCmd)
	reportCmd.Flags().IntVar(&repTopN, "top", 10, "number of entries per ranking (0 = all)")
}
