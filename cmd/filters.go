package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/marinamaarina/analisedecontato/internal/filter"
	"github.com/marinamaarina/analisedecontato/internal/ingest"
	"github.com/marinamaarina/analisedecontato/internal/session"
)

// Filter flags shared by report, alerts and export.
var (
	fltFrom        string
	fltTo          string
	fltCompanies   []string
	fltSalespeople []string
	fltSegments    []string
	fltCadences    []string
	fltReasons     []string
	fltMin         string
	fltMax         string
	fltGranularity string
)

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&fltFrom, "from", "", "start date, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&fltTo, "to", "", "end date, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&fltCompanies, "company", nil, "restrict to these companies (repeatable)")
	cmd.Flags().StringSliceVar(&fltSalespeople, "salesperson", nil, "restrict to these salespeople (repeatable)")
	cmd.Flags().StringSliceVar(&fltSegments, "segment", nil, "restrict to these segments (repeatable)")
	cmd.Flags().StringSliceVar(&fltCadences, "cadence", nil, "restrict to these contact cadences (repeatable)")
	cmd.Flags().StringSliceVar(&fltReasons, "reason", nil, "restrict to these contact reasons (repeatable)")
	cmd.Flags().StringVar(&fltMin, "min", "", "minimum value, inclusive")
	cmd.Flags().StringVar(&fltMax, "max", "", "maximum value, inclusive")
	cmd.Flags().StringVar(&fltGranularity, "granularity", "monthly", "time series bucket: daily|weekly|monthly|quarterly|yearly")
}

// buildSpec turns the shared flags into a filter spec. Inverted ranges are
// reported as a warning and then normalized by the engine.
func buildSpec() (filter.Spec, error) {
	spec := filter.Spec{
		Companies:   fltCompanies,
		Salespeople: fltSalespeople,
		Segments:    fltSegments,
		Cadences:    fltCadences,
		Reasons:     fltReasons,
	}
	if fltFrom != "" {
		t, err := time.Parse("2006-01-02", fltFrom)
		if err != nil {
			return spec, fmt.Errorf("invalid --from: %w", err)
		}
		spec.DateFrom = &t
	}
	if fltTo != "" {
		t, err := time.Parse("2006-01-02", fltTo)
		if err != nil {
			return spec, fmt.Errorf("invalid --to: %w", err)
		}
		spec.DateTo = &t
	}
	if fltMin != "" {
		d, err := decimal.NewFromString(fltMin)
		if err != nil {
			return spec, fmt.Errorf("invalid --min: %w", err)
		}
		spec.MinValue = &d
	}
	if fltMax != "" {
		d, err := decimal.NewFromString(fltMax)
		if err != nil {
			return spec, fmt.Errorf("invalid --max: %w", err)
		}
		spec.MaxValue = &d
	}
	g, err := filter.ParseGranularity(fltGranularity)
	if err != nil {
		return spec, err
	}
	spec.Granularity = g

	if err := spec.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: %v (bounds reordered)\n", err)
	}
	return spec, nil
}

// openSession loads the file with the configured parsing policy.
func openSession(path string) (*session.Session, error) {
	opt := session.Options{
		Ingest: ingest.Options{Sheet: flagSheet},
		Coerce: cfg.CoerceOptions(),
	}
	opt.ExtraAliases = cfg.Aliases
	switch strings.ToLower(strings.TrimSpace(cfg.Delimiter)) {
	case "":
	case ",":
		opt.Ingest.Delimiter = ','
	case ";":
		opt.Ingest.Delimiter = ';'
	case "tab", "\t":
		opt.Ingest.Delimiter = '\t'
	default:
		return nil, fmt.Errorf("unsupported delimiter: %q", cfg.Delimiter)
	}
	s, err := session.Open(path, opt)
	if err != nil {
		return nil, err
	}
	if s.Dropped > 0 {
		fmt.Fprintf(os.Stderr, "⚠ Warning: dropped %d row(s) with unparseable date or value\n", s.Dropped)
	}
	return s, nil
}
