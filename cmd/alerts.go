package cmd

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/marinamaarina/analisedecontato/internal/alerts"
)

var (
	alertThreshold  float64
	alertWindowDays int
	alertMultiplier float64
	alertVolume     int
)

var alertsCmd = &cobra.Command{
	Use:   "alerts <file>",
	Short: "Evaluate threshold rules over the filtered view",
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

		acfg := cfg.AlertConfig()
		f := cmd.Flags()
		if f.Changed("threshold") {
			acfg.LowPerformerThreshold = decimal.NewFromFloat(alertThreshold)
		}
		if f.Changed("window") {
			acfg.InactivityWindowDays = alertWindowDays
		}
		if f.Changed("multiplier") {
			acfg.OutlierMultiplier = alertMultiplier
		}
		if f.Changed("volume-limit") {
			acfg.VolumeLimit = alertVolume
		}

		findings := alerts.Evaluate(view, acfg)
		if len(findings) == 0 {
			fmt.Println("✓ No alerts for the current view")
			return nil
		}
		for _, fd := range findings {
			switch fd.Kind {
			case alerts.KindLowPerformer:
				fmt.Printf("! low performer: %s sold %s (threshold %s)\n",
					fd.Entity, fd.Amount, acfg.LowPerformerThreshold)
			case alerts.KindInactiveCustomer:
				fmt.Printf("! inactive customers (%d, no sale in %d days): %s\n",
					fd.Count, fd.Days, strings.Join(fd.Entities, ", "))
			case alerts.KindValueOutlier:
				fmt.Printf("! value outlier: %s at %s (bounds %.2f .. %.2f)\n",
					fd.Entity, fd.Amount, fd.LowerBound, fd.UpperBound)
			case alerts.KindVolumeOverLimit:
				fmt.Printf("! volume over limit: %s has %d sale(s) (limit %d)\n",
					fd.Entity, fd.Count, acfg.VolumeLimit)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(alertsCmd)
	addFilterFlags(alertsCmd)
	alertsCmd.Flags().Float64Var(&alertThreshold, "threshold", 0, "low performer threshold on summed value (0 = off)")
	alertsCmd.Flags().IntVar(&alertWindowDays, "window", 30, "inactivity window in days (0 = off)")
	alertsCmd.Flags().Float64Var(&alertMultiplier, "multiplier", 1.5, "IQR multiplier for value outliers")
	alertsCmd.Flags().IntVar(&alertVolume, "volume-limit", 0, "max sales per salesperson before alerting (0 = off)")
}
