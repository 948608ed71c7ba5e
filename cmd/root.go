package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cfgpkg "github.com/marinamaarina/analisedecontato/internal/config"
)

var (
	// Global flags (wired to config/viper)
	cfgFile       string
	flagDayFirst  bool
	flagDelimiter string
	flagSheet     string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "vendas",
	Short: "Vendas: explore a sales spreadsheet from the terminal",
	Long: `Vendas loads a sales spreadsheet or CSV, maps its columns onto a
canonical schema, and lets you filter, summarize, export and check alert
rules over the result.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.vendas/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagDayFirst, "day-first", true, "parse ambiguous dates as day/month (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' (auto-detect if omitted)")
	rootCmd.PersistentFlags().StringVar(&flagSheet, "sheet", "", "XLSX: sheet name (default is the first sheet)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to defaults so read-only commands still work
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = &cfgpkg.Global{DayFirst: true, InactivityWindowDays: 30, OutlierMultiplier: 1.5}
	}
	cfg = c

	f := rootCmd.PersistentFlags()
	if f.Changed("day-first") {
		cfg.DayFirst = flagDayFirst
	}
	if f.Changed("delimiter") {
		cfg.Delimiter = flagDelimiter
	}
}
