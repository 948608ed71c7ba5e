package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/marinamaarina/analisedecontato/internal/alerts"
	"github.com/marinamaarina/analisedecontato/internal/dataset"
)

// Global configuration structure.
type Global struct {
	// Parsing policy. Day-first is the default because the uploads this tool
	// was written for use dd/mm dates.
	DayFirst           bool   `mapstructure:"day_first" yaml:"day_first"`
	Delimiter          string `mapstructure:"delimiter" yaml:"delimiter"`
	DecimalSeparator   string `mapstructure:"decimal_separator" yaml:"decimal_separator"`
	ThousandsSeparator string `mapstructure:"thousands_separator" yaml:"thousands_separator"`

	// Aliases are extra column names per canonical field, tried after the
	// built-in lists, e.g. aliases: {value: [faturamento]}.
	Aliases map[string][]string `mapstructure:"aliases" yaml:"aliases"`

	// Alert thresholds. Zero disables the amount and volume rules.
	LowPerformerThreshold float64 `mapstructure:"low_performer_threshold" yaml:"low_performer_threshold"`
	InactivityWindowDays  int     `mapstructure:"inactivity_window_days" yaml:"inactivity_window_days"`
	OutlierMultiplier     float64 `mapstructure:"outlier_multiplier" yaml:"outlier_multiplier"`
	VolumeLimit           int     `mapstructure:"volume_limit" yaml:"volume_limit"`
}

// CoerceOptions translates the config into the per-upload coercion policy.
func (c *Global) CoerceOptions() dataset.CoerceOptions {
	opt := dataset.CoerceOptions{DayFirst: c.DayFirst}
	if c.DecimalSeparator != "" {
		opt.DecimalSeparator = []rune(c.DecimalSeparator)[0]
	}
	if c.ThousandsSeparator != "" {
		opt.ThousandsSeparator = []rune(c.ThousandsSeparator)[0]
	}
	return opt
}

// AlertConfig translates the config into alert rule thresholds.
func (c *Global) AlertConfig() alerts.Config {
	return alerts.Config{
		LowPerformerThreshold: decimal.NewFromFloat(c.LowPerformerThreshold),
		InactivityWindowDays:  c.InactivityWindowDays,
		OutlierMultiplier:     c.OutlierMultiplier,
		VolumeLimit:           c.VolumeLimit,
	}
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.vendas/config.yaml, creating the directory if
// necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".vendas")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	// A local .env is honored before viper reads the environment.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("VENDAS")
	v.AutomaticEnv()

	v.SetDefault("day_first", true)
	v.SetDefault("delimiter", "")
	v.SetDefault("decimal_separator", "")
	v.SetDefault("thousands_separator", "")
	v.SetDefault("low_performer_threshold", 0.0)
	v.SetDefault("inactivity_window_days", 30)
	v.SetDefault("outlier_multiplier", 1.5)
	v.SetDefault("volume_limit", 0)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".vendas")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
