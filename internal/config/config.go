// Package config provides configuration management for the analytics
// application.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Analytics AnalyticsConfig `mapstructure:"analytics"`
	Backtest  BacktestConfig  `mapstructure:"backtest"`
	UI        UIConfig        `mapstructure:"ui"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// AnalyticsConfig holds pricing and P&L defaults.
type AnalyticsConfig struct {
	RiskFreeRate  float64 `mapstructure:"risk_free_rate"`
	DividendYield float64 `mapstructure:"dividend_yield"`
	GridWidthPct  float64 `mapstructure:"grid_width_pct"`
	GridSteps     int     `mapstructure:"grid_steps"`
}

// BacktestConfig holds walk-forward simulation defaults.
type BacktestConfig struct {
	EntryFrequencyDays     int     `mapstructure:"entry_frequency_days"`
	ProfitTarget           float64 `mapstructure:"profit_target"`
	StopLoss               float64 `mapstructure:"stop_loss"`
	MinDaysToExpiry        int     `mapstructure:"min_days_to_expiry"`
	VolatilityLookbackDays int     `mapstructure:"volatility_lookback_days"`
	CommissionPerContract  float64 `mapstructure:"commission_per_contract"`
}

// UIConfig holds output-related configuration.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	DateFormat   string `mapstructure:"date_format"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Console    bool   `mapstructure:"console"`
	File       bool   `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/options-analytics"
	}
	return filepath.Join(home, ".config", "options-analytics")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("loading config.toml: %w", err)
		}
		// First run: write the template so users have something to edit.
		if err := createTemplateConfig(configDir); err != nil {
			return nil, fmt.Errorf("creating config template: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("analytics.risk_free_rate", 0.05)
	v.SetDefault("analytics.dividend_yield", 0.0)
	v.SetDefault("analytics.grid_width_pct", 0.30)
	v.SetDefault("analytics.grid_steps", 121)

	v.SetDefault("backtest.entry_frequency_days", 30)
	v.SetDefault("backtest.profit_target", 0.0)
	v.SetDefault("backtest.stop_loss", 0.0)
	v.SetDefault("backtest.min_days_to_expiry", 5)
	v.SetDefault("backtest.volatility_lookback_days", 30)
	v.SetDefault("backtest.commission_per_contract", 1.0)

	v.SetDefault("ui.color_enabled", true)
	v.SetDefault("ui.date_format", "2006-01-02")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", true)
	v.SetDefault("logging.file", true)
	v.SetDefault("logging.max_size_mb", 100)
	v.SetDefault("logging.max_backups", 7)
	v.SetDefault("logging.max_age_days", 30)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Analytics.RiskFreeRate < -1 || c.Analytics.RiskFreeRate > 1 {
		return fmt.Errorf("risk_free_rate must be a fraction between -1 and 1")
	}
	if c.Analytics.DividendYield < 0 {
		return fmt.Errorf("dividend_yield must be non-negative")
	}
	if c.Analytics.GridWidthPct <= 0 || c.Analytics.GridWidthPct >= 1 {
		return fmt.Errorf("grid_width_pct must be in (0, 1)")
	}
	if c.Analytics.GridSteps < 2 {
		return fmt.Errorf("grid_steps must be at least 2")
	}
	if c.Backtest.EntryFrequencyDays <= 0 {
		return fmt.Errorf("entry_frequency_days must be positive")
	}
	if c.Backtest.VolatilityLookbackDays <= 0 {
		return fmt.Errorf("volatility_lookback_days must be positive")
	}
	if c.Backtest.ProfitTarget < 0 || c.Backtest.StopLoss < 0 {
		return fmt.Errorf("profit_target and stop_loss must be non-negative")
	}
	if c.Backtest.CommissionPerContract < 0 {
		return fmt.Errorf("commission_per_contract must be non-negative")
	}
	return nil
}
