package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Options Analytics Configuration

[analytics]
# Annual risk-free rate used for pricing when not overridden per command
risk_free_rate = 0.05
# Annual dividend yield of the underlying
dividend_yield = 0.0
# P&L grid half-width as a fraction of spot (0.30 = +/-30%)
grid_width_pct = 0.30
# Number of points on the P&L price grid
grid_steps = 121

[backtest]
# Days between scheduled entries
entry_frequency_days = 30
# Exit when unrealized P&L reaches this fraction of entry cost (0 disables)
profit_target = 0.0
# Exit when unrealized P&L falls below this fraction of entry cost (0 disables)
stop_loss = 0.0
# Force an exit this many days before expiration
min_days_to_expiry = 5
# Trailing window for the entry-day volatility estimate
volatility_lookback_days = 30
# Commission per option contract per side
commission_per_contract = 1.0

[ui]
# Enable colored output
color_enabled = true
# Date format
date_format = "2006-01-02"

[logging]
# Log level: debug, info, warn, error
level = "info"
# Log to console
console = true
# Log to rotating file
file = true
max_size_mb = 100
max_backups = 7
max_age_days = 30
`

// createTemplateConfig writes the default config file on first run.
func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return os.WriteFile(path, []byte(configTemplate), 0644)
}
