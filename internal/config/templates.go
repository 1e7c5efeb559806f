package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# MT5 Web-Stats Reporter Configuration

[stats]
# Reference capital every percentage is expressed against
capital_base = 10000.0
# Uniform scaling applied to realized profit before any ratio is derived.
# Normalizes the live account size to the reference size.
scale_factor = 0.10
# Display caps for headline ratios
profit_factor_cap = 3.5
sharpe_cap = 2.5
sharpe_default = 1.2
return_risk_cap = 8.0
# Denominator substitute when losses or drawdown are exactly zero
epsilon = 0.01
trading_days_per_year = 252
# Rolling performance windows, in days
weekly_window_days = 7
monthly_window_days = 30
quarterly_window_days = 90
# Chart shaping
equity_curve_points = 12
recent_window_days = 7
latest_trades_limit = 20

[source]
# SQLite database the MT5 bridge exports deal history into.
# Defaults to deals.db in the config directory when unset.
# db_path = "/path/to/deals.db"
# Deals before this date are ignored
history_start = "2024-01-01"
# Fetch timeout, e.g. "30s". "0s" disables the timeout.
fetch_timeout = "30s"

[sink]
# Where the dashboard JSON is written (atomic replace).
# Defaults to web_data.json in the home directory when unset.
# path = "/path/to/web_data.json"

[logging]
level = "info"
console = true
file = true
# file_path defaults to logs/reporter.log in the config directory
max_size = 100
max_backups = 7
max_age = 30
`

// createTemplateConfig writes a commented config.toml for first runs.
func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil // already exists
	}

	return os.WriteFile(path, []byte(configTemplate), 0644)
}
