package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Validates(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 10000.0, cfg.Stats.CapitalBase)
	assert.Equal(t, 0.10, cfg.Stats.ScaleFactor)
	assert.Equal(t, 3.5, cfg.Stats.ProfitFactorCap)
	assert.Equal(t, 2.5, cfg.Stats.SharpeCap)
	assert.Equal(t, 1.2, cfg.Stats.SharpeDefault)
	assert.Equal(t, 8.0, cfg.Stats.ReturnRiskCap)
	assert.Equal(t, 0.01, cfg.Stats.Epsilon)
	assert.Equal(t, 252, cfg.Stats.TradingDaysPerYear)
	assert.Equal(t, 12, cfg.Stats.EquityCurvePoints)
	assert.Equal(t, 7, cfg.Stats.RecentWindowDays)
	assert.Equal(t, 20, cfg.Stats.LatestTradesLimit)
}

func TestValidate_RejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero capital base", func(c *Config) { c.Stats.CapitalBase = 0 }},
		{"negative scale factor", func(c *Config) { c.Stats.ScaleFactor = -0.1 }},
		{"zero profit factor cap", func(c *Config) { c.Stats.ProfitFactorCap = 0 }},
		{"zero epsilon", func(c *Config) { c.Stats.Epsilon = 0 }},
		{"zero equity points", func(c *Config) { c.Stats.EquityCurvePoints = 0 }},
		{"zero recent window", func(c *Config) { c.Stats.RecentWindowDays = 0 }},
		{"negative trades limit", func(c *Config) { c.Stats.LatestTradesLimit = -1 }},
		{"bad history start", func(c *Config) { c.Source.HistoryStart = "01/01/2024" }},
		{"empty sink path", func(c *Config) { c.Sink.Path = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestHistoryStart_ParsesDate(t *testing.T) {
	cfg := Default()
	cfg.Source.HistoryStart = "2024-03-15"

	start, err := cfg.HistoryStart()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local), start)
}

func TestLoad_CreatesTemplateOnMissingFile(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	// Defaults apply and the template was written for next time.
	assert.Equal(t, 10000.0, cfg.Stats.CapitalBase)
	_, statErr := os.Stat(filepath.Join(dir, "config.toml"))
	assert.NoError(t, statErr)
}

func TestLoad_ReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := `
[stats]
capital_base = 25000.0
latest_trades_limit = 5

[source]
history_start = "2023-06-01"

[sink]
path = "/tmp/out.json"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 25000.0, cfg.Stats.CapitalBase)
	assert.Equal(t, 5, cfg.Stats.LatestTradesLimit)
	assert.Equal(t, "2023-06-01", cfg.Source.HistoryStart)
	assert.Equal(t, "/tmp/out.json", cfg.Sink.Path)
	// Unset keys keep their defaults.
	assert.Equal(t, 0.10, cfg.Stats.ScaleFactor)
	assert.Equal(t, 20, Default().Stats.LatestTradesLimit)
}

func TestLoad_AppliesEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MT5_REPORTER_DB", "/data/deals.db")
	t.Setenv("MT5_REPORTER_OUTPUT", "/data/web_data.json")
	t.Setenv("MT5_REPORTER_LOG_LEVEL", "debug")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "/data/deals.db", cfg.Source.DBPath)
	assert.Equal(t, "/data/web_data.json", cfg.Sink.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_RejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	content := `
[stats]
capital_base = -1.0
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644))

	_, err := Load(dir)
	assert.Error(t, err)
}
