// Package config provides configuration management for the reporter.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Stats   StatsConfig   `mapstructure:"stats"`
	Source  SourceConfig  `mapstructure:"source"`
	Sink    SinkConfig    `mapstructure:"sink"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// StatsConfig is the single table of constants the metrics engine runs
// on, passed explicitly into every computation.
type StatsConfig struct {
	CapitalBase float64 `mapstructure:"capital_base"`
	ScaleFactor float64 `mapstructure:"scale_factor"`

	ProfitFactorCap float64 `mapstructure:"profit_factor_cap"`
	SharpeCap       float64 `mapstructure:"sharpe_cap"`
	SharpeDefault   float64 `mapstructure:"sharpe_default"`
	ReturnRiskCap   float64 `mapstructure:"return_risk_cap"`

	// Epsilon substitutes a zero denominator in the profit-factor and
	// zero-drawdown return/risk computations.
	Epsilon float64 `mapstructure:"epsilon"`

	TradingDaysPerYear int `mapstructure:"trading_days_per_year"`

	WeeklyWindowDays    int `mapstructure:"weekly_window_days"`
	MonthlyWindowDays   int `mapstructure:"monthly_window_days"`
	QuarterlyWindowDays int `mapstructure:"quarterly_window_days"`

	EquityCurvePoints int `mapstructure:"equity_curve_points"`
	RecentWindowDays  int `mapstructure:"recent_window_days"`
	LatestTradesLimit int `mapstructure:"latest_trades_limit"`
}

// SourceConfig configures the trade-history source.
type SourceConfig struct {
	// Path to the SQLite database the MT5 bridge exports deal history into.
	DBPath string `mapstructure:"db_path"`
	// History range start; deals before this date are ignored.
	HistoryStart string `mapstructure:"history_start"` // "2006-01-02"
	// Timeout for the fetch call. Zero means no timeout.
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
}

// SinkConfig configures where the report is written.
type SinkConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Console    bool   `mapstructure:"console"`
	File       bool   `mapstructure:"file"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"` // megabytes
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/mt5-reporter"
	}
	return filepath.Join(home, ".config", "mt5-reporter")
}

// Default returns the built-in configuration, used when no config file exists.
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Stats: DefaultStats(),
		Source: SourceConfig{
			DBPath:       filepath.Join(DefaultConfigDir(), "deals.db"),
			HistoryStart: "2024-01-01",
			FetchTimeout: 30 * time.Second,
		},
		Sink: SinkConfig{
			Path: filepath.Join(home, "web_data.json"),
		},
		Logging: LoggingConfig{
			Level:      "info",
			Console:    true,
			File:       true,
			FilePath:   filepath.Join(DefaultConfigDir(), "logs", "reporter.log"),
			MaxSize:    100,
			MaxBackups: 7,
			MaxAge:     30,
		},
	}
}

// DefaultStats returns the built-in metrics constant table.
func DefaultStats() StatsConfig {
	return StatsConfig{
		CapitalBase:         10000,
		ScaleFactor:         0.10,
		ProfitFactorCap:     3.5,
		SharpeCap:           2.5,
		SharpeDefault:       1.2,
		ReturnRiskCap:       8.0,
		Epsilon:             0.01,
		TradingDaysPerYear:  252,
		WeeklyWindowDays:    7,
		MonthlyWindowDays:   30,
		QuarterlyWindowDays: 90,
		EquityCurvePoints:   12,
		RecentWindowDays:    7,
		LatestTradesLimit:   20,
	}
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := Default()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	setDefaults(v, cfg)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("loading config.toml: %w", err)
		}
		// No config file yet: write the template and continue on defaults.
		if err := createTemplateConfig(configDir); err != nil {
			return nil, fmt.Errorf("writing config template: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config.toml: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("stats.capital_base", cfg.Stats.CapitalBase)
	v.SetDefault("stats.scale_factor", cfg.Stats.ScaleFactor)
	v.SetDefault("stats.profit_factor_cap", cfg.Stats.ProfitFactorCap)
	v.SetDefault("stats.sharpe_cap", cfg.Stats.SharpeCap)
	v.SetDefault("stats.sharpe_default", cfg.Stats.SharpeDefault)
	v.SetDefault("stats.return_risk_cap", cfg.Stats.ReturnRiskCap)
	v.SetDefault("stats.epsilon", cfg.Stats.Epsilon)
	v.SetDefault("stats.trading_days_per_year", cfg.Stats.TradingDaysPerYear)
	v.SetDefault("stats.weekly_window_days", cfg.Stats.WeeklyWindowDays)
	v.SetDefault("stats.monthly_window_days", cfg.Stats.MonthlyWindowDays)
	v.SetDefault("stats.quarterly_window_days", cfg.Stats.QuarterlyWindowDays)
	v.SetDefault("stats.equity_curve_points", cfg.Stats.EquityCurvePoints)
	v.SetDefault("stats.recent_window_days", cfg.Stats.RecentWindowDays)
	v.SetDefault("stats.latest_trades_limit", cfg.Stats.LatestTradesLimit)
	v.SetDefault("source.db_path", cfg.Source.DBPath)
	v.SetDefault("source.history_start", cfg.Source.HistoryStart)
	v.SetDefault("source.fetch_timeout", cfg.Source.FetchTimeout)
	v.SetDefault("sink.path", cfg.Sink.Path)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.console", cfg.Logging.Console)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.file_path", cfg.Logging.FilePath)
	v.SetDefault("logging.max_size", cfg.Logging.MaxSize)
	v.SetDefault("logging.max_backups", cfg.Logging.MaxBackups)
	v.SetDefault("logging.max_age", cfg.Logging.MaxAge)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("MT5_REPORTER_DB"); v != "" {
		cfg.Source.DBPath = v
	}
	if v := os.Getenv("MT5_REPORTER_OUTPUT"); v != "" {
		cfg.Sink.Path = v
	}
	if v := os.Getenv("MT5_REPORTER_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Stats.CapitalBase <= 0 {
		return fmt.Errorf("capital_base must be positive")
	}
	if c.Stats.ScaleFactor <= 0 {
		return fmt.Errorf("scale_factor must be positive")
	}
	if c.Stats.ProfitFactorCap <= 0 || c.Stats.SharpeCap <= 0 || c.Stats.ReturnRiskCap <= 0 {
		return fmt.Errorf("metric caps must be positive")
	}
	if c.Stats.Epsilon <= 0 {
		return fmt.Errorf("epsilon must be positive")
	}
	if c.Stats.EquityCurvePoints < 1 {
		return fmt.Errorf("equity_curve_points must be at least 1")
	}
	if c.Stats.RecentWindowDays < 1 {
		return fmt.Errorf("recent_window_days must be at least 1")
	}
	if c.Stats.LatestTradesLimit < 0 {
		return fmt.Errorf("latest_trades_limit must be non-negative")
	}
	if _, err := c.HistoryStart(); err != nil {
		return fmt.Errorf("invalid history_start: %w", err)
	}
	if c.Sink.Path == "" {
		return fmt.Errorf("sink path is required")
	}
	return nil
}

// HistoryStart parses the configured history range start.
func (c *Config) HistoryStart() (time.Time, error) {
	return time.ParseInLocation("2006-01-02", c.Source.HistoryStart, time.Local)
}
