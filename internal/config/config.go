package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// MACDConfig holds the MACD periods.
type MACDConfig struct {
	FastPeriod   int `yaml:"fast_period"`
	SlowPeriod   int `yaml:"slow_period"`
	SignalPeriod int `yaml:"signal_period"`
}

// Validate checks the MACD parameter invariants.
func (c MACDConfig) Validate() error {
	if c.FastPeriod < 1 || c.SlowPeriod < 1 || c.SignalPeriod < 1 {
		return fmt.Errorf("macd periods must be positive")
	}
	if c.FastPeriod >= c.SlowPeriod {
		return fmt.Errorf("macd fast_period (%d) must be less than slow_period (%d)", c.FastPeriod, c.SlowPeriod)
	}
	return nil
}

// RSIConfig holds the RSI period and zone thresholds.
type RSIConfig struct {
	Period            int     `yaml:"period"`
	Overbought        float64 `yaml:"overbought"`
	Oversold          float64 `yaml:"oversold"`
	ExtremeOverbought float64 `yaml:"extreme_overbought"`
	ExtremeOversold   float64 `yaml:"extreme_oversold"`
}

// Validate checks the RSI parameter invariants.
func (c RSIConfig) Validate() error {
	if c.Period < 1 {
		return fmt.Errorf("rsi period must be positive")
	}
	if c.Oversold < 0 || c.Overbought > 100 || c.Oversold >= c.Overbought {
		return fmt.Errorf("rsi thresholds must satisfy 0 <= oversold < overbought <= 100")
	}
	if c.ExtremeOverbought < 0 || c.ExtremeOverbought > 100 || c.ExtremeOversold < 0 || c.ExtremeOversold > 100 {
		return fmt.Errorf("rsi extreme thresholds must be within [0, 100]")
	}
	return nil
}

// SMAConfig holds the simple moving average periods, shortest first.
type SMAConfig struct {
	Periods []int `yaml:"periods"`
}

// Validate checks the SMA parameter invariants.
func (c SMAConfig) Validate() error {
	if len(c.Periods) == 0 {
		return fmt.Errorf("sma periods must not be empty")
	}
	for i, p := range c.Periods {
		if p < 1 {
			return fmt.Errorf("sma period %d must be positive", p)
		}
		if i > 0 && p <= c.Periods[i-1] {
			return fmt.Errorf("sma periods must be strictly increasing")
		}
	}
	return nil
}

// SMADeltaConfig holds the short/long windows of the monthly delta study.
type SMADeltaConfig struct {
	ShortPeriod int `yaml:"short_period"`
	LongPeriod  int `yaml:"long_period"`
}

// Validate checks the SMA-delta parameter invariants.
func (c SMADeltaConfig) Validate() error {
	if c.ShortPeriod < 1 || c.LongPeriod < 1 {
		return fmt.Errorf("sma_delta periods must be positive")
	}
	if c.ShortPeriod >= c.LongPeriod {
		return fmt.Errorf("sma_delta short_period (%d) must be less than long_period (%d)", c.ShortPeriod, c.LongPeriod)
	}
	return nil
}

// SupertrendConfig holds the ATR window and band multiplier.
type SupertrendConfig struct {
	ATRLength  int     `yaml:"atr_length"`
	Multiplier float64 `yaml:"multiplier"`
}

// Validate checks the Supertrend parameter invariants.
func (c SupertrendConfig) Validate() error {
	if c.ATRLength < 1 {
		return fmt.Errorf("supertrend atr_length must be at least 1")
	}
	if c.Multiplier <= 0 {
		return fmt.Errorf("supertrend multiplier must be positive")
	}
	return nil
}

// IndicatorsConfig groups all indicator parameter sets.
type IndicatorsConfig struct {
	MACD       MACDConfig       `yaml:"macd"`
	RSI        RSIConfig        `yaml:"rsi"`
	SMA        SMAConfig        `yaml:"sma"`
	SMADelta   SMADeltaConfig   `yaml:"sma_delta"`
	Supertrend SupertrendConfig `yaml:"supertrend"`
}

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	DataSource struct {
		Source  string `yaml:"source"` // "yahoo" or "csv"
		CSVDir  string `yaml:"csv_dir"`
		Symbol  string `yaml:"symbol"`
		Days    int    `yaml:"days"`
		Months  int    `yaml:"months"`
	} `yaml:"data_source"`
	Schedule struct {
		DailyCron  string `yaml:"daily_cron"`
		WeeklyCron string `yaml:"weekly_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Indicators   IndicatorsConfig `yaml:"indicators"`
	Orchestrator struct {
		Mode             string `yaml:"mode"` // "parallel" or "sequential"
		MinBuyConditions int    `yaml:"min_buy_conditions"`
		TimeoutSeconds   int    `yaml:"timeout_seconds"`
	} `yaml:"orchestrator"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("DATA_SOURCE"); v != "" {
		cfg.DataSource.Source = v
	}
	if v := os.Getenv("CSV_DIR"); v != "" {
		cfg.DataSource.CSVDir = v
	}
	if v := os.Getenv("SYMBOL"); v != "" {
		cfg.DataSource.Symbol = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("ORCHESTRATOR_MODE"); v != "" {
		cfg.Orchestrator.Mode = v
	}
	if v := os.Getenv("ORCHESTRATOR_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Orchestrator.TimeoutSeconds = n
		}
	}

	// Defaults
	if cfg.DataSource.Source == "" {
		cfg.DataSource.Source = "yahoo"
	}
	if cfg.DataSource.Symbol == "" {
		cfg.DataSource.Symbol = "SPX500"
	}
	if cfg.DataSource.Days == 0 {
		cfg.DataSource.Days = 365
	}
	if cfg.DataSource.Months == 0 {
		cfg.DataSource.Months = 36
	}
	if cfg.Schedule.DailyCron == "" {
		cfg.Schedule.DailyCron = "0 0 22 * * 1-5"
	}
	if cfg.Schedule.WeeklyCron == "" {
		cfg.Schedule.WeeklyCron = "0 0 8 * * 1"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/trend_council.db"
	}
	if cfg.Indicators.MACD == (MACDConfig{}) {
		cfg.Indicators.MACD = MACDConfig{FastPeriod: 12, SlowPeriod: 26, SignalPeriod: 9}
	}
	if cfg.Indicators.RSI == (RSIConfig{}) {
		cfg.Indicators.RSI = RSIConfig{Period: 14, Overbought: 70, Oversold: 30, ExtremeOverbought: 90, ExtremeOversold: 10}
	}
	if len(cfg.Indicators.SMA.Periods) == 0 {
		cfg.Indicators.SMA.Periods = []int{20, 50}
	}
	if cfg.Indicators.SMADelta == (SMADeltaConfig{}) {
		cfg.Indicators.SMADelta = SMADeltaConfig{ShortPeriod: 6, LongPeriod: 12}
	}
	if cfg.Indicators.Supertrend == (SupertrendConfig{}) {
		cfg.Indicators.Supertrend = SupertrendConfig{ATRLength: 10, Multiplier: 3}
	}
	if cfg.Orchestrator.Mode == "" {
		cfg.Orchestrator.Mode = "parallel"
	}
	if cfg.Orchestrator.MinBuyConditions == 0 {
		cfg.Orchestrator.MinBuyConditions = 2
	}
	if cfg.Orchestrator.TimeoutSeconds == 0 {
		cfg.Orchestrator.TimeoutSeconds = 60
	}

	return cfg, nil
}

// Validate checks that all required fields are set and consistent.
func (c *Config) Validate() error {
	if c.DataSource.Symbol == "" {
		return fmt.Errorf("data_source.symbol is required")
	}
	if c.DataSource.Source != "yahoo" && c.DataSource.Source != "csv" {
		return fmt.Errorf("data_source.source must be yahoo or csv, got %q", c.DataSource.Source)
	}
	if c.DataSource.Source == "csv" && c.DataSource.CSVDir == "" {
		return fmt.Errorf("data_source.csv_dir is required for the csv source")
	}
	if m := c.Orchestrator.Mode; m != "parallel" && m != "sequential" {
		return fmt.Errorf("orchestrator.mode must be parallel or sequential, got %q", m)
	}
	if c.Orchestrator.MinBuyConditions < 0 || c.Orchestrator.MinBuyConditions > 4 {
		return fmt.Errorf("orchestrator.min_buy_conditions must be within [0, 4]")
	}
	if err := c.Indicators.MACD.Validate(); err != nil {
		return err
	}
	if err := c.Indicators.RSI.Validate(); err != nil {
		return err
	}
	if err := c.Indicators.SMA.Validate(); err != nil {
		return err
	}
	if err := c.Indicators.SMADelta.Validate(); err != nil {
		return err
	}
	if err := c.Indicators.Supertrend.Validate(); err != nil {
		return err
	}
	return nil
}
