package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Indicators.MACD.FastPeriod != 12 || cfg.Indicators.MACD.SlowPeriod != 26 || cfg.Indicators.MACD.SignalPeriod != 9 {
		t.Errorf("wrong MACD defaults: %+v", cfg.Indicators.MACD)
	}
	if cfg.Indicators.RSI.Period != 14 {
		t.Errorf("wrong RSI default period: %d", cfg.Indicators.RSI.Period)
	}
	if len(cfg.Indicators.SMA.Periods) != 2 {
		t.Errorf("wrong SMA default periods: %v", cfg.Indicators.SMA.Periods)
	}
	if cfg.Indicators.SMADelta.ShortPeriod != 6 || cfg.Indicators.SMADelta.LongPeriod != 12 {
		t.Errorf("wrong SMA delta defaults: %+v", cfg.Indicators.SMADelta)
	}
	if cfg.Orchestrator.Mode != "parallel" || cfg.Orchestrator.MinBuyConditions != 2 {
		t.Errorf("wrong orchestrator defaults: %+v", cfg.Orchestrator)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_YAMLAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
data_source:
  symbol: NDX100
indicators:
  macd:
    fast_period: 5
    slow_period: 20
    signal_period: 7
orchestrator:
  mode: sequential
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SYMBOL", "DAX40")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DataSource.Symbol != "DAX40" {
		t.Errorf("env should override yaml symbol, got %s", cfg.DataSource.Symbol)
	}
	if cfg.Indicators.MACD.FastPeriod != 5 || cfg.Indicators.MACD.SlowPeriod != 20 {
		t.Errorf("yaml MACD ignored: %+v", cfg.Indicators.MACD)
	}
	if cfg.Orchestrator.Mode != "sequential" {
		t.Errorf("yaml mode ignored: %s", cfg.Orchestrator.Mode)
	}
}

func TestValidate_Invariants(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"macd fast >= slow", func(c *Config) { c.Indicators.MACD.FastPeriod = 30 }},
		{"rsi oversold >= overbought", func(c *Config) { c.Indicators.RSI.Oversold = 80 }},
		{"rsi overbought > 100", func(c *Config) { c.Indicators.RSI.Overbought = 120 }},
		{"rsi extreme out of range", func(c *Config) { c.Indicators.RSI.ExtremeOverbought = 101 }},
		{"sma periods not increasing", func(c *Config) { c.Indicators.SMA.Periods = []int{50, 20} }},
		{"sma delta short >= long", func(c *Config) { c.Indicators.SMADelta.ShortPeriod = 12 }},
		{"supertrend atr zero", func(c *Config) { c.Indicators.Supertrend.ATRLength = 0 }},
		{"supertrend multiplier negative", func(c *Config) { c.Indicators.Supertrend.Multiplier = -1 }},
		{"bad mode", func(c *Config) { c.Orchestrator.Mode = "turbo" }},
		{"csv source without dir", func(c *Config) { c.DataSource.Source = "csv" }},
		{"missing symbol", func(c *Config) { c.DataSource.Symbol = "" }},
	}
	for _, tc := range cases {
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		if err != nil {
			t.Fatalf("%s: load: %v", tc.name, err)
		}
		tc.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}
