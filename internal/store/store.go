// Package store caches fetched price bars so analysis can still run when
// the upstream data source is unavailable.
package store

import "TrendCouncil/internal/model"

// Timeframe labels for cached bars.
const (
	TimeframeDaily   = "daily"
	TimeframeMonthly = "monthly"
)

// Store persists and replays OHLCV bars per symbol and timeframe.
type Store interface {
	SaveBars(symbol, timeframe string, bars []model.Bar) error
	LoadBars(symbol, timeframe string, limit int) ([]model.Bar, error)
	Close() error
}

// NoopStore is used when no database is configured.
type NoopStore struct{}

func (NoopStore) SaveBars(string, string, []model.Bar) error { return nil }

func (NoopStore) LoadBars(string, string, int) ([]model.Bar, error) { return nil, nil }

func (NoopStore) Close() error { return nil }
