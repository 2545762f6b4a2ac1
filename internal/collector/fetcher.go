package collector

import (
	"math"
	"time"

	"TrendCouncil/internal/model"
)

// Fetcher retrieves OHLCV bars from a market data source.
type Fetcher interface {
	Name() string
	FetchDailyBars(symbol string, days int) ([]model.Bar, error)
	FetchMonthlyBars(symbol string, months int) ([]model.Bar, error)
}

// MockFetcher generates deterministic synthetic bars for tests and dry
// runs: a slow uptrend with a sine wobble.
type MockFetcher struct {
	BasePrice float64
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) base() float64 {
	if m.BasePrice > 0 {
		return m.BasePrice
	}
	return 5000
}

func (m *MockFetcher) bars(count int, step time.Duration) []model.Bar {
	out := make([]model.Bar, 0, count)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	price := m.base()
	for i := 0; i < count; i++ {
		drift := price * 0.001
		wobble := price * 0.01 * math.Sin(float64(i)/7)
		close := price + drift + wobble
		high := math.Max(price, close) * 1.005
		low := math.Min(price, close) * 0.995
		out = append(out, model.Bar{
			Time:   start.Add(time.Duration(i) * step),
			Open:   price,
			High:   high,
			Low:    low,
			Close:  close,
			Volume: 1_000_000,
		})
		price = close
	}
	return out
}

func (m *MockFetcher) FetchDailyBars(symbol string, days int) ([]model.Bar, error) {
	return m.bars(days, 24*time.Hour), nil
}

func (m *MockFetcher) FetchMonthlyBars(symbol string, months int) ([]model.Bar, error) {
	return m.bars(months, 30*24*time.Hour), nil
}
