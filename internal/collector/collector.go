// Package collector retrieves OHLCV bars from a configured source and
// prepares the daily and monthly series the indicators run on.
package collector

import (
	"fmt"
	"log"

	"TrendCouncil/internal/series"
	"TrendCouncil/internal/store"
)

// Collector fetches price data and caches it. When the upstream source
// fails, it falls back to the most recent cached bars.
type Collector struct {
	Fetcher Fetcher
	Store   store.Store
	Symbol  string
	Days    int
	Months  int
}

// New creates a Collector.
func New(f Fetcher, st store.Store, symbol string, days, months int) *Collector {
	return &Collector{Fetcher: f, Store: st, Symbol: symbol, Days: days, Months: months}
}

// Collect returns the daily and monthly series. The monthly series may be
// nil when neither the source nor the cache can provide it; callers then
// resample the daily series instead. A nil daily series is an error.
func (c *Collector) Collect() (daily, monthly *series.Series, err error) {
	dailyBars, err := c.Fetcher.FetchDailyBars(c.Symbol, c.Days)
	if err != nil {
		log.Printf("[WARN] %s daily fetch failed, trying cache: %v", c.Fetcher.Name(), err)
		dailyBars, err = c.Store.LoadBars(c.Symbol, store.TimeframeDaily, c.Days)
		if err != nil || len(dailyBars) == 0 {
			return nil, nil, fmt.Errorf("collect daily bars for %s: source and cache both unavailable", c.Symbol)
		}
		log.Printf("[INFO] using %d cached daily bars for %s", len(dailyBars), c.Symbol)
	} else if err := c.Store.SaveBars(c.Symbol, store.TimeframeDaily, dailyBars); err != nil {
		log.Printf("[WARN] cache daily bars: %v", err)
	}

	monthlyBars, err := c.Fetcher.FetchMonthlyBars(c.Symbol, c.Months)
	if err != nil {
		log.Printf("[WARN] %s monthly fetch failed, trying cache: %v", c.Fetcher.Name(), err)
		monthlyBars, err = c.Store.LoadBars(c.Symbol, store.TimeframeMonthly, c.Months)
		if err != nil {
			log.Printf("[WARN] load cached monthly bars: %v", err)
			monthlyBars = nil
		}
	} else if err := c.Store.SaveBars(c.Symbol, store.TimeframeMonthly, monthlyBars); err != nil {
		log.Printf("[WARN] cache monthly bars: %v", err)
	}

	daily = series.New(dailyBars)
	if len(monthlyBars) > 0 {
		monthly = series.New(monthlyBars)
	}
	return daily, monthly, nil
}
