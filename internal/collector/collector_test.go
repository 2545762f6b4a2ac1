package collector

import (
	"errors"
	"testing"

	"TrendCouncil/internal/model"
	"TrendCouncil/internal/store"
)

type failingFetcher struct{}

func (failingFetcher) Name() string { return "failing" }
func (failingFetcher) FetchDailyBars(string, int) ([]model.Bar, error) {
	return nil, errors.New("source down")
}
func (failingFetcher) FetchMonthlyBars(string, int) ([]model.Bar, error) {
	return nil, errors.New("source down")
}

// memStore records saves and serves canned bars.
type memStore struct {
	saved map[string][]model.Bar
	bars  map[string][]model.Bar
}

func newMemStore() *memStore {
	return &memStore{saved: map[string][]model.Bar{}, bars: map[string][]model.Bar{}}
}

func (m *memStore) SaveBars(symbol, timeframe string, bars []model.Bar) error {
	m.saved[timeframe] = bars
	return nil
}

func (m *memStore) LoadBars(symbol, timeframe string, limit int) ([]model.Bar, error) {
	return m.bars[timeframe], nil
}

func (m *memStore) Close() error { return nil }

func TestCollect_CachesFetchedBars(t *testing.T) {
	st := newMemStore()
	col := New(&MockFetcher{}, st, "SPX500", 30, 12)

	daily, monthly, err := col.Collect()
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if daily.Len() != 30 {
		t.Errorf("expected 30 daily bars, got %d", daily.Len())
	}
	if monthly == nil || monthly.Len() != 12 {
		t.Error("expected a native monthly series from the fetcher")
	}
	if len(st.saved[store.TimeframeDaily]) != 30 || len(st.saved[store.TimeframeMonthly]) != 12 {
		t.Error("fetched bars were not cached")
	}
}

func TestCollect_FallsBackToCache(t *testing.T) {
	st := newMemStore()
	mock := &MockFetcher{}
	cached, _ := mock.FetchDailyBars("SPX500", 20)
	st.bars[store.TimeframeDaily] = cached

	col := New(failingFetcher{}, st, "SPX500", 20, 12)
	daily, monthly, err := col.Collect()
	if err != nil {
		t.Fatalf("collect should fall back to cache: %v", err)
	}
	if daily.Len() != 20 {
		t.Errorf("expected 20 cached bars, got %d", daily.Len())
	}
	// No cached monthly bars: caller resamples instead.
	if monthly != nil {
		t.Error("expected nil monthly series when neither source nor cache has bars")
	}
}

func TestCollect_NoSourceNoCache(t *testing.T) {
	col := New(failingFetcher{}, store.NoopStore{}, "SPX500", 20, 12)
	if _, _, err := col.Collect(); err == nil {
		t.Fatal("expected error when source and cache are both empty")
	}
}
