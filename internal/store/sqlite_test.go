package store

import (
	"path/filepath"
	"testing"
	"time"

	"TrendCouncil/internal/model"
)

func testBars(count int) []model.Bar {
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.Bar, count)
	for i := range bars {
		c := 100 + float64(i)
		bars[i] = model.Bar{Time: t0.AddDate(0, 0, i), Open: c - 1, High: c + 2, Low: c - 2, Close: c, Volume: float64(i) * 10}
	}
	return bars
}

func TestSQLiteStore_SaveLoadRoundtrip(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "bars.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	bars := testBars(10)
	if err := s.SaveBars("SPX500", TimeframeDaily, bars); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.LoadBars("SPX500", TimeframeDaily, 0)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 10 {
		t.Fatalf("expected 10 bars, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if !got[i-1].Time.Before(got[i].Time) {
			t.Fatal("bars not ascending")
		}
	}
	if got[3].Close != bars[3].Close || got[3].Volume != bars[3].Volume {
		t.Errorf("bar 3 mismatch: %+v vs %+v", got[3], bars[3])
	}
}

func TestSQLiteStore_UpsertIsIdempotent(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "bars.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	bars := testBars(5)
	if err := s.SaveBars("SPX500", TimeframeDaily, bars); err != nil {
		t.Fatalf("save: %v", err)
	}
	// Re-save with revised closes; rows must be replaced, not duplicated.
	bars[4].Close = 999
	if err := s.SaveBars("SPX500", TimeframeDaily, bars); err != nil {
		t.Fatalf("resave: %v", err)
	}

	got, err := s.LoadBars("SPX500", TimeframeDaily, 0)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("expected 5 bars after upsert, got %d", len(got))
	}
	if got[4].Close != 999 {
		t.Errorf("upsert did not replace close: %.0f", got[4].Close)
	}
}

func TestSQLiteStore_LimitReturnsMostRecent(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "bars.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	if err := s.SaveBars("SPX500", TimeframeMonthly, testBars(8)); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.LoadBars("SPX500", TimeframeMonthly, 3)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 bars, got %d", len(got))
	}
	if got[2].Close != 107 {
		t.Errorf("expected the most recent bars, last close %.0f", got[2].Close)
	}
}

func TestSQLiteStore_TimeframesAreIsolated(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "bars.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	if err := s.SaveBars("SPX500", TimeframeDaily, testBars(4)); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.LoadBars("SPX500", TimeframeMonthly, 0)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("monthly lookup should be empty, got %d bars", len(got))
	}
}
