package indicator

import (
	"math"
	"testing"

	"TrendCouncil/internal/model"
)

func TestSMADelta_NegativeButRisingIsFavorable(t *testing.T) {
	// Decline, then a recovery: the spread is still negative but closing.
	r := Run(NewSMADelta(defaultSMADeltaConfig()), seriesFromCloses(100, 90, 80, 70, 78))
	if !r.Completed() {
		t.Fatalf("unexpected failure: %v", r.Err)
	}
	sum := r.Summary.(*SMADeltaSummary)

	if sum.IsPositive {
		t.Errorf("delta should be negative, got %.2f", sum.Delta)
	}
	if !sum.IsRising {
		t.Error("delta should be rising after the bounce")
	}
	if sum.Trend != "Negative but Rising" || sum.TrendStrength != "BULLISH" {
		t.Errorf("wrong quadrant: %s / %s", sum.Trend, sum.TrendStrength)
	}
	if !sum.FavorableForBuy {
		t.Error("a rising spread is favorable regardless of sign")
	}
	if sum.TradingSignal() != model.SignalBuy {
		t.Errorf("rising spread should signal BUY, got %s", sum.TradingSignal())
	}
}

func TestSMADelta_PositiveButFallingSells(t *testing.T) {
	r := Run(NewSMADelta(defaultSMADeltaConfig()), seriesFromCloses(70, 80, 90, 100, 98))
	if !r.Completed() {
		t.Fatalf("unexpected failure: %v", r.Err)
	}
	sum := r.Summary.(*SMADeltaSummary)

	if !sum.IsPositive || sum.IsRising {
		t.Fatalf("expected positive falling spread: delta=%.2f rising=%v", sum.Delta, sum.IsRising)
	}
	if sum.Trend != "Positive but Falling" || sum.TrendStrength != "BEARISH" {
		t.Errorf("wrong quadrant: %s / %s", sum.Trend, sum.TrendStrength)
	}
	if sum.FavorableForBuy {
		t.Error("a falling spread is never favorable")
	}
	if sum.TradingSignal() != model.SignalSell {
		t.Errorf("falling spread should signal SELL, got %s", sum.TradingSignal())
	}
}

func TestDeltaQuadrant(t *testing.T) {
	cases := []struct {
		positive, rising bool
		trend, strength  string
	}{
		{true, true, "Positive and Rising", "STRONGLY_BULLISH"},
		{false, true, "Negative but Rising", "BULLISH"},
		{true, false, "Positive but Falling", "BEARISH"},
		{false, false, "Negative and Falling", "STRONGLY_BEARISH"},
	}
	for _, tc := range cases {
		trend, strength := deltaQuadrant(tc.positive, tc.rising)
		if trend != tc.trend || strength != tc.strength {
			t.Errorf("quadrant(%v, %v): got %s/%s, want %s/%s",
				tc.positive, tc.rising, trend, strength, tc.trend, tc.strength)
		}
	}
}

func TestConsecutiveDirection(t *testing.T) {
	nan := math.NaN()
	cases := []struct {
		name   string
		change []float64
		want   int
	}{
		{"three rising", []float64{nan, -1, 2, 3, 4}, 3},
		{"flip at end", []float64{nan, 2, 2, -1}, 1},
		{"nan tail", []float64{nan, nan}, 0},
		{"nan breaks run", []float64{nan, 1, nan, 2, 3}, 2},
		{"empty", nil, 0},
	}
	for _, tc := range cases {
		if got := consecutiveDirection(tc.change); got != tc.want {
			t.Errorf("%s: got %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestSMADelta_DeltaColumnMatchesSMAs(t *testing.T) {
	r := Run(NewSMADelta(defaultSMADeltaConfig()), seriesFromCloses(risingCloses(12, 50, 5)...))
	if !r.Completed() {
		t.Fatalf("unexpected failure: %v", r.Err)
	}
	short, _ := r.Series.Column("sma_2")
	long, _ := r.Series.Column("sma_3")
	delta, _ := r.Series.Column("sma_delta")
	for i := range delta {
		if math.IsNaN(delta[i]) {
			if !math.IsNaN(long[i]) {
				t.Fatalf("row %d: delta NaN while long SMA defined", i)
			}
			continue
		}
		if math.Abs(delta[i]-(short[i]-long[i])) > 1e-9 {
			t.Fatalf("row %d: delta %.6f != short-long %.6f", i, delta[i], short[i]-long[i])
		}
	}
}

func TestSMADelta_MinRows(t *testing.T) {
	if got := NewSMADelta(defaultSMADeltaConfig()).MinRows(); got != 4 {
		t.Errorf("expected MinRows 4 for long=3, got %d", got)
	}
}
