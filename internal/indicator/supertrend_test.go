package indicator

import (
	"math"
	"testing"
	"time"

	"TrendCouncil/internal/config"
	"TrendCouncil/internal/model"
	"TrendCouncil/internal/series"
)

func supertrendConfig() config.SupertrendConfig {
	return config.SupertrendConfig{ATRLength: 2, Multiplier: 1}
}

// trendBars builds bars with a tight range stepping by step each bar.
func trendBars(count int, start, step float64) *series.Series {
	bars := make([]model.Bar, count)
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	price := start
	for i := range bars {
		bars[i] = model.Bar{
			Time:   t0.AddDate(0, 0, i),
			Open:   price,
			High:   price + 1,
			Low:    price - 1,
			Close:  price,
			Volume: 1000,
		}
		price += step
	}
	return series.New(bars)
}

func TestSupertrend_SteadyRiseTurnsGreen(t *testing.T) {
	r := Run(NewSupertrend(supertrendConfig()), trendBars(12, 100, 10))
	if !r.Completed() {
		t.Fatalf("unexpected failure: %v", r.Err)
	}
	sum := r.Summary.(*SupertrendSummary)

	if sum.Color != ColorGreen || !sum.IsGreen {
		t.Fatalf("expected Green in a steady rise, got %s", sum.Color)
	}
	if sum.TradingSignal() != model.SignalBuy {
		t.Errorf("Green should signal BUY, got %s", sum.TradingSignal())
	}
	if sum.Distance <= 0 {
		t.Errorf("price should sit above the line: distance %.2f", sum.Distance)
	}
	// The percentage is relative to the close, not the line.
	if want := sum.Distance / sum.Close * 100; math.Abs(sum.DistancePercent-want) > 1e-9 {
		t.Errorf("distance percent %.6f, want %.6f", sum.DistancePercent, want)
	}
	if sum.FlipsLastFive != 0 || sum.Stability != "Very Stable" {
		t.Errorf("expected a stable trend, got %d flips (%s)", sum.FlipsLastFive, sum.Stability)
	}
	if sum.TrendDuration < 5 {
		t.Errorf("expected a long Green run, got duration %d", sum.TrendDuration)
	}

	// Once Green, a monotone rise must never flip back to Red.
	dir, _ := r.Series.Column("supertrend_dir")
	seenGreen := false
	for i, d := range dir {
		if d > 0 {
			seenGreen = true
		} else if seenGreen {
			t.Fatalf("bar %d flipped back to Red in a monotone rise", i)
		}
	}
	if !seenGreen {
		t.Fatal("trend never turned Green")
	}
}

func TestSupertrend_SteadyFallStaysRed(t *testing.T) {
	r := Run(NewSupertrend(supertrendConfig()), trendBars(12, 300, -10))
	if !r.Completed() {
		t.Fatalf("unexpected failure: %v", r.Err)
	}
	sum := r.Summary.(*SupertrendSummary)

	if sum.Color != ColorRed || sum.IsGreen {
		t.Fatalf("expected Red in a steady fall, got %s", sum.Color)
	}
	if sum.TradingSignal() != model.SignalSell {
		t.Errorf("Red should signal SELL, got %s", sum.TradingSignal())
	}
	// Red from the first bar on, never flipped.
	if sum.TrendDuration != 12 {
		t.Errorf("expected duration 12, got %d", sum.TrendDuration)
	}
}

func TestSupertrend_Deterministic(t *testing.T) {
	s := trendBars(30, 100, 4)
	first := Run(NewSupertrend(supertrendConfig()), s)
	second := Run(NewSupertrend(supertrendConfig()), s)
	if !first.Completed() || !second.Completed() {
		t.Fatalf("unexpected failure: %v / %v", first.Err, second.Err)
	}
	a := first.Summary.(*SupertrendSummary)
	b := second.Summary.(*SupertrendSummary)
	if a.Value != b.Value || a.Color != b.Color || a.TrendDuration != b.TrendDuration {
		t.Errorf("reruns disagree: %+v vs %+v", a, b)
	}
}

func TestSupertrend_ATRWarmupRowsSkipped(t *testing.T) {
	cfg := config.SupertrendConfig{ATRLength: 4, Multiplier: 2}
	r := Run(NewSupertrend(cfg), trendBars(20, 100, 5))
	if !r.Completed() {
		t.Fatalf("unexpected failure: %v", r.Err)
	}
	atr, _ := r.Series.Column("atr")
	line, _ := r.Series.Column("supertrend")
	for i := 0; i < 3; i++ {
		if !math.IsNaN(atr[i]) {
			t.Fatalf("atr row %d should be NaN during warmup", i)
		}
		if line[i] != 0 {
			t.Fatalf("supertrend row %d should stay at its 0 initialization", i)
		}
	}
}

func TestStabilityBuckets(t *testing.T) {
	cases := []struct {
		flips int
		want  string
	}{
		{0, "Very Stable"},
		{1, "Stable"},
		{2, "Moderate"},
		{3, "Volatile"},
		{4, "Volatile"},
	}
	for _, tc := range cases {
		if got := stability(tc.flips); got != tc.want {
			t.Errorf("stability(%d): got %s, want %s", tc.flips, got, tc.want)
		}
	}
}

func TestCountFlips(t *testing.T) {
	colors := []Color{ColorRed, ColorGreen, ColorGreen, ColorRed, ColorGreen}
	if got := countFlips(colors); got != 3 {
		t.Errorf("expected 3 flips, got %d", got)
	}
}

func TestSupertrend_MinRows(t *testing.T) {
	if got := NewSupertrend(supertrendConfig()).MinRows(); got != 4 {
		t.Errorf("expected MinRows 4 for atr_length 2, got %d", got)
	}
}
