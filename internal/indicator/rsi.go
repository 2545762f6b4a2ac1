package indicator

import (
	"fmt"
	"math"

	"TrendCouncil/internal/config"
	"TrendCouncil/internal/model"
	"TrendCouncil/internal/series"
)

// RSITrend describes the recent direction of the RSI line itself.
type RSITrend struct {
	Direction        string // "Rising", "Falling" or "Unknown"
	Strength         string // "Strong", "Moderate" or "Weak"
	Momentum         float64
	ConsecutiveMoves int
	IsTrending       bool
}

// RSISummary is the full RSI analysis report.
type RSISummary struct {
	RSI                    float64
	Zone                   string
	Signal                 model.Signal
	Trend                  RSITrend
	IsAbove90              bool
	AboveExtremeOverbought bool
	BelowExtremeOversold   bool
	Recent                 []float64
	Stats                  Stats
}

// TradingSignal implements model.Summary.
func (s *RSISummary) TradingSignal() model.Signal { return s.Signal }

// RSI computes the relative strength index with zone classification and
// threshold-crossing signals.
type RSI struct {
	period     int
	overbought float64
	oversold   float64
	extremeOB  float64
	extremeOS  float64
}

// NewRSI builds the indicator from validated config.
func NewRSI(cfg config.RSIConfig) *RSI {
	return &RSI{
		period:     cfg.Period,
		overbought: cfg.Overbought,
		oversold:   cfg.Oversold,
		extremeOB:  cfg.ExtremeOverbought,
		extremeOS:  cfg.ExtremeOversold,
	}
}

func (r *RSI) Name() string { return "RSI" }

// MinRows requires one delta more than the averaging window.
func (r *RSI) MinRows() int { return r.period + 1 }

func (r *RSI) Compute(s *series.Series) (model.Summary, error) {
	closes := s.Closes()
	n := len(closes)

	// The first bar has no delta and counts as neither gain nor loss.
	gains := make([]float64, n)
	losses := make([]float64, n)
	for i := 1; i < n; i++ {
		d := closes[i] - closes[i-1]
		if d > 0 {
			gains[i] = d
		} else {
			losses[i] = -d
		}
	}

	avgGain := rollMeanMin1(gains, r.period)
	avgLoss := rollMeanMin1(losses, r.period)

	rsi := make([]float64, n)
	for i := 0; i < n; i++ {
		switch {
		case avgLoss[i] == 0 && avgGain[i] == 0:
			// No movement in the whole window: RS is 0/0, undefined.
			rsi[i] = math.NaN()
		case avgLoss[i] == 0:
			rsi[i] = 100
		default:
			rs := avgGain[i] / avgLoss[i]
			rsi[i] = 100 - 100/(1+rs)
		}
	}
	s.SetColumn("rsi", rsi)

	defined := dropNaN(rsi)
	if len(defined) == 0 {
		return nil, fmt.Errorf("rsi: no defined values over %d bars", n)
	}

	cur := rsi[n-1]
	prev := math.NaN()
	if n >= 2 {
		prev = rsi[n-2]
	}

	zone := r.zone(cur)
	return &RSISummary{
		RSI:                    cur,
		Zone:                   zone,
		Signal:                 r.signal(cur, prev, zone),
		Trend:                  r.trend(defined),
		IsAbove90:              cur > 90,
		AboveExtremeOverbought: cur > r.extremeOB,
		BelowExtremeOversold:   cur < r.extremeOS,
		Recent:                 append([]float64(nil), lastN(defined, 5)...),
		Stats:                  computeStats(defined),
	}, nil
}

// zone classifies an RSI value. NaN falls through every comparison and
// lands on Neutral.
func (r *RSI) zone(v float64) string {
	switch {
	case v > r.extremeOB:
		return "Extreme Overbought"
	case v >= r.overbought:
		return "Overbought"
	case v < r.extremeOS:
		return "Extreme Oversold"
	case v <= r.oversold:
		return "Oversold"
	default:
		return "Neutral"
	}
}

// signal applies the crossing rules in priority order: oversold exits and
// extreme lows buy, overbought entries and extreme highs sell, then the
// standing zone decides.
func (r *RSI) signal(cur, prev float64, zone string) model.Signal {
	switch {
	case prev <= r.oversold && cur > r.oversold:
		return model.SignalBuy
	case cur < r.extremeOS:
		return model.SignalBuy
	case prev < r.overbought && cur >= r.overbought:
		return model.SignalSell
	case cur > r.extremeOB:
		return model.SignalSell
	}
	switch zone {
	case "Overbought", "Extreme Overbought":
		return model.SignalSell
	case "Oversold", "Extreme Oversold":
		return model.SignalBuy
	}
	return model.SignalNeutral
}

// trend looks at the defined RSI values only.
func (r *RSI) trend(defined []float64) RSITrend {
	n := len(defined)
	if n < 2 {
		return RSITrend{Direction: "Unknown", Strength: "Weak"}
	}

	direction := "Falling"
	if defined[n-1] > defined[n-2] {
		direction = "Rising"
	}

	momentum := defined[n-1] - defined[n-2]
	if n >= 3 {
		momentum = defined[n-1] - defined[n-3]
	}

	strength := "Weak"
	if abs := math.Abs(momentum); abs > 10 {
		strength = "Strong"
	} else if abs > 5 {
		strength = "Moderate"
	}

	consecutive := 1
	rising := defined[n-1] > defined[n-2]
	for i := n - 2; i > 0; i-- {
		if (defined[i] > defined[i-1]) != rising {
			break
		}
		consecutive++
	}

	return RSITrend{
		Direction:        direction,
		Strength:         strength,
		Momentum:         momentum,
		ConsecutiveMoves: consecutive,
		IsTrending:       consecutive >= 3,
	}
}
