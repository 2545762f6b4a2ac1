package indicator

import (
	"math"

	"TrendCouncil/internal/config"
	"TrendCouncil/internal/model"
	"TrendCouncil/internal/series"
)

// Color is the two-valued Supertrend state.
type Color string

const (
	ColorGreen Color = "Green" // price above the line, uptrend
	ColorRed   Color = "Red"   // price below the line, downtrend
)

// SupertrendSummary is the full Supertrend analysis report.
type SupertrendSummary struct {
	Close           float64
	Value           float64 // the active band the line sits on
	Color           Color
	IsGreen         bool
	Signal          model.Signal
	ATR             float64
	UpperBand       float64
	LowerBand       float64
	Distance        float64 // close minus line
	DistancePercent float64
	Stability       string // "Very Stable", "Stable", "Moderate" or "Volatile"
	FlipsLastFive   int
	TrendDuration   int // consecutive bars on the current color
	Recent          []Color
}

// TradingSignal implements model.Summary.
func (s *SupertrendSummary) TradingSignal() model.Signal { return s.Signal }

// Supertrend computes the ATR-banded trend line. The band recurrence is
// strictly sequential: each bar's band depends on the previous bar's
// ratcheted band, so the column cannot be computed out of order.
type Supertrend struct {
	atrLength  int
	multiplier float64
}

// NewSupertrend builds the indicator from validated config.
func NewSupertrend(cfg config.SupertrendConfig) *Supertrend {
	return &Supertrend{atrLength: cfg.ATRLength, multiplier: cfg.Multiplier}
}

func (st *Supertrend) Name() string { return "Supertrend" }

// MinRows requires the ATR window plus two bars so at least one ratcheted
// transition exists.
func (st *Supertrend) MinRows() int { return st.atrLength + 2 }

func (st *Supertrend) Compute(s *series.Series) (model.Summary, error) {
	highs := s.Highs()
	lows := s.Lows()
	closes := s.Closes()
	n := len(closes)

	// True range; the first bar has no previous close and uses high-low.
	tr := make([]float64, n)
	tr[0] = highs[0] - lows[0]
	for i := 1; i < n; i++ {
		hl := highs[i] - lows[i]
		hc := math.Abs(highs[i] - closes[i-1])
		lc := math.Abs(lows[i] - closes[i-1])
		tr[i] = math.Max(hl, math.Max(hc, lc))
	}
	atr := rollMean(tr, st.atrLength)

	upper := make([]float64, n)
	lower := make([]float64, n)
	for i := 0; i < n; i++ {
		mid := (highs[i] + lows[i]) / 2
		upper[i] = mid + st.multiplier*atr[i]
		lower[i] = mid - st.multiplier*atr[i]
	}

	line := make([]float64, n)
	colors := make([]Color, n)
	direction := make([]float64, n)
	for i := range colors {
		colors[i] = ColorRed
		direction[i] = -1
	}

	for i := 1; i < n; i++ {
		if math.IsNaN(atr[i]) {
			continue
		}
		// Band ratchet: while price stays inside, the upper band may only
		// fall and the lower band may only rise. NaN previous bands fail
		// the comparison and leave the fresh band in place.
		if closes[i-1] <= upper[i-1] {
			upper[i] = math.Min(upper[i], upper[i-1])
		}
		if closes[i-1] >= lower[i-1] {
			lower[i] = math.Max(lower[i], lower[i-1])
		}

		switch {
		case closes[i] > upper[i-1]:
			colors[i] = ColorGreen
			line[i] = lower[i]
		case closes[i] < lower[i-1]:
			colors[i] = ColorRed
			line[i] = upper[i]
		default:
			colors[i] = colors[i-1]
			if colors[i] == ColorGreen {
				line[i] = lower[i]
			} else {
				line[i] = upper[i]
			}
		}
		if colors[i] == ColorGreen {
			direction[i] = 1
		}
	}

	s.SetColumn("atr", atr)
	s.SetColumn("st_upper", upper)
	s.SetColumn("st_lower", lower)
	s.SetColumn("supertrend", line)
	s.SetColumn("supertrend_dir", direction)

	cur := n - 1
	price := closes[cur]
	value := line[cur]
	color := colors[cur]

	distance := price - value
	distancePct := 0.0
	if price != 0 {
		distancePct = distance / price * 100
	}

	flips := countFlips(lastColors(colors, 5))
	signal := model.SignalSell
	if color == ColorGreen {
		signal = model.SignalBuy
	}

	return &SupertrendSummary{
		Close:           price,
		Value:           value,
		Color:           color,
		IsGreen:         color == ColorGreen,
		Signal:          signal,
		ATR:             atr[cur],
		UpperBand:       upper[cur],
		LowerBand:       lower[cur],
		Distance:        distance,
		DistancePercent: distancePct,
		Stability:       stability(flips),
		FlipsLastFive:   flips,
		TrendDuration:   trendDuration(colors),
		Recent:          lastColors(colors, 5),
	}, nil
}

func lastColors(colors []Color, n int) []Color {
	if len(colors) <= n {
		return append([]Color(nil), colors...)
	}
	return append([]Color(nil), colors[len(colors)-n:]...)
}

func countFlips(colors []Color) int {
	flips := 0
	for i := 1; i < len(colors); i++ {
		if colors[i] != colors[i-1] {
			flips++
		}
	}
	return flips
}

func stability(flips int) string {
	switch {
	case flips == 0:
		return "Very Stable"
	case flips == 1:
		return "Stable"
	case flips == 2:
		return "Moderate"
	default:
		return "Volatile"
	}
}

// trendDuration counts trailing bars holding the current color.
func trendDuration(colors []Color) int {
	n := len(colors)
	count := 1
	for i := n - 2; i >= 0; i-- {
		if colors[i] != colors[n-1] {
			break
		}
		count++
	}
	return count
}
