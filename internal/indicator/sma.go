package indicator

import (
	"fmt"
	"math"

	"TrendCouncil/internal/config"
	"TrendCouncil/internal/model"
	"TrendCouncil/internal/series"
)

// CrossoverInfo reports a golden/death cross between the shortest and
// longest configured SMA, or the standing alignment when none occurred.
type CrossoverInfo struct {
	Detected    bool
	Pattern     string // "GOLDEN_CROSS" or "DEATH_CROSS" when detected
	State       string // "BULLISH" or "BEARISH" alignment when not
	Description string
}

// SMATrend is the slope view of a single moving average.
type SMATrend struct {
	Direction string // "Rising", "Falling", "Flat" or "Unknown"
	Slope     float64
	Value     float64
}

// Distance is how far price sits from a moving average.
type Distance struct {
	Absolute float64
	Percent  float64
}

// SMASummary is the full moving-average analysis report.
type SMASummary struct {
	Price        float64
	Values       map[int]float64 // NaN while the window is unfilled
	Positions    map[int]string  // "ABOVE", "BELOW" or "N/A"
	Crossover    CrossoverInfo
	Signal       model.Signal
	Trends       map[int]SMATrend
	Overall      string // STRONGLY_BULLISH .. STRONGLY_BEARISH or NEUTRAL
	Alignment    string // "BULLISH", "BEARISH", "MIXED" or "Unknown"
	Distances    map[int]Distance
	BullishCount int
	BearishCount int
}

// TradingSignal implements model.Summary.
func (s *SMASummary) TradingSignal() model.Signal { return s.Signal }

// SMA computes a set of simple moving averages and reads price position,
// crossovers and alignment from them.
type SMA struct {
	periods []int // strictly increasing
}

// NewSMA builds the indicator from validated config.
func NewSMA(cfg config.SMAConfig) *SMA {
	return &SMA{periods: append([]int(nil), cfg.Periods...)}
}

func (m *SMA) Name() string { return "SMA_CROSSOVER" }

// MinRows requires the longest window plus one bar for crossover lookback.
func (m *SMA) MinRows() int { return m.periods[len(m.periods)-1] + 1 }

func (m *SMA) Compute(s *series.Series) (model.Summary, error) {
	closes := s.Closes()
	n := len(closes)
	cur, prev := n-1, n-2
	price := closes[cur]

	cols := make(map[int][]float64, len(m.periods))
	for _, p := range m.periods {
		col := rollMean(closes, p)
		cols[p] = col
		s.SetColumn(fmt.Sprintf("sma_%d", p), col)
	}

	values := make(map[int]float64, len(m.periods))
	positions := make(map[int]string, len(m.periods))
	trends := make(map[int]SMATrend, len(m.periods))
	distances := make(map[int]Distance, len(m.periods))
	bullish, bearish := 0, 0
	rising, falling := 0, 0

	for _, p := range m.periods {
		col := cols[p]
		v := col[cur]
		values[p] = v

		switch {
		case math.IsNaN(v):
			positions[p] = "N/A"
		case price > v:
			positions[p] = "ABOVE"
			bullish++
		default:
			positions[p] = "BELOW"
			bearish++
		}

		trends[p] = smaTrend(col)
		switch trends[p].Direction {
		case "Rising":
			rising++
		case "Falling":
			falling++
		}

		if !math.IsNaN(v) && v != 0 {
			distances[p] = Distance{Absolute: price - v, Percent: (price - v) / v * 100}
		} else {
			distances[p] = Distance{Absolute: math.NaN(), Percent: math.NaN()}
		}
	}

	short := cols[m.periods[0]]
	long := cols[m.periods[len(m.periods)-1]]
	crossover := detectCrossover(short[prev], long[prev], short[cur], long[cur],
		m.periods[0], m.periods[len(m.periods)-1])

	signal := model.SignalNeutral
	switch {
	case crossover.Pattern == "GOLDEN_CROSS":
		signal = model.SignalBuy
	case crossover.Pattern == "DEATH_CROSS":
		signal = model.SignalSell
	case bullish == len(m.periods):
		signal = model.SignalBuy
	case bearish == len(m.periods):
		signal = model.SignalSell
	}

	// Overall trend reads the slopes only; where price sits relative to
	// the averages is reported separately through the positions.
	total := len(m.periods)
	overall := "NEUTRAL"
	switch {
	case rising == total:
		overall = "STRONGLY_BULLISH"
	case falling == total:
		overall = "STRONGLY_BEARISH"
	case rising > falling:
		overall = "BULLISH"
	case falling > rising:
		overall = "BEARISH"
	}

	return &SMASummary{
		Price:        price,
		Values:       values,
		Positions:    positions,
		Crossover:    crossover,
		Signal:       signal,
		Trends:       trends,
		Overall:      overall,
		Alignment:    m.alignment(values),
		Distances:    distances,
		BullishCount: bullish,
		BearishCount: bearish,
	}, nil
}

// smaTrend slopes a moving average over its defined values.
func smaTrend(col []float64) SMATrend {
	defined := dropNaN(col)
	n := len(defined)
	if n < 3 {
		return SMATrend{Direction: "Unknown", Slope: math.NaN(), Value: col[len(col)-1]}
	}
	slope := defined[n-1] - defined[n-3]
	direction := "Flat"
	if slope > 0 {
		direction = "Rising"
	} else if slope < 0 {
		direction = "Falling"
	}
	return SMATrend{Direction: direction, Slope: slope, Value: defined[n-1]}
}

// detectCrossover compares the short and long SMA across the last two
// bars. NaN values fail every comparison, so unfilled windows report
// neither a cross nor a state.
func detectCrossover(prevShort, prevLong, curShort, curLong float64, shortP, longP int) CrossoverInfo {
	switch {
	case prevShort <= prevLong && curShort > curLong:
		return CrossoverInfo{
			Detected:    true,
			Pattern:     "GOLDEN_CROSS",
			Description: fmt.Sprintf("SMA%d crossed above SMA%d", shortP, longP),
		}
	case prevShort >= prevLong && curShort < curLong:
		return CrossoverInfo{
			Detected:    true,
			Pattern:     "DEATH_CROSS",
			Description: fmt.Sprintf("SMA%d crossed below SMA%d", shortP, longP),
		}
	case curShort > curLong:
		return CrossoverInfo{State: "BULLISH", Description: fmt.Sprintf("SMA%d above SMA%d", shortP, longP)}
	case curShort < curLong:
		return CrossoverInfo{State: "BEARISH", Description: fmt.Sprintf("SMA%d below SMA%d", shortP, longP)}
	default:
		return CrossoverInfo{Description: "moving averages not yet established"}
	}
}

// alignment checks for a strict fan: every shorter SMA above the next
// longer one is BULLISH, the exact mirror BEARISH.
func (m *SMA) alignment(values map[int]float64) string {
	for _, p := range m.periods {
		if math.IsNaN(values[p]) {
			return "Unknown"
		}
	}
	asc, desc := true, true
	for i := 1; i < len(m.periods); i++ {
		shorter := values[m.periods[i-1]]
		longer := values[m.periods[i]]
		if shorter <= longer {
			asc = false
		}
		if shorter >= longer {
			desc = false
		}
	}
	switch {
	case asc:
		return "BULLISH"
	case desc:
		return "BEARISH"
	default:
		return "MIXED"
	}
}
