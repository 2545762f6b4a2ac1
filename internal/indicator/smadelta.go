package indicator

import (
	"fmt"
	"math"

	"TrendCouncil/internal/config"
	"TrendCouncil/internal/model"
	"TrendCouncil/internal/series"
)

// SMADeltaSummary is the full short-vs-long SMA spread report. It is
// designed for monthly bars, where the sign and slope of the spread track
// the broad cycle.
type SMADeltaSummary struct {
	Close              float64
	ShortSMA           float64
	LongSMA            float64
	Delta              float64
	DeltaPercent       float64
	Trend              string // quadrant, e.g. "Negative but Rising"
	TrendStrength      string // STRONGLY_BULLISH .. STRONGLY_BEARISH
	Direction          string // "Rising" or "Falling"
	IsRising           bool
	IsPositive         bool
	RisingLastTwo      bool
	FavorableForBuy    bool
	Signal             model.Signal
	ConsecutivePeriods int
	Momentum           float64
	LastDeltas         []float64
	Stats              Stats
}

// TradingSignal implements model.Summary.
func (s *SMADeltaSummary) TradingSignal() model.Signal { return s.Signal }

// SMADelta studies the spread between a short and a long simple moving
// average. Whether the spread is rising matters more than its sign: a
// negative spread that is closing is already a buy-side condition.
type SMADelta struct {
	short int
	long  int
}

// NewSMADelta builds the indicator from validated config.
func NewSMADelta(cfg config.SMADeltaConfig) *SMADelta {
	return &SMADelta{short: cfg.ShortPeriod, long: cfg.LongPeriod}
}

func (m *SMADelta) Name() string { return "SMA" }

// MinRows requires the long window plus one bar so the spread has a
// defined change.
func (m *SMADelta) MinRows() int { return m.long + 1 }

func (m *SMADelta) Compute(s *series.Series) (model.Summary, error) {
	closes := s.Closes()
	n := len(closes)

	shortSMA := rollMean(closes, m.short)
	longSMA := rollMean(closes, m.long)

	delta := make([]float64, n)
	deltaPct := make([]float64, n)
	for i := 0; i < n; i++ {
		delta[i] = shortSMA[i] - longSMA[i]
		deltaPct[i] = delta[i] / longSMA[i] * 100
	}
	change := make([]float64, n)
	change[0] = math.NaN()
	for i := 1; i < n; i++ {
		change[i] = delta[i] - delta[i-1]
	}

	s.SetColumn(fmt.Sprintf("sma_%d", m.short), shortSMA)
	s.SetColumn(fmt.Sprintf("sma_%d", m.long), longSMA)
	s.SetColumn("sma_delta", delta)
	s.SetColumn("sma_delta_change", change)
	s.SetColumn("sma_delta_percent", deltaPct)

	cur := n - 1
	curDelta := delta[cur]
	curChange := change[cur]
	if math.IsNaN(curDelta) || math.IsNaN(curChange) {
		return nil, fmt.Errorf("sma delta: spread undefined on the latest bar")
	}

	isRising := curChange > 0
	isPositive := curDelta > 0

	trend, strength := deltaQuadrant(isPositive, isRising)
	direction := "Falling"
	signal := model.SignalSell
	if isRising {
		direction = "Rising"
		signal = model.SignalBuy
	}

	definedDeltas := dropNaN(delta)
	momentum := curChange
	if len(definedDeltas) >= 3 {
		momentum = definedDeltas[len(definedDeltas)-1] - definedDeltas[len(definedDeltas)-3]
	}

	risingLastTwo := false
	if cur >= 2 && !math.IsNaN(change[cur-1]) {
		risingLastTwo = change[cur] > 0 && change[cur-1] > 0
	}

	return &SMADeltaSummary{
		Close:              closes[cur],
		ShortSMA:           shortSMA[cur],
		LongSMA:            longSMA[cur],
		Delta:              curDelta,
		DeltaPercent:       deltaPct[cur],
		Trend:              trend,
		TrendStrength:      strength,
		Direction:          direction,
		IsRising:           isRising,
		IsPositive:         isPositive,
		RisingLastTwo:      risingLastTwo,
		FavorableForBuy:    isRising,
		Signal:             signal,
		ConsecutivePeriods: consecutiveDirection(change),
		Momentum:           momentum,
		LastDeltas:         append([]float64(nil), lastN(definedDeltas, 6)...),
		Stats:              computeStats(definedDeltas),
	}, nil
}

// deltaQuadrant maps sign and slope of the spread onto the 2x2 trend grid.
func deltaQuadrant(positive, rising bool) (trend, strength string) {
	switch {
	case positive && rising:
		return "Positive and Rising", "STRONGLY_BULLISH"
	case !positive && rising:
		return "Negative but Rising", "BULLISH"
	case positive && !rising:
		return "Positive but Falling", "BEARISH"
	default:
		return "Negative and Falling", "STRONGLY_BEARISH"
	}
}

// consecutiveDirection counts how many trailing periods the spread kept
// moving the same way.
func consecutiveDirection(change []float64) int {
	n := len(change)
	if n == 0 || math.IsNaN(change[n-1]) {
		return 0
	}
	rising := change[n-1] > 0
	count := 1
	for i := n - 2; i >= 0; i-- {
		if math.IsNaN(change[i]) || (change[i] > 0) != rising {
			break
		}
		count++
	}
	return count
}
