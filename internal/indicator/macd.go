package indicator

import (
	"fmt"

	"TrendCouncil/internal/config"
	"TrendCouncil/internal/model"
	"TrendCouncil/internal/series"
)

// Season classifies the market phase from the MACD histogram shape.
type Season string

const (
	SeasonSpring  Season = "Spring" // histogram negative and rising
	SeasonSummer  Season = "Summer" // histogram positive and rising
	SeasonAutumn  Season = "Autumn" // histogram positive and falling
	SeasonWinter  Season = "Winter" // histogram negative and falling
	SeasonNeutral Season = "Neutral"
	SeasonUnknown Season = "Unknown"
)

// Bullish reports whether the season favors accumulation.
func (s Season) Bullish() bool { return s == SeasonSpring || s == SeasonSummer }

func (s Season) bearish() bool { return s == SeasonAutumn || s == SeasonWinter }

// SeasonalAnalysis is the histogram-phase view of the MACD.
type SeasonalAnalysis struct {
	CurrentSeason   Season
	IsBullishSeason bool
	HistogramTrend  string // "Increasing", "Decreasing" or "Mixed"
	Momentum        float64
	RecentHistogram []float64
	Distribution    map[Season]int
	Interpretation  string
}

// Recommendation combines the crossover signal with the seasonal phase.
type Recommendation struct {
	Action     model.Signal
	Strength   string // STRONG, MODERATE or WEAK
	Confidence string // HIGH, MEDIUM or LOW
	Confluence bool
	Reasoning  []string
}

// MACDSummary is the full MACD analysis report.
type MACDSummary struct {
	MACDLine       float64
	SignalLine     float64
	Histogram      float64
	Trend          string // BULLISH or BEARISH
	Crossover      string // BULLISH_CROSSOVER, BEARISH_CROSSOVER or ""
	Signal         model.Signal
	Seasonal       SeasonalAnalysis
	Recommendation Recommendation
}

// TradingSignal implements model.Summary.
func (s *MACDSummary) TradingSignal() model.Signal { return s.Signal }

// MACD computes moving average convergence/divergence with the seasonal
// histogram classification layered on top.
type MACD struct {
	fast       int
	slow       int
	signalSpan int
}

// NewMACD builds the indicator from validated config.
func NewMACD(cfg config.MACDConfig) *MACD {
	return &MACD{fast: cfg.FastPeriod, slow: cfg.SlowPeriod, signalSpan: cfg.SignalPeriod}
}

func (m *MACD) Name() string { return "MACD" }

// MinRows requires the slow EMA plus the signal span to settle.
func (m *MACD) MinRows() int { return m.slow + m.signalSpan }

func (m *MACD) Compute(s *series.Series) (model.Summary, error) {
	closes := s.Closes()
	fastEMA := ewma(closes, m.fast)
	slowEMA := ewma(closes, m.slow)

	macdLine := make([]float64, len(closes))
	for i := range closes {
		macdLine[i] = fastEMA[i] - slowEMA[i]
	}
	signalLine := ewma(macdLine, m.signalSpan)
	histogram := make([]float64, len(closes))
	for i := range closes {
		histogram[i] = macdLine[i] - signalLine[i]
	}

	s.SetColumn("macd", macdLine)
	s.SetColumn("macd_signal", signalLine)
	s.SetColumn("macd_histogram", histogram)

	n := len(closes)
	cur, prev := n-1, n-2

	trend := "BEARISH"
	if macdLine[cur] > signalLine[cur] {
		trend = "BULLISH"
	}

	crossover := ""
	signal := model.SignalNeutral
	switch {
	case macdLine[prev] <= signalLine[prev] && macdLine[cur] > signalLine[cur]:
		crossover = "BULLISH_CROSSOVER"
		signal = model.SignalBuy
	case macdLine[prev] >= signalLine[prev] && macdLine[cur] < signalLine[cur]:
		crossover = "BEARISH_CROSSOVER"
		signal = model.SignalSell
	}

	seasonal := analyzeSeasons(histogram)

	return &MACDSummary{
		MACDLine:       macdLine[cur],
		SignalLine:     signalLine[cur],
		Histogram:      histogram[cur],
		Trend:          trend,
		Crossover:      crossover,
		Signal:         signal,
		Seasonal:       seasonal,
		Recommendation: recommend(signal, seasonal),
	}, nil
}

// identifySeason classifies one histogram window of three values, oldest
// first. Rising means each value exceeds the one before it; the mirror
// holds for falling. Anything else is Neutral.
func identifySeason(h2, h1, cur float64) Season {
	rising := h1 > h2 && cur > h1
	falling := h1 < h2 && cur < h1
	switch {
	case cur < 0 && rising:
		return SeasonSpring
	case cur > 0 && rising:
		return SeasonSummer
	case cur > 0 && falling:
		return SeasonAutumn
	case cur < 0 && falling:
		return SeasonWinter
	default:
		return SeasonNeutral
	}
}

func analyzeSeasons(histogram []float64) SeasonalAnalysis {
	if len(histogram) < 3 {
		return SeasonalAnalysis{
			CurrentSeason:   SeasonUnknown,
			HistogramTrend:  "Mixed",
			RecentHistogram: append([]float64(nil), histogram...),
			Distribution:    map[Season]int{},
			Interpretation:  "not enough histogram history to classify a season",
		}
	}

	n := len(histogram)
	cur, h1, h2 := histogram[n-1], histogram[n-2], histogram[n-3]
	season := identifySeason(h2, h1, cur)

	histTrend := "Mixed"
	if h1 > h2 && cur > h1 {
		histTrend = "Increasing"
	} else if h1 < h2 && cur < h1 {
		histTrend = "Decreasing"
	}

	dist := make(map[Season]int)
	for i := 2; i < n; i++ {
		dist[identifySeason(histogram[i-2], histogram[i-1], histogram[i])]++
	}

	return SeasonalAnalysis{
		CurrentSeason:   season,
		IsBullishSeason: season.Bullish(),
		HistogramTrend:  histTrend,
		Momentum:        cur - h2,
		RecentHistogram: append([]float64(nil), histogram[n-3:]...),
		Distribution:    dist,
		Interpretation:  interpretSeason(season),
	}
}

func interpretSeason(s Season) string {
	switch s {
	case SeasonSpring:
		return "downtrend losing steam, early accumulation phase"
	case SeasonSummer:
		return "uptrend gaining momentum"
	case SeasonAutumn:
		return "uptrend losing steam, distribution phase"
	case SeasonWinter:
		return "downtrend in force"
	default:
		return "no clear seasonal phase"
	}
}

// recommend merges the crossover signal with the seasonal phase. Agreement
// upgrades the call, conflict downgrades it.
func recommend(signal model.Signal, seasonal SeasonalAnalysis) Recommendation {
	season := seasonal.CurrentSeason
	confluence := (signal == model.SignalBuy && season.Bullish()) ||
		(signal == model.SignalSell && season.bearish())
	conflict := (signal == model.SignalBuy && season.bearish()) ||
		(signal == model.SignalSell && season.Bullish())

	action := signal
	if action == model.SignalNeutral {
		switch {
		case season.Bullish():
			action = model.SignalBuy
		case season.bearish():
			action = model.SignalSell
		}
	}

	rec := Recommendation{Action: action, Strength: "MODERATE", Confidence: "MEDIUM", Confluence: confluence}
	switch {
	case confluence:
		rec.Strength = "STRONG"
		rec.Confidence = "HIGH"
		rec.Reasoning = append(rec.Reasoning,
			fmt.Sprintf("crossover signal %s confirmed by %s season", signal, season))
	case conflict:
		rec.Strength = "WEAK"
		rec.Confidence = "LOW"
		rec.Reasoning = append(rec.Reasoning,
			fmt.Sprintf("crossover signal %s conflicts with %s season", signal, season))
	default:
		rec.Reasoning = append(rec.Reasoning,
			fmt.Sprintf("season %s, no crossover confirmation", season))
	}
	return rec
}
