package model

// ConditionEvaluation records one voting condition of the buy rule.
type ConditionEvaluation struct {
	Name   string
	Met    bool
	Detail string // contributing metric, human readable
}

// BuySignalEvaluation is the outcome of the fixed condition vote.
type BuySignalEvaluation struct {
	Conditions     []ConditionEvaluation
	ConditionsMet  int
	Required       int
	BuySignal      bool
	Recommendation string
}

// Recommendation values produced by the vote.
const (
	RecommendationBuy  = "BUY"
	RecommendationHold = "HOLD/WAIT"
)

// ConsolidatedSignals is the secondary majority view across indicators.
type ConsolidatedSignals struct {
	Overall    Signal
	Counts     map[Signal]int
	Total      int
	Confidence float64 // share of the winning signal, 0..1
}
