package model

// Signal is a discrete trading signal derived by an indicator.
type Signal string

const (
	SignalBuy     Signal = "BUY"
	SignalSell    Signal = "SELL"
	SignalNeutral Signal = "NEUTRAL"
)

// Status marks whether an indicator run produced a usable summary.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Summary is implemented by every per-indicator analysis report.
type Summary interface {
	// TradingSignal returns the BUY/SELL/NEUTRAL conclusion of the report.
	TradingSignal() Signal
}
