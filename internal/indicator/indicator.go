// Package indicator implements the technical indicators and their signal
// derivation over an OHLCV series: MACD with seasonal classification, RSI,
// SMA crossovers, the monthly SMA delta, and Supertrend.
package indicator

import (
	"fmt"
	"log"
	"math"

	"TrendCouncil/internal/model"
	"TrendCouncil/internal/series"
)

// Indicator is the common contract of all technical indicators.
type Indicator interface {
	// Name returns the identity used to tag results.
	Name() string
	// MinRows returns the minimum number of bars required.
	MinRows() int
	// Compute attaches derived columns to s and returns the analysis
	// summary. s is private to the call and safe to mutate.
	Compute(s *series.Series) (model.Summary, error)
}

// Result is the uniform envelope returned for every indicator run.
// Summary and Err are mutually exclusive: completed runs carry a summary,
// failed runs carry an error.
type Result struct {
	Indicator string
	Status    model.Status
	Series    *series.Series
	Summary   model.Summary
	Err       error
}

// Completed reports whether the run produced a usable summary.
func (r *Result) Completed() bool { return r.Status == model.StatusCompleted }

// Signal returns the trading signal, NEUTRAL when the run failed.
func (r *Result) Signal() model.Signal {
	if r.Summary == nil {
		return model.SignalNeutral
	}
	return r.Summary.TradingSignal()
}

// Run validates the input, clones it, and executes the indicator with
// panic isolation. Any failure becomes a failed Result rather than an
// error or a crash, so one bad indicator never takes down the batch.
func Run(ind Indicator, s *series.Series) *Result {
	if err := validate(ind, s); err != nil {
		log.Printf("[WARN] %s: %v", ind.Name(), err)
		return Failed(ind.Name(), err)
	}
	owned := s.Clone()
	summary, err := compute(ind, owned)
	if err != nil {
		log.Printf("[ERROR] %s: %v", ind.Name(), err)
		return Failed(ind.Name(), err)
	}
	return &Result{
		Indicator: ind.Name(),
		Status:    model.StatusCompleted,
		Series:    owned,
		Summary:   summary,
	}
}

// Failed builds a failed Result for an indicator.
func Failed(name string, err error) *Result {
	return &Result{Indicator: name, Status: model.StatusFailed, Err: err}
}

func compute(ind Indicator, s *series.Series) (summary model.Summary, err error) {
	defer func() {
		if r := recover(); r != nil {
			summary = nil
			err = &ExecutionError{Indicator: ind.Name(), Reason: fmt.Sprint(r)}
		}
	}()
	return ind.Compute(s)
}

func validate(ind Indicator, s *series.Series) error {
	if s == nil || s.Len() == 0 {
		return ErrEmptyInput
	}
	for i := 0; i < s.Len(); i++ {
		b := s.Bar(i)
		switch {
		case math.IsNaN(b.Open):
			return &MissingFieldError{Field: "open", Index: i}
		case math.IsNaN(b.High):
			return &MissingFieldError{Field: "high", Index: i}
		case math.IsNaN(b.Low):
			return &MissingFieldError{Field: "low", Index: i}
		case math.IsNaN(b.Close):
			return &MissingFieldError{Field: "close", Index: i}
		}
	}
	if s.Len() < ind.MinRows() {
		return &InsufficientDataError{Indicator: ind.Name(), Required: ind.MinRows(), Actual: s.Len()}
	}
	return nil
}
