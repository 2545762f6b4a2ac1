// Package orchestrator fans the voting indicators out over the price
// series and applies the fixed buy rule to their summaries.
package orchestrator

import (
	"context"
	"fmt"
	"log"
	"sync"

	"TrendCouncil/internal/config"
	"TrendCouncil/internal/indicator"
	"TrendCouncil/internal/model"
	"TrendCouncil/internal/series"
)

// Mode selects how the indicator batch executes.
type Mode string

const (
	ModeSequential Mode = "sequential"
	ModeParallel   Mode = "parallel"
)

// Result map keys, one per voting indicator.
const (
	KeyMACD       = "MACD"
	KeyRSI        = "RSI"
	KeySMA        = "SMA"
	KeySupertrend = "Supertrend"
)

// TimeoutError reports an indicator that did not finish before the
// caller's deadline.
type TimeoutError struct {
	Indicator string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("indicator %s timed out", e.Indicator)
}

// Report bundles per-indicator results with the final vote.
type Report struct {
	Mode         Mode
	Results      map[string]*indicator.Result
	Evaluation   model.BuySignalEvaluation
	Consolidated model.ConsolidatedSignals
}

// Orchestrator owns the configured indicator set. MACD, RSI and
// Supertrend run on daily bars; the SMA delta runs on monthly bars. The
// multi-period SMA crossover study is kept for on-demand runs.
type Orchestrator struct {
	macd       *indicator.MACD
	rsi        *indicator.RSI
	smaDelta   *indicator.SMADelta
	supertrend *indicator.Supertrend
	smaCross   *indicator.SMA
	required   int
}

// New builds an orchestrator from validated config.
func New(cfg *config.Config) *Orchestrator {
	return &Orchestrator{
		macd:       indicator.NewMACD(cfg.Indicators.MACD),
		rsi:        indicator.NewRSI(cfg.Indicators.RSI),
		smaDelta:   indicator.NewSMADelta(cfg.Indicators.SMADelta),
		supertrend: indicator.NewSupertrend(cfg.Indicators.Supertrend),
		smaCross:   indicator.NewSMA(cfg.Indicators.SMA),
		required:   cfg.Orchestrator.MinBuyConditions,
	}
}

type task struct {
	key string
	ind indicator.Indicator
	s   *series.Series
}

func (o *Orchestrator) tasks(daily, monthly *series.Series) []task {
	return []task{
		{KeyMACD, o.macd, daily},
		{KeyRSI, o.rsi, daily},
		{KeySMA, o.smaDelta, monthly},
		{KeySupertrend, o.supertrend, daily},
	}
}

// Run executes the voting indicators and evaluates the buy rule. When
// monthly is nil it is derived from daily by calendar-month resampling.
// Sequential and parallel modes produce the same evaluation; only the
// execution strategy differs. Failed indicators contribute unmet
// conditions rather than aborting the batch.
func (o *Orchestrator) Run(ctx context.Context, daily, monthly *series.Series, mode Mode) (*Report, error) {
	if daily == nil || daily.Len() == 0 {
		return nil, indicator.ErrEmptyInput
	}
	if monthly == nil {
		monthly = series.ResampleMonthly(daily)
	}

	var results map[string]*indicator.Result
	if mode == ModeSequential {
		results = o.runSequential(daily, monthly)
	} else {
		mode = ModeParallel
		results = o.runParallel(ctx, daily, monthly)
	}

	eval := o.evaluate(results)
	log.Printf("[INFO] orchestrator: %d/%d conditions met, recommendation %s",
		eval.ConditionsMet, len(eval.Conditions), eval.Recommendation)

	return &Report{
		Mode:         mode,
		Results:      results,
		Evaluation:   eval,
		Consolidated: consolidate(results),
	}, nil
}

func (o *Orchestrator) runSequential(daily, monthly *series.Series) map[string]*indicator.Result {
	tasks := o.tasks(daily, monthly)
	results := make(map[string]*indicator.Result, len(tasks))
	for _, t := range tasks {
		results[t.key] = indicator.Run(t.ind, t.s)
	}
	return results
}

type keyedResult struct {
	key string
	res *indicator.Result
}

// runParallel starts one goroutine per indicator. The result channel is
// buffered to the task count so stragglers never block after a timeout.
func (o *Orchestrator) runParallel(ctx context.Context, daily, monthly *series.Series) map[string]*indicator.Result {
	tasks := o.tasks(daily, monthly)
	ch := make(chan keyedResult, len(tasks))

	var wg sync.WaitGroup
	for _, t := range tasks {
		wg.Add(1)
		go func(t task) {
			defer wg.Done()
			ch <- keyedResult{t.key, indicator.Run(t.ind, t.s)}
		}(t)
	}
	go func() { wg.Wait(); close(ch) }()

	results := make(map[string]*indicator.Result, len(tasks))
	remaining := len(tasks)
	for remaining > 0 {
		select {
		case kr, ok := <-ch:
			if !ok {
				remaining = 0
				break
			}
			results[kr.key] = kr.res
			remaining--
		case <-ctx.Done():
			for _, t := range tasks {
				if _, done := results[t.key]; !done {
					log.Printf("[WARN] %s did not finish before deadline", t.key)
					results[t.key] = indicator.Failed(t.key, &TimeoutError{Indicator: t.key})
				}
			}
			remaining = 0
		}
	}
	return results
}

// RunIndicator runs a single indicator by name against a series. Known
// names are the four voting keys plus SMA_CROSSOVER.
func (o *Orchestrator) RunIndicator(name string, s *series.Series) (*indicator.Result, error) {
	switch name {
	case KeyMACD:
		return indicator.Run(o.macd, s), nil
	case KeyRSI:
		return indicator.Run(o.rsi, s), nil
	case KeySMA:
		return indicator.Run(o.smaDelta, s), nil
	case KeySupertrend:
		return indicator.Run(o.supertrend, s), nil
	case "SMA_CROSSOVER":
		return indicator.Run(o.smaCross, s), nil
	default:
		return nil, fmt.Errorf("unknown indicator %q", name)
	}
}
