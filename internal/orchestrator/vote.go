package orchestrator

import (
	"fmt"

	"TrendCouncil/internal/indicator"
	"TrendCouncil/internal/model"
)

// evaluate applies the fixed four-condition buy rule. A failed or missing
// indicator simply leaves its condition unmet, so a fully degraded batch
// still yields a 0/4 HOLD/WAIT.
func (o *Orchestrator) evaluate(results map[string]*indicator.Result) model.BuySignalEvaluation {
	conditions := []model.ConditionEvaluation{
		o.macdSeasonCondition(results[KeyMACD]),
		o.rsiCondition(results[KeyRSI]),
		o.smaDeltaCondition(results[KeySMA]),
		o.supertrendCondition(results[KeySupertrend]),
	}

	met := 0
	for _, c := range conditions {
		if c.Met {
			met++
		}
	}

	buy := met >= o.required
	rec := model.RecommendationHold
	if buy {
		rec = model.RecommendationBuy
	}
	return model.BuySignalEvaluation{
		Conditions:     conditions,
		ConditionsMet:  met,
		Required:       o.required,
		BuySignal:      buy,
		Recommendation: rec,
	}
}

// Condition 1: the MACD histogram season is Spring or Summer.
func (o *Orchestrator) macdSeasonCondition(r *indicator.Result) model.ConditionEvaluation {
	c := model.ConditionEvaluation{Name: "macd_bullish_season", Detail: "MACD unavailable"}
	if r == nil || !r.Completed() {
		return c
	}
	if sum, ok := r.Summary.(*indicator.MACDSummary); ok {
		c.Met = sum.Seasonal.CurrentSeason.Bullish()
		c.Detail = fmt.Sprintf("season=%s", sum.Seasonal.CurrentSeason)
	}
	return c
}

// Condition 2: RSI is not above 90. The bound is a hard 90, not the
// configured extreme threshold.
func (o *Orchestrator) rsiCondition(r *indicator.Result) model.ConditionEvaluation {
	c := model.ConditionEvaluation{Name: "rsi_not_above_90", Detail: "RSI unavailable"}
	if r == nil || !r.Completed() {
		return c
	}
	if sum, ok := r.Summary.(*indicator.RSISummary); ok {
		c.Met = !sum.IsAbove90
		c.Detail = fmt.Sprintf("rsi=%.2f", sum.RSI)
	}
	return c
}

// Condition 3: the monthly SMA spread is rising.
func (o *Orchestrator) smaDeltaCondition(r *indicator.Result) model.ConditionEvaluation {
	c := model.ConditionEvaluation{Name: "sma_delta_favorable", Detail: "SMA delta unavailable"}
	if r == nil || !r.Completed() {
		return c
	}
	if sum, ok := r.Summary.(*indicator.SMADeltaSummary); ok {
		c.Met = sum.FavorableForBuy
		c.Detail = fmt.Sprintf("delta=%.2f trend=%s", sum.Delta, sum.Trend)
	}
	return c
}

// Condition 4: the Supertrend line is green.
func (o *Orchestrator) supertrendCondition(r *indicator.Result) model.ConditionEvaluation {
	c := model.ConditionEvaluation{Name: "supertrend_green", Detail: "Supertrend unavailable"}
	if r == nil || !r.Completed() {
		return c
	}
	if sum, ok := r.Summary.(*indicator.SupertrendSummary); ok {
		c.Met = sum.IsGreen
		c.Detail = fmt.Sprintf("color=%s value=%.2f", sum.Color, sum.Value)
	}
	return c
}

// consolidate tallies the per-indicator trading signals into a simple
// majority view, a secondary read next to the condition vote.
func consolidate(results map[string]*indicator.Result) model.ConsolidatedSignals {
	counts := map[model.Signal]int{}
	total := 0
	for _, r := range results {
		if r == nil || !r.Completed() {
			continue
		}
		counts[r.Signal()]++
		total++
	}

	overall := model.SignalNeutral
	best := 0
	for _, sig := range []model.Signal{model.SignalBuy, model.SignalSell, model.SignalNeutral} {
		if counts[sig] > best {
			best = counts[sig]
			overall = sig
		}
	}

	confidence := 0.0
	if total > 0 {
		confidence = float64(best) / float64(total)
	}
	return model.ConsolidatedSignals{
		Overall:    overall,
		Counts:     counts,
		Total:      total,
		Confidence: confidence,
	}
}
