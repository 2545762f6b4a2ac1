package notifier

import (
	"fmt"
	"sort"
	"strings"

	"TrendCouncil/internal/indicator"
	"TrendCouncil/internal/orchestrator"
)

// FormatReport renders the daily analysis report for Telegram (HTML mode).
func FormatReport(symbol string, rep *orchestrator.Report) string {
	var b strings.Builder

	eval := rep.Evaluation
	icon := "⏸"
	if eval.BuySignal {
		icon = "🟢"
	}
	fmt.Fprintf(&b, "%s <b>%s: %s</b>\n", icon, symbol, eval.Recommendation)
	fmt.Fprintf(&b, "Conditions met: %d/%d (need %d)\n\n", eval.ConditionsMet, len(eval.Conditions), eval.Required)

	for _, c := range eval.Conditions {
		mark := "❌"
		if c.Met {
			mark = "✅"
		}
		fmt.Fprintf(&b, "%s %s: %s\n", mark, c.Name, c.Detail)
	}

	b.WriteString("\n<b>Indicators</b>\n")
	for _, key := range []string{orchestrator.KeyMACD, orchestrator.KeyRSI, orchestrator.KeySMA, orchestrator.KeySupertrend} {
		r, ok := rep.Results[key]
		if !ok {
			continue
		}
		if !r.Completed() {
			fmt.Fprintf(&b, "• %s: failed (%v)\n", key, r.Err)
			continue
		}
		fmt.Fprintf(&b, "• %s: %s, %s\n", key, r.Signal(), summaryLine(r))
	}

	cons := rep.Consolidated
	if cons.Total > 0 {
		fmt.Fprintf(&b, "\nMajority view: %s (%.0f%% of %d indicators)\n",
			cons.Overall, cons.Confidence*100, cons.Total)
	}
	return b.String()
}

func summaryLine(r *indicator.Result) string {
	switch s := r.Summary.(type) {
	case *indicator.MACDSummary:
		return fmt.Sprintf("hist %.3f, season %s", s.Histogram, s.Seasonal.CurrentSeason)
	case *indicator.RSISummary:
		return fmt.Sprintf("%.1f (%s)", s.RSI, s.Zone)
	case *indicator.SMADeltaSummary:
		return fmt.Sprintf("delta %.2f, %s", s.Delta, s.Trend)
	case *indicator.SupertrendSummary:
		return fmt.Sprintf("%s at %.2f, %s", s.Color, s.Value, s.Stability)
	case *indicator.SMASummary:
		return fmt.Sprintf("%s, alignment %s", s.Overall, s.Alignment)
	default:
		return string(r.Signal())
	}
}

// FormatCrossoverReport renders the weekly moving-average deep dive.
func FormatCrossoverReport(symbol string, r *indicator.Result) string {
	if !r.Completed() {
		return fmt.Sprintf("⚠️ <b>%s SMA report unavailable</b>\n%v", symbol, r.Err)
	}
	s, ok := r.Summary.(*indicator.SMASummary)
	if !ok {
		return fmt.Sprintf("⚠️ <b>%s SMA report unavailable</b>", symbol)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📈 <b>%s moving averages</b>\n", symbol)
	fmt.Fprintf(&b, "Price: %.2f | Overall: %s | Alignment: %s\n\n", s.Price, s.Overall, s.Alignment)
	periods := make([]int, 0, len(s.Values))
	for p := range s.Values {
		periods = append(periods, p)
	}
	sort.Ints(periods)
	for _, p := range periods {
		fmt.Fprintf(&b, "• SMA%d: %.2f (%s, %s)\n", p, s.Values[p], s.Positions[p], s.Trends[p].Direction)
	}
	if s.Crossover.Detected {
		fmt.Fprintf(&b, "\n⚡ %s: %s\n", s.Crossover.Pattern, s.Crossover.Description)
	} else if s.Crossover.State != "" {
		fmt.Fprintf(&b, "\nState: %s (%s)\n", s.Crossover.State, s.Crossover.Description)
	}
	fmt.Fprintf(&b, "Signal: %s\n", s.Signal)
	return b.String()
}

// FormatFailure renders a collection or orchestration failure.
func FormatFailure(symbol string, err error) string {
	return fmt.Sprintf("❌ <b>%s analysis failed</b>\n%v", symbol, err)
}

// FormatHelp lists the supported chat commands.
func FormatHelp() string {
	return "Commands:\n• /analyze - run the analysis now\n• /sma - moving average report\n• /help - this message"
}
