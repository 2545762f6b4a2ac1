// Package scheduler drives the collect → analyze → notify cycle on cron
// schedules and serves chat commands.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"TrendCouncil/internal/collector"
	"TrendCouncil/internal/notifier"
	"TrendCouncil/internal/orchestrator"

	"github.com/robfig/cron/v3"
)

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron         *cron.Cron
	Collector    *collector.Collector
	Orchestrator *orchestrator.Orchestrator
	Notifier     *notifier.TelegramNotifier
	Symbol       string
	Mode         orchestrator.Mode
	Timeout      time.Duration // 0 means wait forever
	Ctx          context.Context
}

// New creates a Scheduler. The notifier may be nil for headless runs.
func New(ctx context.Context, col *collector.Collector, orch *orchestrator.Orchestrator,
	tn *notifier.TelegramNotifier, symbol string, mode orchestrator.Mode, timeout time.Duration) *Scheduler {
	return &Scheduler{
		Cron:         cron.New(cron.WithSeconds()),
		Collector:    col,
		Orchestrator: orch,
		Notifier:     tn,
		Symbol:       symbol,
		Mode:         mode,
		Timeout:      timeout,
		Ctx:          ctx,
	}
}

// RegisterAll registers the daily analysis and the weekly SMA report.
func (s *Scheduler) RegisterAll(dailyCron, weeklyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyAnalysis); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	if _, err := s.Cron.AddFunc(weeklyCron, s.weeklySMAReport); err != nil {
		return fmt.Errorf("register weekly task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunAnalysisNow executes the daily analysis immediately (manual trigger
// or RUN_ON_START).
func (s *Scheduler) RunAnalysisNow() {
	s.dailyAnalysis()
}

func (s *Scheduler) dailyAnalysis() {
	log.Println("[INFO] running daily analysis")
	rep, err := s.analyze()
	if err != nil {
		log.Printf("[ERROR] daily analysis: %v", err)
		s.trySend(notifier.FormatFailure(s.Symbol, err))
		return
	}
	s.trySend(notifier.FormatReport(s.Symbol, rep))
}

func (s *Scheduler) weeklySMAReport() {
	log.Println("[INFO] running weekly SMA report")
	daily, _, err := s.Collector.Collect()
	if err != nil {
		log.Printf("[ERROR] weekly collect: %v", err)
		s.trySend(notifier.FormatFailure(s.Symbol, err))
		return
	}
	res, err := s.Orchestrator.RunIndicator("SMA_CROSSOVER", daily)
	if err != nil {
		log.Printf("[ERROR] weekly SMA report: %v", err)
		return
	}
	s.trySend(notifier.FormatCrossoverReport(s.Symbol, res))
}

func (s *Scheduler) analyze() (*orchestrator.Report, error) {
	daily, monthly, err := s.Collector.Collect()
	if err != nil {
		return nil, err
	}
	ctx := s.Ctx
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(s.Ctx, s.Timeout)
		defer cancel()
	}
	return s.Orchestrator.Run(ctx, daily, monthly, s.Mode)
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/analyze", "/start":
		s.dailyAnalysis()
		return ""
	case "/sma":
		s.weeklySMAReport()
		return ""
	case "/help":
		return notifier.FormatHelp()
	default:
		return notifier.FormatHelp()
	}
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
