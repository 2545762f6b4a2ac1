package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"TrendCouncil/internal/collector"
	"TrendCouncil/internal/config"
	"TrendCouncil/internal/notifier"
	"TrendCouncil/internal/orchestrator"
	"TrendCouncil/internal/scheduler"
	"TrendCouncil/internal/store"

	"github.com/joho/godotenv"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] TrendCouncil starting...")

	// .env is optional; environment variables win over the YAML file.
	if err := godotenv.Load(); err == nil {
		log.Println("[INFO] loaded .env")
	}

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher
	var fetcher collector.Fetcher
	if cfg.DataSource.Source == "csv" {
		fetcher = &collector.CSVFetcher{Dir: cfg.DataSource.CSVDir}
	} else {
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s, symbol: %s", fetcher.Name(), cfg.DataSource.Symbol)

	// Init price cache
	var st store.Store
	if cfg.Database.SQLitePath != "" {
		ss, err := store.NewSQLiteStore(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite store failed, using noop: %v", err)
			st = store.NoopStore{}
		} else {
			st = ss
			defer ss.Close()
		}
	} else {
		st = store.NoopStore{}
	}

	// Init collector and orchestrator
	col := collector.New(fetcher, st, cfg.DataSource.Symbol, cfg.DataSource.Days, cfg.DataSource.Months)
	orch := orchestrator.New(cfg)

	// Init Telegram notifier (optional)
	var tn *notifier.TelegramNotifier
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
	} else {
		log.Println("[WARN] Telegram not configured, reports will only be logged")
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.New(ctx, col, orch, tn, cfg.DataSource.Symbol,
		orchestrator.Mode(cfg.Orchestrator.Mode),
		time.Duration(cfg.Orchestrator.TimeoutSeconds)*time.Second)
	if err := sched.RegisterAll(cfg.Schedule.DailyCron, cfg.Schedule.WeeklyCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Println("[INFO] Telegram polling started")
	}

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing analysis now")
		go sched.RunAnalysisNow()
	}

	log.Println("[INFO] TrendCouncil is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] TrendCouncil stopped")
}
