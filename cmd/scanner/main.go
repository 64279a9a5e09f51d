package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"LeapsRadar/internal/collector"
	"LeapsRadar/internal/config"
	"LeapsRadar/internal/ledger"
	"LeapsRadar/internal/notifier"
	"LeapsRadar/internal/recorder"
	"LeapsRadar/internal/scanner"
	"LeapsRadar/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] LeapsRadar starting...")

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
	if cfg.DataSource.BaseURL != "" {
		fetcher = collector.NewBarServerFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	} else {
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Init alert ledger
	lgr, err := ledger.NewManager(cfg.Ledger.StateFile, cfg.Scan.RealertCooldownDays)
	if err != nil {
		log.Fatalf("[FATAL] init alert ledger: %v", err)
	}

	// Init notifier
	var ntf notifier.Notifier
	var tn *notifier.TelegramNotifier
	switch cfg.Notifier.Kind {
	case "github":
		ntf = notifier.NewGitHubNotifier(cfg.Notifier.GitHub.Repo, cfg.Notifier.GitHub.Token, cfg.Proxy)
	case "telegram":
		tn = notifier.NewTelegramNotifier(cfg.Notifier.Telegram.BotToken, cfg.Notifier.Telegram.ChatID, cfg.Proxy)
		ntf = tn
	case "email":
		e := cfg.Notifier.Email
		ntf = notifier.NewEmailNotifier(e.Host, e.Port, e.Username, e.Password, e.From, e.To)
	}
	log.Printf("[INFO] delivery channel: %s", ntf.Name())

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scanner
	sc := scanner.New(fetcher, lgr, rec, ntf, scanner.Options{
		Watchlist:   cfg.Watchlist,
		Thresholds:  cfg.Thresholds(),
		Suggestion:  cfg.SuggestionParams(),
		RSIPeriod:   cfg.Scan.RSIPeriod,
		FetchWeeks:  cfg.Scan.FetchWeeks,
		Concurrency: cfg.Scan.Concurrency,
	})

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, sc)

	// One-shot mode: scan once and exit (CI cron jobs).
	if os.Getenv("RUN_ONCE") == "true" {
		sched.RunScanNow()
		log.Println("[INFO] RUN_ONCE scan finished, exiting")
		return
	}

	if err := sched.Register(cfg.Schedule.WeeklyCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Chat commands only make sense on the Telegram channel.
	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Println("[INFO] Telegram polling started")
	}

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing scan now")
		go sched.RunScanNow()
	}

	log.Println("[INFO] LeapsRadar is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] LeapsRadar stopped")
}
