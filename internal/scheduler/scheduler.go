package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"LeapsRadar/internal/scanner"

	"github.com/robfig/cron/v3"
)

// Scheduler triggers watchlist scans on a cron schedule and serves chat
// commands. It guarantees scans never overlap.
type Scheduler struct {
	Cron    *cron.Cron
	Scanner *scanner.Scanner
	Ctx     context.Context

	running chan struct{} // 1-slot token, holders of which may scan
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, sc *scanner.Scanner) *Scheduler {
	running := make(chan struct{}, 1)
	running <- struct{}{}
	return &Scheduler{
		Cron:    cron.New(cron.WithSeconds()),
		Scanner: sc,
		Ctx:     ctx,
		running: running,
	}
}

// Register registers the weekly scan task.
func (s *Scheduler) Register(weeklyCron string) error {
	if _, err := s.Cron.AddFunc(weeklyCron, s.scanTask); err != nil {
		return fmt.Errorf("register weekly scan: %w", err)
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

// RunScanNow executes a scan immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunScanNow() {
	s.scanTask()
}

func (s *Scheduler) scanTask() {
	select {
	case <-s.running:
	default:
		log.Println("[WARN] scan already in progress, trigger ignored")
		return
	}
	defer func() { s.running <- struct{}{} }()

	log.Println("[INFO] running weekly scan")
	if _, err := s.Scanner.Run(s.Ctx, time.Now()); err != nil {
		log.Printf("[ERROR] weekly scan: %v", err)
	}
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/scan":
		s.scanTask()
		return ""
	case "/ledger":
		records := s.Scanner.Ledger.Snapshot()
		if len(records) == 0 {
			return "No open oversold episodes."
		}
		var b strings.Builder
		b.WriteString(fmt.Sprintf("Open oversold episodes (%d):\n", len(records)))
		for _, rec := range records {
			b.WriteString(fmt.Sprintf("  %s  alerted %s  RSI %.1f  $%.2f\n",
				rec.Ticker, rec.LastAlertAt.Format("2006-01-02"), rec.RSIAtAlert, rec.PriceAtAlert))
		}
		return b.String()
	case "/status":
		opts := s.Scanner.Opts
		return fmt.Sprintf("Watching %d tickers | oversold < %.0f | approaching < %.0f | recovery > %.0f | source: %s",
			len(opts.Watchlist), opts.Thresholds.Oversold, opts.Thresholds.ApproachingUpper,
			opts.Thresholds.Recovery, s.Scanner.Fetcher.Name())
	default:
		return "Commands:\n• /scan — run a scan now\n• /ledger — open oversold episodes\n• /status — scanner settings"
	}
}
