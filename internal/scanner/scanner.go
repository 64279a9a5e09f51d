// Package scanner orchestrates one full watchlist evaluation: fetch bars,
// compute RSI, classify, dedup against the ledger, and hand off the alerts.
package scanner

import (
	"context"
	"errors"
	"log"
	"sort"
	"time"

	"LeapsRadar/internal/calculator"
	"LeapsRadar/internal/collector"
	"LeapsRadar/internal/ledger"
	"LeapsRadar/internal/model"
	"LeapsRadar/internal/notifier"
	"LeapsRadar/internal/recorder"
	"LeapsRadar/internal/signal"
	"LeapsRadar/internal/suggest"

	"golang.org/x/sync/errgroup"
)

// Options control a scan run.
type Options struct {
	Watchlist   []model.WatchlistEntry
	Thresholds  signal.Thresholds
	Suggestion  suggest.Params
	RSIPeriod   int
	FetchWeeks  int
	Concurrency int // bounded fan-out for market-data retrieval
	MaxRetries  int // delivery retries after the first attempt; negative means none
}

// Scanner evaluates the watchlist. Runs must not overlap; the ledger is
// loaded once, mutated in memory, and persisted at scan end.
type Scanner struct {
	Fetcher  collector.Fetcher
	Ledger   *ledger.Manager
	Recorder recorder.Recorder
	Notifier notifier.Notifier // nil disables delivery
	Opts     Options
}

// New creates a Scanner, filling in option defaults.
func New(fetcher collector.Fetcher, lgr *ledger.Manager, rec recorder.Recorder, ntf notifier.Notifier, opts Options) *Scanner {
	if opts.RSIPeriod == 0 {
		opts.RSIPeriod = 14
	}
	if opts.FetchWeeks == 0 {
		opts.FetchWeeks = 56
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}
	switch {
	case opts.MaxRetries < 0:
		opts.MaxRetries = 0
	case opts.MaxRetries == 0:
		opts.MaxRetries = 3
	}
	if opts.Thresholds == (signal.Thresholds{}) {
		opts.Thresholds = signal.DefaultThresholds()
	}
	if opts.Suggestion == (suggest.Params{}) {
		opts.Suggestion = suggest.DefaultParams()
	}
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Scanner{Fetcher: fetcher, Ledger: lgr, Recorder: rec, Notifier: ntf, Opts: opts}
}

type outcome struct {
	snap model.SignalSnapshot
	skip string // non-empty when the ticker was skipped, holds the reason
}

// Run executes one scan as of `now` and returns the report. A per-ticker
// retrieval or data failure skips that ticker only; nothing here is fatal to
// the remaining watchlist.
func (s *Scanner) Run(ctx context.Context, now time.Time) (*model.ScanReport, error) {
	start := time.Now()
	report := &model.ScanReport{ScannedAt: now}

	log.Printf("[INFO] scanning %d tickers for weekly RSI < %.0f (source: %s)",
		len(s.Opts.Watchlist), s.Opts.Thresholds.Oversold, s.Fetcher.Name())

	outcomes := make([]outcome, len(s.Opts.Watchlist))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.Opts.Concurrency)
	for i, entry := range s.Opts.Watchlist {
		i, entry := i, entry
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = s.evaluate(entry)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Bucket results and apply ledger decisions sequentially; the ledger is
	// the one piece of shared mutable state in the scan.
	for i, out := range outcomes {
		ticker := s.Opts.Watchlist[i].Ticker
		if out.skip != "" {
			log.Printf("[WARN] %s: %s, skipped", ticker, out.skip)
			report.Skipped = append(report.Skipped, ticker)
			continue
		}
		report.Scanned++

		snap := out.snap
		switch snap.State {
		case model.StateOversold:
			report.Oversold = append(report.Oversold, snap)
		case model.StateApproaching:
			report.Approaching = append(report.Approaching, snap)
		}

		if signal.Recovered(snap.RSI, s.Opts.Thresholds) {
			if s.Ledger.Clear(ticker) {
				log.Printf("[INFO] %s: RSI %.1f recovered, alert record cleared", ticker, snap.RSI)
				report.Cleared = append(report.Cleared, ticker)
			}
		}
	}

	// Worst-first within each partition.
	sort.Slice(report.Oversold, func(i, j int) bool { return report.Oversold[i].RSI < report.Oversold[j].RSI })
	sort.Slice(report.Approaching, func(i, j int) bool { return report.Approaching[i].RSI < report.Approaching[j].RSI })

	for _, snap := range report.Oversold {
		if !s.Ledger.ShouldAlert(snap.Ticker, now) {
			log.Printf("[INFO] %s: oversold but within re-alert cooldown, suppressed", snap.Ticker)
			continue
		}
		sug := suggest.Suggest(snap.Ticker, snap.Price, now, s.Opts.Suggestion)
		report.Alerts = append(report.Alerts, model.Alert{Snapshot: snap, Suggestion: sug})
		s.Ledger.Record(snap.Ticker, snap.RSI, snap.Price, now)
	}

	// The ledger reflects "alert was computed", not "alert was delivered":
	// persist before delivery, and keep going on failure with in-memory state.
	if err := s.Ledger.Persist(); err != nil {
		log.Printf("[ERROR] persist ledger: %v (continuing with in-memory state)", err)
	}

	log.Printf("[INFO] %s", notifier.FormatConsoleSummary(report))

	delivered := false
	deliveryErr := ""
	if len(report.Alerts) > 0 && s.Notifier != nil {
		if err := notifier.DeliverWithRetry(ctx, s.Notifier, report, s.Opts.MaxRetries); err != nil {
			log.Printf("[ERROR] deliver alerts via %s: %v", s.Notifier.Name(), err)
			deliveryErr = err.Error()
		} else {
			delivered = true
		}
	}

	s.record(report, time.Since(start), delivered, deliveryErr)
	return report, nil
}

// evaluate fetches and scores a single ticker. All failures come back as a
// skip reason rather than an error so one bad ticker never aborts the scan.
func (s *Scanner) evaluate(entry model.WatchlistEntry) outcome {
	bars, err := s.Fetcher.FetchWeeklyBars(entry.Ticker, s.Opts.FetchWeeks)
	if err != nil {
		if errors.Is(err, collector.ErrNoData) {
			return outcome{skip: "no data"}
		}
		return outcome{skip: "fetch failed: " + err.Error()}
	}

	series, err := calculator.CalculateRSISeries(bars, s.Opts.RSIPeriod)
	if err != nil {
		var dataErr *calculator.DataError
		switch {
		case errors.Is(err, calculator.ErrInsufficientData):
			return outcome{skip: "insufficient data"}
		case errors.As(err, &dataErr):
			return outcome{skip: dataErr.Error()}
		default:
			return outcome{skip: err.Error()}
		}
	}

	cur, ok := series.Current()
	if !ok {
		return outcome{skip: "insufficient data"}
	}
	prev, hasPrev := series.Previous()

	high52w, low52w, err := calculator.Calculate52WeekRange(bars)
	if err != nil {
		return outcome{skip: err.Error()}
	}

	// Trend SMA is context only; a short series just leaves it at zero.
	trend, err := calculator.CalculateTrendSMA(bars)
	if err != nil {
		trend = 0
	}

	price := bars[len(bars)-1].Close

	snap := signal.Classify(signal.Inputs{
		Ticker:   entry.Ticker,
		Tier:     entry.Tier,
		Price:    price,
		RSI:      cur,
		PrevRSI:  prev,
		HasPrev:  hasPrev,
		High52w:  high52w,
		Low52w:   low52w,
		TrendSMA: trend,
	}, s.Opts.Thresholds)

	return outcome{snap: snap}
}

func (s *Scanner) record(report *model.ScanReport, dur time.Duration, delivered bool, deliveryErr string) {
	sum := &recorder.ScanSummary{
		ScannedAt:        report.ScannedAt,
		Scanned:          report.Scanned,
		SkippedCount:     len(report.Skipped),
		OversoldCount:    len(report.Oversold),
		ApproachingCount: len(report.Approaching),
		AlertCount:       len(report.Alerts),
		ClearedCount:     len(report.Cleared),
		Duration:         dur,
		Delivered:        delivered,
		DeliveryError:    deliveryErr,
	}
	if err := s.Recorder.RecordScan(sum); err != nil {
		log.Printf("[ERROR] record scan: %v", err)
	}

	if len(report.Alerts) == 0 {
		return
	}
	events := make([]recorder.AlertEvent, len(report.Alerts))
	for i, a := range report.Alerts {
		events[i] = recorder.AlertEvent{
			ScannedAt:   report.ScannedAt,
			Ticker:      a.Snapshot.Ticker,
			Price:       a.Snapshot.Price,
			RSI:         a.Snapshot.RSI,
			PrevRSI:     a.Snapshot.PrevRSI,
			DrawdownPct: a.Snapshot.DrawdownPct,
			Strike:      a.Suggestion.Strike,
			ExpiryLabel: a.Suggestion.ExpiryLabel,
			JustCrossed: a.Snapshot.JustCrossed,
		}
	}
	if err := s.Recorder.RecordAlerts(events); err != nil {
		log.Printf("[ERROR] record alerts: %v", err)
	}
}
