package recorder

import "time"

// ScanSummary holds the aggregate outcome of one watchlist scan.
type ScanSummary struct {
	ScannedAt        time.Time
	Scanned          int
	SkippedCount     int
	OversoldCount    int
	ApproachingCount int
	AlertCount       int
	ClearedCount     int
	Duration         time.Duration
	Delivered        bool
	DeliveryError    string
}

// AlertEvent holds one emitted alert.
type AlertEvent struct {
	ScannedAt   time.Time
	Ticker      string
	Price       float64
	RSI         float64
	PrevRSI     float64
	DrawdownPct float64
	Strike      float64
	ExpiryLabel string
	JustCrossed bool
}

// Recorder persists scan history for later analysis.
type Recorder interface {
	RecordScan(sum *ScanSummary) error
	RecordAlerts(events []AlertEvent) error
	Close() error
}
