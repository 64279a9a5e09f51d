package recorder

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestRecorder(t *testing.T) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRecorder: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestRecordScan(t *testing.T) {
	r := newTestRecorder(t)
	sum := &ScanSummary{
		ScannedAt:        time.Date(2026, 8, 28, 14, 0, 0, 0, time.UTC),
		Scanned:          40,
		SkippedCount:     2,
		OversoldCount:    3,
		ApproachingCount: 5,
		AlertCount:       2,
		ClearedCount:     1,
		Duration:         2300 * time.Millisecond,
		Delivered:        true,
	}
	if err := r.RecordScan(sum); err != nil {
		t.Fatalf("RecordScan: %v", err)
	}

	var scanned, delivered, durationMs int
	row := r.db.QueryRow(`SELECT scanned, delivered, duration_ms FROM scan_history`)
	if err := row.Scan(&scanned, &delivered, &durationMs); err != nil {
		t.Fatalf("read back: %v", err)
	}
	if scanned != 40 || delivered != 1 || durationMs != 2300 {
		t.Errorf("row mismatch: scanned=%d delivered=%d duration_ms=%d", scanned, delivered, durationMs)
	}
}

func TestRecordAlerts(t *testing.T) {
	r := newTestRecorder(t)
	at := time.Date(2026, 8, 28, 14, 0, 0, 0, time.UTC)
	events := []AlertEvent{
		{ScannedAt: at, Ticker: "XYZ", Price: 60, RSI: 24.5, PrevRSI: 33.6,
			DrawdownPct: 40.0, Strike: 65, ExpiryLabel: "January 2028", JustCrossed: true},
		{ScannedAt: at, Ticker: "AMD", Price: 98.4, RSI: 28.1,
			DrawdownPct: 22.0, Strike: 110, ExpiryLabel: "January 2028"},
	}
	if err := r.RecordAlerts(events); err != nil {
		t.Fatalf("RecordAlerts: %v", err)
	}

	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM alert_events`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 alert rows, got %d", count)
	}

	var strike float64
	var crossed int
	row := r.db.QueryRow(`SELECT strike, just_crossed FROM alert_events WHERE ticker = ?`, "XYZ")
	if err := row.Scan(&strike, &crossed); err != nil {
		t.Fatalf("read back: %v", err)
	}
	if strike != 65 || crossed != 1 {
		t.Errorf("XYZ row mismatch: strike=%.0f just_crossed=%d", strike, crossed)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	r1, err := NewSQLiteRecorder(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	r1.Close()

	r2, err := NewSQLiteRecorder(path)
	if err != nil {
		t.Fatalf("reopen should rerun migrations cleanly: %v", err)
	}
	r2.Close()
}
