package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists scan history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance (dashboards read while the scanner writes).
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS scan_history (
			id                INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp         INTEGER NOT NULL,
			scanned           INTEGER,
			skipped           INTEGER,
			oversold_count    INTEGER,
			approaching_count INTEGER,
			alert_count       INTEGER,
			cleared_count     INTEGER,
			duration_ms       INTEGER,
			delivered         INTEGER,
			delivery_error    TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scan_ts ON scan_history(timestamp)`,

		`CREATE TABLE IF NOT EXISTS alert_events (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp    INTEGER NOT NULL,
			ticker       TEXT NOT NULL,
			price        REAL,
			rsi          REAL,
			prev_rsi     REAL,
			drawdown_pct REAL,
			strike       REAL,
			expiry_label TEXT,
			just_crossed INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_alert_ts ON alert_events(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_alert_ticker ON alert_events(ticker)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordScan(sum *ScanSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delivered := 0
	if sum.Delivered {
		delivered = 1
	}
	_, err := r.db.Exec(`INSERT INTO scan_history
		(timestamp, scanned, skipped, oversold_count, approaching_count,
		 alert_count, cleared_count, duration_ms, delivered, delivery_error)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		sum.ScannedAt.Unix(), sum.Scanned, sum.SkippedCount,
		sum.OversoldCount, sum.ApproachingCount,
		sum.AlertCount, sum.ClearedCount,
		sum.Duration.Milliseconds(), delivered, sum.DeliveryError,
	)
	return err
}

func (r *SQLiteRecorder) RecordAlerts(events []AlertEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, evt := range events {
		crossed := 0
		if evt.JustCrossed {
			crossed = 1
		}
		if _, err := r.db.Exec(`INSERT INTO alert_events
			(timestamp, ticker, price, rsi, prev_rsi, drawdown_pct, strike, expiry_label, just_crossed)
			VALUES (?,?,?,?,?,?,?,?,?)`,
			evt.ScannedAt.Unix(), evt.Ticker, evt.Price, evt.RSI, evt.PrevRSI,
			evt.DrawdownPct, evt.Strike, evt.ExpiryLabel, crossed,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
