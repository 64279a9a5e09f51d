// Package ledger decides whether an oversold signal is news or a repeat.
package ledger

import (
	"sort"
	"sync"
	"time"
)

// Manager owns the alert-dedup records. The lifecycle is load once at
// startup, mutate in memory during a scan, Persist once at scan end.
// Concurrent scans are not supported; the caller serializes runs.
type Manager struct {
	mu       sync.Mutex
	records  map[string]AlertRecord
	filePath string
	cooldown time.Duration
	dirty    bool
}

// NewManager creates a Manager, loading existing records from disk.
func NewManager(filePath string, cooldownDays int) (*Manager, error) {
	records, err := LoadState(filePath)
	if err != nil {
		return nil, err
	}
	return &Manager{
		records:  records,
		filePath: filePath,
		cooldown: time.Duration(cooldownDays) * 24 * time.Hour,
	}, nil
}

// ShouldAlert reports whether a new alert for the ticker is due: either no
// record exists, or the cooldown has fully elapsed since the last one. An
// oversold condition that persists past the cooldown re-alerts.
func (m *Manager) ShouldAlert(ticker string, now time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[ticker]
	if !ok {
		return true
	}
	return now.Sub(rec.LastAlertAt) >= m.cooldown
}

// Record upserts the alert record for a ticker.
func (m *Manager) Record(ticker string, rsi, price float64, now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records[ticker] = AlertRecord{
		Ticker:       ticker,
		LastAlertAt:  now,
		RSIAtAlert:   rsi,
		PriceAtAlert: price,
	}
	m.dirty = true
}

// Clear drops the record for a ticker, ending its oversold episode. Reports
// whether a record existed.
func (m *Manager) Clear(ticker string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[ticker]; !ok {
		return false
	}
	delete(m.records, ticker)
	m.dirty = true
	return true
}

// Get returns the record for a ticker, if any.
func (m *Manager) Get(ticker string) (AlertRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[ticker]
	return rec, ok
}

// Snapshot returns all records sorted by ticker.
func (m *Manager) Snapshot() []AlertRecord {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]AlertRecord, 0, len(m.records))
	for _, rec := range m.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ticker < out[j].Ticker })
	return out
}

// Persist writes the records to disk if anything changed since the last save.
// A failure leaves the in-memory state intact; the next Persist retries.
func (m *Manager) Persist() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.dirty {
		return nil
	}
	if err := SaveState(m.filePath, m.records); err != nil {
		return err
	}
	m.dirty = false
	return nil
}
