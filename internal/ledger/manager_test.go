package ledger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestManager(t *testing.T, cooldownDays int) *Manager {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ledger.json")
	m, err := NewManager(path, cooldownDays)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	return m
}

func TestShouldAlert_Cooldown(t *testing.T) {
	m := newTestManager(t, 7)
	now := time.Date(2026, 8, 28, 14, 0, 0, 0, time.UTC)

	if !m.ShouldAlert("AAPL", now) {
		t.Fatal("first alert for an unseen ticker should fire")
	}
	m.Record("AAPL", 28.5, 180.25, now)

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"same day", now, false},
		{"6 days later", now.AddDate(0, 0, 6), false},
		{"just under 7 days", now.Add(7*24*time.Hour - time.Second), false},
		{"exactly 7 days", now.Add(7 * 24 * time.Hour), true},
		{"8 days later", now.AddDate(0, 0, 8), true},
	}
	for _, tt := range tests {
		if got := m.ShouldAlert("AAPL", tt.at); got != tt.want {
			t.Errorf("%s: ShouldAlert = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestClear(t *testing.T) {
	m := newTestManager(t, 7)
	now := time.Now()

	if m.Clear("MSFT") {
		t.Error("clearing an absent ticker should report false")
	}
	m.Record("MSFT", 27.1, 400, now)
	if !m.Clear("MSFT") {
		t.Error("clearing a recorded ticker should report true")
	}
	if !m.ShouldAlert("MSFT", now) {
		t.Error("a cleared ticker should alert again immediately")
	}
}

func TestPersistAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	now := time.Date(2026, 8, 28, 14, 0, 0, 0, time.UTC)

	m1, err := NewManager(path, 7)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	m1.Record("NVDA", 29.3, 842.13, now)
	m1.Record("AMD", 26.8, 98.4, now)
	if err := m1.Persist(); err != nil {
		t.Fatalf("Persist: %v", err)
	}

	m2, err := NewManager(path, 7)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	rec, ok := m2.Get("NVDA")
	if !ok {
		t.Fatal("NVDA record lost across reload")
	}
	if rec.RSIAtAlert != 29.3 || rec.PriceAtAlert != 842.13 {
		t.Errorf("record fields not preserved: %+v", rec)
	}
	if !rec.LastAlertAt.Equal(now) {
		t.Errorf("timestamp not preserved: got %s", rec.LastAlertAt)
	}
	if m2.ShouldAlert("AMD", now.AddDate(0, 0, 3)) {
		t.Error("cooldown should survive a reload")
	}
}

func TestPersist_SkipsWhenClean(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	m, err := NewManager(path, 7)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if err := m.Persist(); err != nil {
		t.Fatalf("Persist: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Persist with no changes should not create the file")
	}
}

func TestPersist_FailureKeepsInMemoryState(t *testing.T) {
	// A state path inside a directory that doesn't exist loads as empty but
	// cannot be written.
	path := filepath.Join(t.TempDir(), "no-such-dir", "ledger.json")
	m, err := NewManager(path, 7)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	now := time.Now()
	m.Record("NVDA", 28.2, 842.13, now)

	if err := m.Persist(); err == nil {
		t.Fatal("expected Persist to fail on an unwritable path")
	}
	if _, ok := m.Get("NVDA"); !ok {
		t.Error("record should survive a failed Persist")
	}
	if m.ShouldAlert("NVDA", now.AddDate(0, 0, 3)) {
		t.Error("cooldown should still apply from in-memory state")
	}
	// Still dirty, so a later Persist retries the write.
	if err := m.Persist(); err == nil {
		t.Error("expected the retried Persist to fail again on the same path")
	}
}

func TestLoadState_IgnoresUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	raw := `{
		"version": 2,
		"records": {
			"TSLA": {
				"ticker": "TSLA",
				"last_alert_date": "2026-08-21T14:00:00Z",
				"rsi_at_alert": 28.0,
				"price_at_alert": 210.5,
				"future_field": "ignored"
			}
		},
		"updated_at": "2026-08-21T14:00:05Z",
		"another_new_section": {"a": 1}
	}`
	if err := os.WriteFile(path, []byte(raw), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	records, err := LoadState(path)
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	rec, ok := records["TSLA"]
	if !ok {
		t.Fatal("TSLA record missing")
	}
	if rec.RSIAtAlert != 28.0 {
		t.Errorf("unexpected rsi: %.1f", rec.RSIAtAlert)
	}
}

func TestSaveState_Envelope(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	records := map[string]AlertRecord{
		"GOOG": {Ticker: "GOOG", LastAlertAt: time.Now().UTC(), RSIAtAlert: 29.9, PriceAtAlert: 150},
	}
	if err := SaveState(path, records); err != nil {
		t.Fatalf("SaveState: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"version", "records", "updated_at"} {
		if _, ok := envelope[key]; !ok {
			t.Errorf("envelope missing %q", key)
		}
	}
}

func TestSnapshot_SortedByTicker(t *testing.T) {
	m := newTestManager(t, 7)
	now := time.Now()
	for _, tk := range []string{"MSFT", "AAPL", "NVDA"} {
		m.Record(tk, 28, 100, now)
	}
	snap := m.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("expected 3 records, got %d", len(snap))
	}
	want := []string{"AAPL", "MSFT", "NVDA"}
	for i, rec := range snap {
		if rec.Ticker != want[i] {
			t.Errorf("position %d: got %s, want %s", i, rec.Ticker, want[i])
		}
	}
}
