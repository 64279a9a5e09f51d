package notifier

import (
	"strings"
	"testing"
	"time"

	"LeapsRadar/internal/model"
)

func sampleReport() *model.ScanReport {
	scannedAt := time.Date(2026, 8, 28, 14, 0, 0, 0, time.UTC)
	return &model.ScanReport{
		ScannedAt: scannedAt,
		Scanned:   40,
		Skipped:   []string{"MISS"},
		Oversold: []model.SignalSnapshot{
			{Ticker: "XYZ", Tier: "semis", Price: 60, RSI: 24.5, PrevRSI: 33.6, HasPrevRSI: true,
				High52w: 100, Low52w: 58, DrawdownPct: 40.0, State: model.StateOversold, JustCrossed: true},
		},
		Approaching: []model.SignalSnapshot{
			{Ticker: "NEAR", Price: 210.4, RSI: 33.3, DrawdownPct: 12.5, State: model.StateApproaching},
		},
		Alerts: []model.Alert{
			{
				Snapshot: model.SignalSnapshot{Ticker: "XYZ", Tier: "semis", Price: 60, RSI: 24.5,
					PrevRSI: 33.6, HasPrevRSI: true, High52w: 100, DrawdownPct: 40.0,
					State: model.StateOversold, JustCrossed: true},
				Suggestion: model.TradeSuggestion{
					Strike:      65,
					MinExpiry:   time.Date(2027, 8, 23, 0, 0, 0, 0, time.UTC),
					ExpiryLabel: "January 2028",
					ExitHalfAt:  "100% gain (2x entry price)",
					ExitRestAt:  "60 DTE remaining",
					ChainURL:    "https://finance.yahoo.com/quote/XYZ/options/",
				},
			},
		},
	}
}

func TestFormatIssueTitle(t *testing.T) {
	got := FormatIssueTitle(sampleReport())
	want := "🚨 LEAPS Alert — 1 stock(s) oversold: XYZ [Aug 28, 2026]"
	if got != want {
		t.Errorf("title mismatch:\n got: %s\nwant: %s", got, want)
	}
}

func TestFormatMarkdownBody(t *testing.T) {
	body := FormatMarkdownBody(sampleReport())
	for _, fragment := range []string{
		"### XYZ — $60.00 (RSI: 24.50)",
		"JUST CROSSED BELOW 30",
		"| Previous Week RSI | 33.60 |",
		"| Drawdown from High | **-40.0%** |",
		"| Conviction Tier | semis |",
		"| Strike (OTM) | **$65** |",
		"| Expiration | **January 2028** or later (2027-08-23 floor) |",
		"[View on Yahoo Finance](https://finance.yahoo.com/quote/XYZ/options/)",
		"| **NEAR** | 33.30 | $210.40 | -12.5% |",
		"Not financial advice",
	} {
		if !strings.Contains(body, fragment) {
			t.Errorf("markdown body missing %q", fragment)
		}
	}
}

func TestFormatMarkdownBody_NoPrevRSIRowWhenUndefined(t *testing.T) {
	report := sampleReport()
	report.Alerts[0].Snapshot.HasPrevRSI = false
	body := FormatMarkdownBody(report)
	if strings.Contains(body, "Previous Week RSI") {
		t.Error("previous RSI row should be omitted when undefined")
	}
}

func TestFormatChatHTML(t *testing.T) {
	body := FormatChatHTML(sampleReport())
	for _, fragment := range []string{
		"<b>LEAPS Alert</b> | 2026-08-28",
		"<b>XYZ</b> 🔥 RSI 24.5 | $60.00 | -40.0% from high",
		"→ $65 call, January 2028+",
		"🟡 <b>Approaching (1):</b>",
	} {
		if !strings.Contains(body, fragment) {
			t.Errorf("chat body missing %q", fragment)
		}
	}
}

func TestFormatConsoleSummary(t *testing.T) {
	out := FormatConsoleSummary(sampleReport())
	if !strings.Contains(out, "40 scanned, 1 skipped, 1 oversold, 1 approaching, 1 new alert(s), 0 recovered") {
		t.Errorf("summary line wrong:\n%s", out)
	}
	if !strings.Contains(out, "JUST CROSSED") {
		t.Error("summary should flag the fresh cross")
	}
}

func TestFormatStrike(t *testing.T) {
	tests := []struct {
		strike float64
		want   string
	}{
		{65, "65"},
		{110, "110"},
		{22.5, "22.5"},
		{47.5, "47.5"},
	}
	for _, tt := range tests {
		if got := formatStrike(tt.strike); got != tt.want {
			t.Errorf("formatStrike(%.1f) = %q, want %q", tt.strike, got, tt.want)
		}
	}
}
