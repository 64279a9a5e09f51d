package notifier

import (
	"fmt"
	"strings"

	"LeapsRadar/internal/model"
)

// FormatIssueTitle builds the one-line alert headline.
func FormatIssueTitle(report *model.ScanReport) string {
	tickers := make([]string, len(report.Alerts))
	for i, a := range report.Alerts {
		tickers[i] = a.Snapshot.Ticker
	}
	return fmt.Sprintf("🚨 LEAPS Alert — %d stock(s) oversold: %s [%s]",
		len(report.Alerts), strings.Join(tickers, ", "), report.ScannedAt.Format("Jan 02, 2006"))
}

// FormatMarkdownBody renders the full alert report as markdown, one section
// per oversold ticker plus the approaching watch table.
func FormatMarkdownBody(report *model.ScanReport) string {
	var b strings.Builder

	b.WriteString("# Weekly RSI LEAPS Scanner Alert\n")
	b.WriteString(fmt.Sprintf("**%s**\n\n---\n\n", report.ScannedAt.Format("Monday, January 02, 2006")))
	b.WriteString("## 🔴 OVERSOLD — Weekly RSI Below Threshold\n\n")

	for _, alert := range report.Alerts {
		s := alert.Snapshot
		opt := alert.Suggestion
		crossed := ""
		if s.JustCrossed {
			crossed = " 🔥 **JUST CROSSED BELOW 30**"
		}

		b.WriteString(fmt.Sprintf("### %s — $%.2f (RSI: %.2f)%s\n\n", s.Ticker, s.Price, s.RSI, crossed))
		b.WriteString("| Metric | Value |\n|---|---|\n")
		b.WriteString(fmt.Sprintf("| Current Price | **$%.2f** |\n", s.Price))
		b.WriteString(fmt.Sprintf("| Weekly RSI | **%.2f** |\n", s.RSI))
		if s.HasPrevRSI {
			b.WriteString(fmt.Sprintf("| Previous Week RSI | %.2f |\n", s.PrevRSI))
		}
		b.WriteString(fmt.Sprintf("| 52-Week High | $%.2f |\n", s.High52w))
		b.WriteString(fmt.Sprintf("| Drawdown from High | **-%.1f%%** |\n", s.DrawdownPct))
		if s.Tier != "" {
			b.WriteString(fmt.Sprintf("| Conviction Tier | %s |\n", s.Tier))
		}
		b.WriteString("\n**Suggested LEAPS Trade:**\n\n")
		b.WriteString("| | |\n|---|---|\n")
		b.WriteString(fmt.Sprintf("| Strike (OTM) | **$%s** |\n", formatStrike(opt.Strike)))
		b.WriteString(fmt.Sprintf("| Expiration | **%s** or later (%s floor) |\n", opt.ExpiryLabel, opt.MinExpiry.Format("2006-01-02")))
		b.WriteString(fmt.Sprintf("| Exit Half At | %s |\n", opt.ExitHalfAt))
		b.WriteString(fmt.Sprintf("| Exit Rest At | %s |\n", opt.ExitRestAt))
		b.WriteString(fmt.Sprintf("| Options Chain | [View on Yahoo Finance](%s) |\n\n", opt.ChainURL))
		b.WriteString("---\n\n")
	}

	if len(report.Approaching) > 0 {
		b.WriteString("## 🟡 APPROACHING — Weekly RSI 30-35 (Watch List)\n\n")
		b.WriteString("| Ticker | RSI | Price | Drawdown |\n|---|---|---|---|\n")
		for _, s := range report.Approaching {
			b.WriteString(fmt.Sprintf("| **%s** | %.2f | $%.2f | -%.1f%% |\n", s.Ticker, s.RSI, s.Price, s.DrawdownPct))
		}
		b.WriteString("\n---\n\n")
	}

	b.WriteString("*⚠️ Not financial advice. Options involve significant risk. Do your own DD.*\n")
	return b.String()
}

// FormatChatHTML renders a compact report for chat delivery (Telegram HTML).
func FormatChatHTML(report *model.ScanReport) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🚨 <b>LEAPS Alert</b> | %s\n\n", report.ScannedAt.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("🔴 <b>Oversold (%d):</b>\n", len(report.Alerts)))
	for _, alert := range report.Alerts {
		s := alert.Snapshot
		opt := alert.Suggestion
		crossed := ""
		if s.JustCrossed {
			crossed = " 🔥"
		}
		b.WriteString(fmt.Sprintf("  <b>%s</b>%s RSI %.1f | $%.2f | -%.1f%% from high\n", s.Ticker, crossed, s.RSI, s.Price, s.DrawdownPct))
		b.WriteString(fmt.Sprintf("    → $%s call, %s+\n", formatStrike(opt.Strike), opt.ExpiryLabel))
	}

	if len(report.Approaching) > 0 {
		b.WriteString(fmt.Sprintf("\n🟡 <b>Approaching (%d):</b>\n", len(report.Approaching)))
		for _, s := range report.Approaching {
			b.WriteString(fmt.Sprintf("  %s RSI %.1f | $%.2f\n", s.Ticker, s.RSI, s.Price))
		}
	}

	return b.String()
}

// FormatConsoleSummary renders the end-of-scan summary written to the log.
func FormatConsoleSummary(report *model.ScanReport) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("scan complete: %d scanned, %d skipped, %d oversold, %d approaching, %d new alert(s), %d recovered\n",
		report.Scanned, len(report.Skipped), len(report.Oversold), len(report.Approaching), len(report.Alerts), len(report.Cleared)))

	for _, s := range report.Oversold {
		crossed := ""
		if s.JustCrossed {
			crossed = " ← JUST CROSSED"
		}
		b.WriteString(fmt.Sprintf("  %-6s RSI: %5.1f  Price: $%10.2f  Drawdown: -%.1f%%%s\n",
			s.Ticker, s.RSI, s.Price, s.DrawdownPct, crossed))
	}
	for _, s := range report.Approaching {
		b.WriteString(fmt.Sprintf("  %-6s RSI: %5.1f  Price: $%10.2f  Drawdown: -%.1f%% (approaching)\n",
			s.Ticker, s.RSI, s.Price, s.DrawdownPct))
	}
	return b.String()
}

// formatStrike prints whole-dollar strikes without a trailing ".0".
func formatStrike(strike float64) string {
	if strike == float64(int64(strike)) {
		return fmt.Sprintf("%.0f", strike)
	}
	return fmt.Sprintf("%.1f", strike)
}
