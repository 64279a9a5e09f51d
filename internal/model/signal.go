package model

import "time"

// SignalState classifies a ticker by its weekly RSI reading.
type SignalState string

const (
	StateNormal      SignalState = "NORMAL"
	StateApproaching SignalState = "APPROACHING"
	StateOversold    SignalState = "OVERSOLD"
)

// SignalSnapshot is the per-ticker evaluation result of a single scan.
// It lives only for the duration of the scan that produced it.
type SignalSnapshot struct {
	Ticker      string
	Tier        string
	Price       float64
	RSI         float64
	PrevRSI     float64
	HasPrevRSI  bool
	High52w     float64
	Low52w      float64
	DrawdownPct float64
	TrendSMA    float64 // 10-week SMA, report context only
	State       SignalState
	JustCrossed bool
}

// TradeSuggestion is a deterministic LEAPS recommendation derived from the
// current price and a reference date. It has no persisted identity.
type TradeSuggestion struct {
	Strike      float64
	MinExpiry   time.Time
	ExpiryLabel string // e.g. "January 2028"
	ExitHalfAt  string
	ExitRestAt  string
	ChainURL    string
}

// Alert pairs an oversold snapshot with its suggested trade.
type Alert struct {
	Snapshot   SignalSnapshot
	Suggestion TradeSuggestion
}

// ScanReport aggregates one full watchlist scan.
type ScanReport struct {
	ScannedAt   time.Time
	Scanned     int
	Skipped     []string         // tickers dropped for missing or malformed data
	Oversold    []SignalSnapshot // RSI < oversold threshold, worst-first
	Approaching []SignalSnapshot // threshold <= RSI < approaching upper, ascending
	Alerts      []Alert          // newly-eligible oversold tickers
	Cleared     []string         // tickers whose alert record was cleared on recovery
}
