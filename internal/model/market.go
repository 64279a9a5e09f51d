package model

import "time"

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// WatchlistEntry is one ticker under surveillance. Tier is an optional
// conviction label ("core", "speculative", ...) carried into reports.
type WatchlistEntry struct {
	Ticker string `yaml:"ticker"`
	Tier   string `yaml:"tier,omitempty"`
}
