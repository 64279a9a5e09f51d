package collector

import (
	"errors"

	"LeapsRadar/internal/model"
)

// ErrNoData reports that a source has no bars for a ticker. It is a per-ticker
// skip condition, not a scan failure.
var ErrNoData = errors.New("no market data")

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	// FetchWeeklyBars returns up to `weeks` most recent weekly bars in
	// ascending time order.
	FetchWeeklyBars(ticker string, weeks int) ([]model.OHLCV, error)
	Name() string
}
