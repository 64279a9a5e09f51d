package collector

import (
	"time"

	"LeapsRadar/internal/model"
)

// MockFetcher returns controllable per-ticker data for development and testing.
type MockFetcher struct {
	Bars map[string][]model.OHLCV
	Errs map[string]error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchWeeklyBars(ticker string, weeks int) ([]model.OHLCV, error) {
	if err, ok := m.Errs[ticker]; ok {
		return nil, err
	}
	bars, ok := m.Bars[ticker]
	if !ok {
		return nil, ErrNoData
	}
	if len(bars) > weeks {
		bars = bars[len(bars)-weeks:]
	}
	return bars, nil
}

// WeeklyBarsFromCloses builds an ascending weekly bar series from raw closes,
// ending at the given week. Highs/lows hug the close so range math stays
// predictable in tests.
func WeeklyBarsFromCloses(closes []float64, lastWeek time.Time) []model.OHLCV {
	bars := make([]model.OHLCV, len(closes))
	for i, c := range closes {
		bars[i] = model.OHLCV{
			Time:   lastWeek.AddDate(0, 0, -7*(len(closes)-1-i)),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 1000000,
		}
	}
	return bars
}
