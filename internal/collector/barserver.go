package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"LeapsRadar/internal/model"
)

// BarServerFetcher implements Fetcher against a self-hosted bar-server REST API.
type BarServerFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewBarServerFetcher creates a new fetcher with optional proxy support.
func NewBarServerFetcher(baseURL, apiKey, proxyURL string) *BarServerFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &BarServerFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *BarServerFetcher) Name() string { return "barserver" }

// apiBar is the expected JSON shape from the bar-server API.
type apiBar struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

func (f *BarServerFetcher) FetchWeeklyBars(ticker string, weeks int) ([]model.OHLCV, error) {
	// Try the weekly endpoint first; if the API only provides daily, aggregate internally.
	endpoint := fmt.Sprintf("%s/api/v1/bars/weekly?symbol=%s&limit=%d", f.BaseURL, url.QueryEscape(ticker), weeks)
	bars, err := f.fetchBars(endpoint)
	if err != nil {
		dailyEndpoint := fmt.Sprintf("%s/api/v1/bars/daily?symbol=%s&limit=%d", f.BaseURL, url.QueryEscape(ticker), weeks*7)
		dailyBars, dailyErr := f.fetchBars(dailyEndpoint)
		if dailyErr != nil {
			return nil, fmt.Errorf("weekly fetch failed: %w; daily fallback also failed: %w", err, dailyErr)
		}
		bars = aggregateDailyToWeekly(dailyBars)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("barserver %s: %w", ticker, ErrNoData)
	}
	if len(bars) > weeks {
		bars = bars[len(bars)-weeks:]
	}
	return bars, nil
}

func (f *BarServerFetcher) fetchBars(endpoint string) ([]model.OHLCV, error) {
	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch bars: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNoData
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetch bars: status %d, body: %s", resp.StatusCode, string(body))
	}
	var raw []apiBar
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode bars: %w", err)
	}
	bars := make([]model.OHLCV, len(raw))
	for i, rb := range raw {
		bars[i] = model.OHLCV{
			Time:   time.Unix(rb.Timestamp, 0),
			Open:   rb.Open,
			High:   rb.High,
			Low:    rb.Low,
			Close:  rb.Close,
			Volume: rb.Volume,
		}
	}
	// Ensure chronological order
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

// aggregateDailyToWeekly converts daily bars into weekly bars (Mon-Fri).
func aggregateDailyToWeekly(daily []model.OHLCV) []model.OHLCV {
	if len(daily) == 0 {
		return nil
	}
	var weekly []model.OHLCV
	var week model.OHLCV
	var weekStarted bool

	for _, d := range daily {
		year, isoWeek := d.Time.ISOWeek()
		weekKey := year*100 + isoWeek

		if !weekStarted {
			week = model.OHLCV{Time: d.Time, Open: d.Open, High: d.High, Low: d.Low, Close: d.Close, Volume: d.Volume}
			weekStarted = true
			continue
		}

		cy, cw := week.Time.ISOWeek()
		currentKey := cy*100 + cw

		if weekKey != currentKey {
			weekly = append(weekly, week)
			week = model.OHLCV{Time: d.Time, Open: d.Open, High: d.High, Low: d.Low, Close: d.Close, Volume: d.Volume}
		} else {
			if d.High > week.High {
				week.High = d.High
			}
			if d.Low < week.Low {
				week.Low = d.Low
			}
			week.Close = d.Close
			week.Volume += d.Volume
		}
	}
	if weekStarted {
		weekly = append(weekly, week)
	}
	return weekly
}
