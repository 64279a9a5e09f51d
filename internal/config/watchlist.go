package config

import "LeapsRadar/internal/model"

// DefaultWatchlist is the out-of-the-box ticker set, used when the config
// file doesn't carry one. Tiers are conviction labels surfaced in reports.
func DefaultWatchlist() []model.WatchlistEntry {
	tiers := []struct {
		tier    string
		tickers []string
	}{
		{"mega-cap", []string{
			"AAPL", "MSFT", "GOOGL", "AMZN", "META", "NVDA", "TSLA", "AVGO",
		}},
		{"software", []string{
			"CRM", "ADBE", "NOW", "SNOW", "PLTR", "DDOG", "NET", "CRWD",
			"PANW", "ZS", "MDB", "SHOP",
		}},
		{"semis", []string{
			"AMD", "QCOM", "MRVL", "AMAT", "LRCX", "KLAC", "AMKR", "ON",
			"MU", "INTC",
		}},
		{"fintech", []string{
			"PYPL", "HOOD", "COIN", "V", "MA", "AFRM", "SOFI",
		}},
		{"internet", []string{
			"NFLX", "BKNG", "UBER", "ABNB", "DASH", "SPOT", "RBLX", "PINS",
		}},
		{"ai-infra", []string{
			"IREN", "AI", "PATH", "S", "SMCI",
		}},
		{"healthcare", []string{
			"UNH", "ISRG", "DXCM", "TMO", "DHR", "ABBV",
		}},
		{"speculative", []string{
			"ROKU", "TTD", "ENPH", "SEDG", "RIVN", "LCID",
		}},
		{"quality", []string{
			"ACN", "AXP", "ORCL", "IBM", "COST", "WMT",
		}},
	}

	var list []model.WatchlistEntry
	for _, t := range tiers {
		for _, ticker := range t.tickers {
			list = append(list, model.WatchlistEntry{Ticker: ticker, Tier: t.tier})
		}
	}
	return list
}
