// Package suggest derives deterministic LEAPS trade recommendations.
package suggest

import (
	"fmt"
	"math"
	"net/url"
	"time"

	"LeapsRadar/internal/model"
)

// Params control the strike and expiry derivation.
type Params struct {
	OTMPercent float64 // strike distance above spot, percent
	MinDTE     int     // expiration floor, days
}

// DefaultParams returns the 10% OTM / 360 DTE setup.
func DefaultParams() Params {
	return Params{OTMPercent: 10, MinDTE: 360}
}

// Suggest computes a strike and expiration recommendation for the given price
// and reference date. It reads no clock and performs no I/O; identical inputs
// always produce identical output.
func Suggest(ticker string, price float64, ref time.Time, p Params) model.TradeSuggestion {
	raw := math.Round(price * (1 + p.OTMPercent/100))
	minExpiry := ref.AddDate(0, 0, p.MinDTE)
	expiry := nextJanuaryExpiry(minExpiry)

	return model.TradeSuggestion{
		Strike:      SnapStrike(raw),
		MinExpiry:   minExpiry,
		ExpiryLabel: fmt.Sprintf("January %d", expiry.Year()),
		ExitHalfAt:  "100% gain (2x entry price)",
		ExitRestAt:  "60 DTE remaining",
		ChainURL:    fmt.Sprintf("https://finance.yahoo.com/quote/%s/options/", url.PathEscape(ticker)),
	}
}

// SnapStrike coarsens a raw strike to liquid increments: multiples of 5 above
// $50, multiples of 2.5 between $10 and $50, unchanged at $10 or below.
// Snapping a snapped strike is a no-op.
func SnapStrike(strike float64) float64 {
	switch {
	case strike > 50:
		return math.Round(strike/5) * 5
	case strike > 10:
		return math.Round(strike/2.5) * 2.5
	default:
		return strike
	}
}

// nextJanuaryExpiry returns the January monthly expiration (third Friday) at
// or beyond the floor date. LEAPS chains cluster around January expirations,
// so the nearest January past the DTE floor is the one to recommend.
func nextJanuaryExpiry(floor time.Time) time.Time {
	year := floor.Year()
	for {
		exp := thirdFriday(year, time.January, floor.Location())
		if !exp.Before(floor) {
			return exp
		}
		year++
	}
}

func thirdFriday(year int, month time.Month, loc *time.Location) time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	offset := (int(time.Friday) - int(first.Weekday()) + 7) % 7
	return first.AddDate(0, 0, offset+14)
}
