package calculator

import (
	"math"

	"LeapsRadar/internal/model"
)

// Calculate52WeekRange scans the most recent 52 weekly bars and returns the high and low.
func Calculate52WeekRange(weeklyBars []model.OHLCV) (high, low float64, err error) {
	if len(weeklyBars) == 0 {
		return 0, 0, &DataError{Reason: "no weekly bars provided"}
	}
	n := len(weeklyBars)
	start := n - 52
	if start < 0 {
		start = 0
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for i := start; i < n; i++ {
		if weeklyBars[i].High > high {
			high = weeklyBars[i].High
		}
		if weeklyBars[i].Low < low {
			low = weeklyBars[i].Low
		}
	}
	return high, low, nil
}

// DrawdownPct returns the percentage drop from the 52-week high to the
// current price, rounded to one decimal place. Zero when high is not above
// the price (a bar sitting at its high has no drawdown).
func DrawdownPct(price, high52w float64) float64 {
	if high52w <= 0 || price >= high52w {
		return 0
	}
	return math.Round((1-price/high52w)*100*10) / 10
}
