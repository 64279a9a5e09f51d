package calculator

import "LeapsRadar/internal/model"

// CalculateSMA computes the simple moving average of the given prices over the specified period.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, &DataError{Reason: "period must be positive"}
	}
	if len(prices) < period {
		return 0, ErrInsufficientData
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// CalculateTrendSMA returns the 10-week simple moving average from weekly bars.
// Shown in reports as trend context next to the RSI reading.
func CalculateTrendSMA(weeklyBars []model.OHLCV) (float64, error) {
	return CalculateSMA(extractCloses(weeklyBars), 10)
}

func extractCloses(bars []model.OHLCV) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
