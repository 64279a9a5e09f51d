package calculator

import (
	"errors"
	"fmt"
	"math"

	"LeapsRadar/internal/model"
)

// ErrInsufficientData reports that a bar series is too short for the
// requested indicator. It is a first-class skip condition, not a failure.
var ErrInsufficientData = errors.New("insufficient data")

// DataError reports a malformed bar sequence (out-of-order timestamps,
// non-positive closes). Callers log and skip the instrument.
type DataError struct {
	Reason string
}

func (e *DataError) Error() string { return "bad bar data: " + e.Reason }

// RSISeries holds Wilder-smoothed RSI values aligned index-for-index with the
// input bars. Entries before the smoothing window has filled are NaN.
type RSISeries struct {
	Values []float64
	Period int
}

// Defined reports whether the value at index i carries a real RSI reading.
func (s *RSISeries) Defined(i int) bool {
	return i >= 0 && i < len(s.Values) && !math.IsNaN(s.Values[i])
}

// Current returns the most recent RSI value.
func (s *RSISeries) Current() (float64, bool) {
	return s.at(len(s.Values) - 1)
}

// Previous returns the RSI value one bar before the most recent.
func (s *RSISeries) Previous() (float64, bool) {
	return s.at(len(s.Values) - 2)
}

func (s *RSISeries) at(i int) (float64, bool) {
	if !s.Defined(i) {
		return 0, false
	}
	return s.Values[i], true
}

// ValidateBars checks that the sequence is non-empty, strictly ascending in
// time, and carries positive closes.
func ValidateBars(bars []model.OHLCV) error {
	if len(bars) == 0 {
		return &DataError{Reason: "empty bar sequence"}
	}
	for i, b := range bars {
		if b.Close <= 0 {
			return &DataError{Reason: fmt.Sprintf("non-positive close %.4f at index %d", b.Close, i)}
		}
		if i > 0 && !bars[i-1].Time.Before(b.Time) {
			return &DataError{Reason: fmt.Sprintf("non-ascending timestamp at index %d", i)}
		}
	}
	return nil
}

// CalculateRSISeries computes the Wilder-smoothed RSI over the given period.
// The result has one entry per bar; entries before index `period` are NaN.
// The seed is a simple average of the first `period` gains/losses, after
// which the recursive form avg = (avg*(period-1) + x) / period takes over.
// A zero average loss resolves to RSI = 100 rather than dividing by zero.
func CalculateRSISeries(bars []model.OHLCV, period int) (*RSISeries, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	if err := ValidateBars(bars); err != nil {
		return nil, err
	}
	if len(bars) < period+1 {
		return nil, ErrInsufficientData
	}

	closes := extractCloses(bars)
	values := make([]float64, len(closes))
	for i := range values {
		values[i] = math.NaN()
	}

	// Seed: simple average over the first `period` changes.
	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change // make positive
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	values[period] = rsiFrom(avgGain, avgLoss)

	// Wilder smoothing for remaining bars.
	for i := period + 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		values[i] = rsiFrom(avgGain, avgLoss)
	}

	return &RSISeries{Values: values, Period: period}, nil
}

func rsiFrom(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}
