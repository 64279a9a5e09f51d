// Package signal classifies weekly RSI readings into discrete alert states.
package signal

import (
	"LeapsRadar/internal/calculator"
	"LeapsRadar/internal/model"
)

// Thresholds are the RSI bands the classifier operates on, carried as a value
// so callers and tests can parameterize them.
type Thresholds struct {
	Oversold         float64
	ApproachingUpper float64
	Recovery         float64
}

// DefaultThresholds returns the standard 30/35/40 bands.
func DefaultThresholds() Thresholds {
	return Thresholds{Oversold: 30, ApproachingUpper: 35, Recovery: 40}
}

// Inputs carries everything the classifier needs. No field is read from
// anywhere else; Classify is a pure function of this struct.
type Inputs struct {
	Ticker   string
	Tier     string
	Price    float64
	RSI      float64
	PrevRSI  float64
	HasPrev  bool
	High52w  float64
	Low52w   float64
	TrendSMA float64
}

// Classify maps the current and previous RSI plus price context into a
// SignalSnapshot. Exactly at the oversold threshold is NOT oversold, and
// exactly at the approaching upper bound is NOT approaching (strict <).
func Classify(in Inputs, th Thresholds) model.SignalSnapshot {
	state := model.StateNormal
	switch {
	case in.RSI < th.Oversold:
		state = model.StateOversold
	case in.RSI < th.ApproachingUpper:
		state = model.StateApproaching
	}

	return model.SignalSnapshot{
		Ticker:      in.Ticker,
		Tier:        in.Tier,
		Price:       in.Price,
		RSI:         in.RSI,
		PrevRSI:     in.PrevRSI,
		HasPrevRSI:  in.HasPrev,
		High52w:     in.High52w,
		Low52w:      in.Low52w,
		DrawdownPct: calculator.DrawdownPct(in.Price, in.High52w),
		TrendSMA:    in.TrendSMA,
		State:       state,
		JustCrossed: in.HasPrev && in.PrevRSI >= th.Oversold && in.RSI < th.Oversold,
	}
}

// Recovered reports whether the reading has climbed past the recovery
// threshold, ending any oversold episode for the ticker.
func Recovered(rsi float64, th Thresholds) bool {
	return rsi > th.Recovery
}
