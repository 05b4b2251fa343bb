package snapshot

import (
	"fmt"
	"math"
	"time"

	"github.com/rustyeddy/barscope/features"
	"github.com/rustyeddy/barscope/market"
)

// DefaultSwingLookback is the window PriceContext scans for recent extremes.
const DefaultSwingLookback = 50

// PriceContext carries the raw price levels a decision layer needs next to
// a snapshot.
type PriceContext struct {
	CurrentPrice    float64 `json:"current_price"`
	CurrentATR      float64 `json:"current_atr"`
	DayOpen         float64 `json:"day_open"`
	DayHigh         float64 `json:"day_high"`
	DayLow          float64 `json:"day_low"`
	RecentSwingHigh float64 `json:"recent_swing_high"`
	RecentSwingLow  float64 `json:"recent_swing_low"`
}

// BuildPriceContext reads price levels for barIndex from the frame. The day
// levels cover the bars of the same exchange-local day up to barIndex. It
// returns ErrIndexOutOfRange when barIndex is outside the frame.
func BuildPriceContext(f *features.Frame, loc *time.Location, barIndex, swingLookback int) (PriceContext, error) {
	if f == nil {
		return PriceContext{}, fmt.Errorf("%w: no bars", market.ErrIndexOutOfRange)
	}
	if err := f.Check(barIndex); err != nil {
		return PriceContext{}, err
	}
	if swingLookback <= 0 {
		swingLookback = DefaultSwingLookback
	}

	bar := f.Bars[barIndex]
	pc := PriceContext{
		CurrentPrice: bar.Close,
		CurrentATR:   f.ATR(barIndex),
		DayOpen:      bar.Open,
		DayHigh:      bar.High,
		DayLow:       bar.Low,
	}

	for j := barIndex - 1; j >= 0 && market.SameLocalDay(f.Bars[j].Time, bar.Time, loc); j-- {
		pc.DayOpen = f.Bars[j].Open
		pc.DayHigh = math.Max(pc.DayHigh, f.Bars[j].High)
		pc.DayLow = math.Min(pc.DayLow, f.Bars[j].Low)
	}

	pc.RecentSwingHigh, pc.RecentSwingLow = bar.High, bar.Low
	for j := max(0, barIndex-swingLookback+1); j < barIndex; j++ {
		pc.RecentSwingHigh = math.Max(pc.RecentSwingHigh, f.Bars[j].High)
		pc.RecentSwingLow = math.Min(pc.RecentSwingLow, f.Bars[j].Low)
	}
	return pc, nil
}

// PriceContext builds the price context of a snapshot from this result.
func (r *Result) PriceContext(s MarketSnapshot, swingLookback int) (PriceContext, error) {
	return BuildPriceContext(r.Frame, r.Location, s.Meta.BarIndex, swingLookback)
}
