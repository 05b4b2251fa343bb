// Package features turns a bar history and its indicator series into the
// per-bar feature records of a market snapshot: bar anatomy, local trend,
// swing structure, trading range, reversal signals, risk/reward and regime.
//
// Every function here is a pure read of a Frame. Nothing mutates the bars or
// the series, so distinct indices may be analyzed concurrently.
package features

import (
	"fmt"
	"math"

	"github.com/rustyeddy/barscope/indicators"
	"github.com/rustyeddy/barscope/market"
)

// eps guards divisions by a bar range or ATR that may be zero.
const eps = 1e-9

// Frame is a read-only arena: the bars and the indicator series aligned with
// them. Windows are index ranges into it, never copies.
type Frame struct {
	Bars []market.Bar
	Ind  *indicators.Series
}

// NewFrame pairs bars with their series. Both must have the same length.
func NewFrame(bars []market.Bar, ind *indicators.Series) (*Frame, error) {
	if ind == nil {
		return nil, fmt.Errorf("features: nil indicator series")
	}
	if ind.Len() != len(bars) {
		return nil, fmt.Errorf("features: %d bars but %d indicator entries", len(bars), ind.Len())
	}
	return &Frame{Bars: bars, Ind: ind}, nil
}

// Len returns the number of bars.
func (f *Frame) Len() int { return len(f.Bars) }

// Check returns ErrIndexOutOfRange unless 0 <= i < Len().
func (f *Frame) Check(i int) error {
	if i < 0 || i >= len(f.Bars) {
		return fmt.Errorf("%w: index %d, %d bars", market.ErrIndexOutOfRange, i, len(f.Bars))
	}
	return nil
}

// ATR returns ATR[i], or 0 when it is not yet defined.
func (f *Frame) ATR(i int) float64 {
	v, ok := f.Ind.ATRAt(i)
	if !ok {
		return 0
	}
	return v
}

// Degenerate reports whether bar i has no usable volatility unit: ATR is
// undefined or zero, or the bar itself has no range.
func (f *Frame) Degenerate(i int) bool {
	return f.ATR(i) <= 0 || f.Bars[i].Range() <= 0
}

// extremes returns the highest high and lowest low of bars [start, end].
func (f *Frame) extremes(start, end int) (hi, lo float64) {
	hi, lo = math.Inf(-1), math.Inf(1)
	for j := start; j <= end; j++ {
		hi = math.Max(hi, f.Bars[j].High)
		lo = math.Min(lo, f.Bars[j].Low)
	}
	return hi, lo
}

// overlaps reports whether bar j's high/low range touches bar j-1's.
func (f *Frame) overlaps(j int) bool {
	cur, prev := f.Bars[j], f.Bars[j-1]
	return cur.Low <= prev.High && cur.High >= prev.Low
}

// windowStart clips a lookback window ending at i to the sequence start.
func windowStart(i, lookback int) int {
	return max(0, i-lookback+1)
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(x, 1))
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
