// Package indicators computes the rolling series every feature stage reads:
// average true range, exponential moving average and volume z-score.
package indicators

import (
	"math"

	"github.com/rustyeddy/barscope/market"
)

// Indicator computes a single streaming value from bars.
// It is deterministic and safe to use in live, replay, and batch runs.
type Indicator interface {
	// Name returns a stable identifier like "EMA(20)".
	Name() string

	// Warmup returns how many updates are needed before Ready() can be true.
	Warmup() int

	// Reset clears all internal state.
	Reset()

	// Update consumes the next *closed* bar and updates internal state.
	Update(b market.Bar)

	// Ready reports whether Value() is meaningful (warmup completed).
	Ready() bool
}

// ValueF64 is implemented by indicators producing a float.
type ValueF64 interface {
	// Value returns the current indicator value. Callers should check Ready().
	Value() float64
}

// Float is a streaming indicator with a float value.
type Float interface {
	Indicator
	ValueF64
}

// Run resets ind, feeds it every bar and returns the value after each one.
// Entries before the indicator is Ready are NaN.
func Run(ind Float, bars []market.Bar) []float64 {
	ind.Reset()
	out := make([]float64, len(bars))
	for i, b := range bars {
		ind.Update(b)
		if ind.Ready() {
			out[i] = ind.Value()
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}
