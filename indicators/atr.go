package indicators

import (
	"math"

	"github.com/markcheno/go-talib"

	"github.com/rustyeddy/barscope/market"
)

// TrueRange returns max(high-low, |high-prevClose|, |low-prevClose|).
func TrueRange(current, previous market.Bar) float64 {
	highLow := current.High - current.Low
	highClose := math.Abs(current.High - previous.Close)
	lowClose := math.Abs(current.Low - previous.Close)

	return math.Max(highLow, math.Max(highClose, lowClose))
}

// TrueRanges returns the true range of every bar. The first bar has no
// previous close, so its true range is its own high-low.
func TrueRanges(bars []market.Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		if i == 0 {
			out[i] = b.High - b.Low
			continue
		}
		out[i] = TrueRange(b, bars[i-1])
	}
	return out
}

// ATRSeries is the simple rolling mean of true range over period bars.
// Entries before index period-1 are NaN. The caller guarantees
// len(bars) >= period.
func ATRSeries(bars []market.Bar, period int) []float64 {
	out := talib.Sma(TrueRanges(bars), period)
	for i := 0; i < period-1 && i < len(out); i++ {
		out[i] = math.NaN()
	}
	return out
}
