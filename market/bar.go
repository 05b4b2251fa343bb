package market

import (
	"fmt"
	"math"
	"time"
)

// Bar is one OHLCV price bar. Bars are owned by the caller and only read by
// the pipeline.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Range returns High-Low.
func (b Bar) Range() float64 {
	return b.High - b.Low
}

// Body returns the absolute open to close distance.
func (b Bar) Body() float64 {
	return math.Abs(b.Close - b.Open)
}

// Bull reports whether the bar closed above its open.
func (b Bar) Bull() bool { return b.Close > b.Open }

// Bear reports whether the bar closed below its open.
func (b Bar) Bear() bool { return b.Close < b.Open }

// Validate returns ErrMalformedBar for non-finite values or an inverted
// high/low pair.
func (b Bar) Validate() error {
	for _, v := range [...]float64{b.Open, b.High, b.Low, b.Close, b.Volume} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite value at %s", ErrMalformedBar, b.Time.Format(time.RFC3339))
		}
	}
	if b.High < b.Low {
		return fmt.Errorf("%w: high %.6f below low %.6f at %s",
			ErrMalformedBar, b.High, b.Low, b.Time.Format(time.RFC3339))
	}
	return nil
}
