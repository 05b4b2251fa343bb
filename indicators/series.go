package indicators

import (
	"fmt"
	"math"

	"github.com/rustyeddy/barscope/market"
)

// Periods configures the rolling windows.
type Periods struct {
	ATR     int `json:"atr" yaml:"atr"`
	EMA     int `json:"ema" yaml:"ema"`
	VolumeZ int `json:"volume_z" yaml:"volume_z"`
}

// DefaultPeriods returns 20/20/20.
func DefaultPeriods() Periods {
	return Periods{ATR: 20, EMA: 20, VolumeZ: 20}
}

// MinBars is the shortest bar sequence every configured indicator accepts.
// The EMA has no warm-up and needs a single bar.
func (p Periods) MinBars() int {
	return max(p.ATR, p.VolumeZ, 1)
}

// Validate checks that every period is positive.
func (p Periods) Validate() error {
	if p.ATR <= 0 {
		return fmt.Errorf("atr period must be positive, got %d", p.ATR)
	}
	if p.EMA <= 0 {
		return fmt.Errorf("ema period must be positive, got %d", p.EMA)
	}
	if p.VolumeZ <= 0 {
		return fmt.Errorf("volume z-score lookback must be positive, got %d", p.VolumeZ)
	}
	return nil
}

// Series holds three index-aligned sequences. Undefined entries (before the
// warm-up length) are NaN; use the At accessors rather than reading the
// slices blindly.
type Series struct {
	Periods
	ATR     []float64
	EMA     []float64
	VolumeZ []float64
}

// Compute precomputes the ATR, EMA and volume z-score series for bars. It is a
// pure function of its inputs. Bars are expected to be validated already.
func Compute(bars []market.Bar, p Periods) (*Series, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if len(bars) < p.MinBars() {
		return nil, fmt.Errorf("%w: need %d bars, got %d", market.ErrInsufficientData, p.MinBars(), len(bars))
	}

	volumes := make([]float64, len(bars))
	for i, b := range bars {
		volumes[i] = b.Volume
	}

	return &Series{
		Periods: p,
		ATR:     ATRSeries(bars, p.ATR),
		EMA:     EMASeries(bars, p.EMA),
		VolumeZ: VolumeZScore(volumes, p.VolumeZ),
	}, nil
}

// Len returns the number of aligned entries.
func (s *Series) Len() int { return len(s.EMA) }

// ATRAt returns ATR[i] and whether it is defined.
func (s *Series) ATRAt(i int) (float64, bool) {
	return defined(s.ATR, i)
}

// EMAAt returns EMA[i]; the EMA is defined from the first bar.
func (s *Series) EMAAt(i int) float64 {
	return s.EMA[i]
}

// VolumeZAt returns the volume z-score at i and whether it is defined.
func (s *Series) VolumeZAt(i int) (float64, bool) {
	return defined(s.VolumeZ, i)
}

func defined(xs []float64, i int) (float64, bool) {
	if i < 0 || i >= len(xs) {
		return 0, false
	}
	v := xs[i]
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
