package features

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/barscope/indicators"
	"github.com/rustyeddy/barscope/market"
)

var t0 = time.Date(2024, 3, 4, 14, 30, 0, 0, time.UTC)

func ohlc(o, h, l, c float64) market.Bar {
	return market.Bar{Open: o, High: h, Low: l, Close: c, Volume: 1000}
}

func stamp(bars []market.Bar) []market.Bar {
	for i := range bars {
		bars[i].Time = t0.Add(time.Duration(i) * 5 * time.Minute)
	}
	return bars
}

// computed builds a frame with real indicator series.
func computed(t *testing.T, bars []market.Bar, p indicators.Periods) *Frame {
	t.Helper()
	ind, err := indicators.Compute(stamp(bars), p)
	require.NoError(t, err)
	f, err := NewFrame(bars, ind)
	require.NoError(t, err)
	return f
}

// flat builds a frame whose ATR and EMA are constant.
func flat(t *testing.T, bars []market.Bar, atr, ema float64) *Frame {
	t.Helper()
	n := len(bars)
	s := &indicators.Series{
		ATR:     make([]float64, n),
		EMA:     make([]float64, n),
		VolumeZ: make([]float64, n),
	}
	for i := range n {
		s.ATR[i] = atr
		s.EMA[i] = ema
	}
	f, err := NewFrame(stamp(bars), s)
	require.NoError(t, err)
	return f
}

// linearUptrend closes 2 points higher every bar with a constant 1 point
// range, so adjacent bars never overlap.
func linearUptrend(n int) []market.Bar {
	bars := make([]market.Bar, n)
	for i := range bars {
		c := 100 + 2*float64(i)
		bars[i] = ohlc(c-0.4, c+0.5, c-0.5, c)
	}
	return bars
}

// stairs rises three bars and dips two, over and over.
func stairs(n int) []market.Bar {
	bars := make([]market.Bar, n)
	c := 100.0
	for i := range bars {
		if i%5 < 3 {
			c += 3
		} else {
			c -= 2
		}
		bars[i] = ohlc(c-0.5, c+1, c-1, c)
	}
	return bars
}

func randomWalk(n int, seed uint64) []market.Bar {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	bars := make([]market.Bar, n)
	c := 100.0
	for i := range bars {
		o := c
		c += r.NormFloat64() * 1.5
		h := max(o, c) + r.Float64()*2
		l := min(o, c) - r.Float64()*2
		bars[i] = market.Bar{Open: o, High: h, Low: l, Close: c, Volume: 500 + r.Float64()*1000}
	}
	return bars
}
