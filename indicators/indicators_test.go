package indicators

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/barscope/market"
)

func closes(xs ...float64) []market.Bar {
	base := time.Date(2024, 1, 2, 14, 30, 0, 0, time.UTC)
	bars := make([]market.Bar, len(xs))
	for i, c := range xs {
		bars[i] = market.Bar{
			Time:   base.Add(time.Duration(i) * 5 * time.Minute),
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 1000,
		}
	}
	return bars
}

func TestEMAStreaming(t *testing.T) {
	ema := NewEMA(3)
	assert.Equal(t, "EMA(3)", ema.Name())
	assert.Equal(t, 1, ema.Warmup())
	assert.False(t, ema.Ready())

	bars := closes(1, 2, 3)
	want := []float64{1, 1.5, 2.25}
	for i, b := range bars {
		ema.Update(b)
		assert.True(t, ema.Ready())
		assert.InDelta(t, want[i], ema.Value(), 1e-12)
	}

	ema.Reset()
	assert.False(t, ema.Ready())
	assert.Equal(t, 0.0, ema.Value())
}

func TestEMAPanicsOnBadSpan(t *testing.T) {
	assert.Panics(t, func() { NewEMA(0) })
}

func TestEMASeriesSeededWithFirstClose(t *testing.T) {
	got := EMASeries(closes(10, 10, 10, 10), 20)
	for _, v := range got {
		assert.Equal(t, 10.0, v)
	}
}

// prevClose reports the close of the bar before the latest one.
type prevClose struct {
	seen       int
	last, prev float64
}

func (p *prevClose) Name() string   { return "PREV" }
func (p *prevClose) Warmup() int    { return 2 }
func (p *prevClose) Reset()         { *p = prevClose{} }
func (p *prevClose) Ready() bool    { return p.seen >= 2 }
func (p *prevClose) Value() float64 { return p.prev }
func (p *prevClose) Update(b market.Bar) {
	p.seen++
	p.prev, p.last = p.last, b.Close
}

func TestRunMarksWarmupNaN(t *testing.T) {
	got := Run(&prevClose{}, closes(5, 6, 7))
	require.Len(t, got, 3)
	assert.True(t, math.IsNaN(got[0]))
	assert.Equal(t, 5.0, got[1])
	assert.Equal(t, 6.0, got[2])
}

func TestRunResetsState(t *testing.T) {
	ema := NewEMA(3)
	first := Run(ema, closes(1, 2, 3))
	second := Run(ema, closes(1, 2, 3))
	assert.Equal(t, first, second)
	assert.InDelta(t, 2.25, second[2], 1e-12)
}

func TestTrueRange(t *testing.T) {
	tests := []struct {
		name     string
		current  market.Bar
		previous market.Bar
		want     float64
	}{
		{"inside bar", market.Bar{High: 110, Low: 100}, market.Bar{Close: 105}, 10},
		{"gap up", market.Bar{High: 120, Low: 115}, market.Bar{Close: 100}, 20},
		{"gap down", market.Bar{High: 90, Low: 85}, market.Bar{Close: 100}, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TrueRange(tt.current, tt.previous))
		})
	}
}

func TestATRSeries(t *testing.T) {
	bars := closes(10, 10, 10, 10, 10)
	atr := ATRSeries(bars, 3)
	require.Len(t, atr, 5)

	assert.True(t, math.IsNaN(atr[0]))
	assert.True(t, math.IsNaN(atr[1]))
	for i := 2; i < 5; i++ {
		assert.InDelta(t, 2.0, atr[i], 1e-12)
	}
}

func TestATRSeriesUsesPreviousClose(t *testing.T) {
	bars := []market.Bar{
		{High: 11, Low: 9, Close: 10},
		{High: 21, Low: 19, Close: 20}, // tr = 11
	}
	atr := ATRSeries(bars, 2)
	assert.InDelta(t, (2.0+11.0)/2, atr[1], 1e-12)
}

func TestVolumeZScore(t *testing.T) {
	z := VolumeZScore([]float64{1, 2, 3}, 3)
	assert.True(t, math.IsNaN(z[0]))
	assert.True(t, math.IsNaN(z[1]))
	assert.InDelta(t, 1/math.Sqrt(2.0/3.0), z[2], 1e-6)

	flat := VolumeZScore([]float64{5, 5, 5, 5}, 2)
	assert.InDelta(t, 0.0, flat[3], 1e-12)
}

func TestCompute(t *testing.T) {
	bars := closes(1, 2, 3, 4, 5, 6)

	s, err := Compute(bars, Periods{ATR: 3, EMA: 2, VolumeZ: 4})
	require.NoError(t, err)
	assert.Equal(t, 6, s.Len())

	_, ok := s.ATRAt(1)
	assert.False(t, ok)
	atr, ok := s.ATRAt(2)
	assert.True(t, ok)
	assert.Greater(t, atr, 0.0)

	_, ok = s.VolumeZAt(2)
	assert.False(t, ok)
	z, ok := s.VolumeZAt(3)
	assert.True(t, ok)
	assert.InDelta(t, 0.0, z, 1e-9)

	assert.Equal(t, 1.0, s.EMAAt(0))

	_, ok = s.ATRAt(99)
	assert.False(t, ok)
}

func TestComputeIsDeterministic(t *testing.T) {
	bars := closes(5, 7, 6, 9, 8, 11, 10)
	a, err := Compute(bars, Periods{ATR: 3, EMA: 3, VolumeZ: 3})
	require.NoError(t, err)
	b, err := Compute(bars, Periods{ATR: 3, EMA: 3, VolumeZ: 3})
	require.NoError(t, err)

	for i := 0; i < a.Len(); i++ {
		av, aok := a.ATRAt(i)
		bv, bok := b.ATRAt(i)
		assert.Equal(t, aok, bok)
		assert.Equal(t, av, bv)
		assert.Equal(t, a.EMAAt(i), b.EMAAt(i))
	}
}

func TestComputeInsufficientData(t *testing.T) {
	_, err := Compute(closes(1, 2), DefaultPeriods())
	require.Error(t, err)
	assert.ErrorIs(t, err, market.ErrInsufficientData)

	_, err = Compute(closes(1, 2, 3), Periods{ATR: 0, EMA: 1, VolumeZ: 1})
	require.Error(t, err)
}

func TestPeriodsMinBars(t *testing.T) {
	assert.Equal(t, 20, DefaultPeriods().MinBars())
	assert.Equal(t, 30, Periods{ATR: 10, EMA: 50, VolumeZ: 30}.MinBars())
}
