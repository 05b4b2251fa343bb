package snapshot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/barscope/market"
)

func TestPriceContext(t *testing.T) {
	// Start the day late so the first bars belong to the previous evening.
	start := time.Date(2024, 3, 4, 22, 0, 0, 0, newYork(t))
	bars := genBars(60, start, 11)
	res, err := builder(t, nil).Build(context.Background(), bars)
	require.NoError(t, err)

	s := res.Snapshots[len(res.Snapshots)-1]
	i := s.Meta.BarIndex
	pc, err := res.PriceContext(s, 10)
	require.NoError(t, err)

	assert.Equal(t, bars[i].Close, pc.CurrentPrice)
	atr, ok := res.Frame.Ind.ATRAt(i)
	require.True(t, ok)
	assert.Equal(t, atr, pc.CurrentATR)

	// 22:00 + 24*5m is midnight, so bar 24 opens March 5.
	assert.Equal(t, bars[24].Open, pc.DayOpen)
	hi, lo := bars[24].High, bars[24].Low
	for j := 24; j <= i; j++ {
		hi = max(hi, bars[j].High)
		lo = min(lo, bars[j].Low)
	}
	assert.Equal(t, hi, pc.DayHigh)
	assert.Equal(t, lo, pc.DayLow)

	swingHi, swingLo := bars[i].High, bars[i].Low
	for j := i - 9; j <= i; j++ {
		swingHi = max(swingHi, bars[j].High)
		swingLo = min(swingLo, bars[j].Low)
	}
	assert.Equal(t, swingHi, pc.RecentSwingHigh)
	assert.Equal(t, swingLo, pc.RecentSwingLow)
}

func TestPriceContextOutOfRange(t *testing.T) {
	res, err := builder(t, nil).Build(context.Background(), genBars(30, mondayOpen(t), 12))
	require.NoError(t, err)

	s := res.Snapshots[0]
	s.Meta.BarIndex = 30
	_, err = res.PriceContext(s, 50)
	assert.ErrorIs(t, err, market.ErrIndexOutOfRange)

	s.Meta.BarIndex = -1
	_, err = res.PriceContext(s, 50)
	assert.ErrorIs(t, err, market.ErrIndexOutOfRange)

	_, err = BuildPriceContext(nil, newYork(t), 0, 50)
	assert.ErrorIs(t, err, market.ErrIndexOutOfRange)
}
