package features

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/barscope/indicators"
	"github.com/rustyeddy/barscope/market"
)

func TestNewFrameLengthMismatch(t *testing.T) {
	s := &indicators.Series{ATR: make([]float64, 2), EMA: make([]float64, 2), VolumeZ: make([]float64, 2)}
	_, err := NewFrame(make([]market.Bar, 3), s)
	require.Error(t, err)

	_, err = NewFrame(nil, nil)
	require.Error(t, err)
}

func TestFrameCheck(t *testing.T) {
	f := flat(t, linearUptrend(5), 1, 100)
	assert.NoError(t, f.Check(0))
	assert.NoError(t, f.Check(4))
	assert.ErrorIs(t, f.Check(5), market.ErrIndexOutOfRange)
	assert.ErrorIs(t, f.Check(-1), market.ErrIndexOutOfRange)
}

func TestFrameATRUndefinedIsZero(t *testing.T) {
	f := flat(t, linearUptrend(3), 1, 100)
	f.Ind.ATR[1] = math.NaN()
	assert.Equal(t, 0.0, f.ATR(1))
	assert.True(t, f.Degenerate(1))
	assert.False(t, f.Degenerate(2))
}

func TestWindowStartClipsToZero(t *testing.T) {
	assert.Equal(t, 0, windowStart(3, 20))
	assert.Equal(t, 11, windowStart(30, 20))
}

func TestParamsValidate(t *testing.T) {
	assert.NoError(t, DefaultParams().Validate())

	p := DefaultParams()
	p.PivotSpan = 0
	assert.Error(t, p.Validate())

	p = DefaultParams()
	p.MinPivotMoveATR = -1
	assert.Error(t, p.Validate())
}
