package features

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeRiskReward(t *testing.T) {
	bars := dojis(100, 100, 100, 100)
	bars[1] = ohlc(100, 110, 100, 100)
	bars[2] = ohlc(100, 100, 90, 100)
	f := flat(t, bars, 2, 100)

	got := ComputeRiskReward(f, 3, 50)
	assert.InDelta(t, 5.0, got.NearestResistanceDist, 1e-9)
	assert.InDelta(t, 5.0, got.NearestSupportDist, 1e-9)
	assert.Equal(t, 1.0, got.StopDistanceSuggested)
	assert.Equal(t, 1.0, got.ScalpTargetDist)
	assert.Equal(t, 2.0, got.SwingTargetDist)
	assert.Equal(t, 1.0, got.RRScalpEstimate)
	assert.Equal(t, 2.0, got.RRSwingEstimate)
}

func TestComputeRiskRewardUndefinedATR(t *testing.T) {
	f := flat(t, dojis(100, 102, 98), 0, 100)
	f.Ind.ATR[2] = math.NaN()

	got := ComputeRiskReward(f, 2, 50)
	assert.False(t, math.IsInf(got.NearestResistanceDist, 0))
	assert.False(t, math.IsNaN(got.NearestSupportDist))
	assert.Greater(t, got.NearestResistanceDist, 0.0)
}

func TestApplyRegime(t *testing.T) {
	var m RiskRewardMetrics
	m.ApplyRegime(RegimeScores{TrendingScore: 0.5, ReversalSetupScore: 0.25, RangingScore: 0.25, BreakoutModeScore: 1})
	assert.InDelta(t, 0.5, m.ProbTrendContinuation, 1e-9)
	assert.InDelta(t, 0.25, m.ProbReversal, 1e-9)
	assert.InDelta(t, 0.25, m.ProbRangeContinuation, 1e-9)

	m.ApplyRegime(RegimeScores{})
	assert.Equal(t, RiskRewardMetrics{}, m)
}
