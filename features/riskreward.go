package features

import "math"

// Fixed geometry, in ATR units.
const (
	stopATR        = 1.0
	scalpTargetATR = 1.0
	swingTargetATR = 2.0
)

// ComputeRiskReward measures distance to the recent extremes and attaches the
// fixed stop/target geometry. The probability fields are filled in by
// ApplyRegime once the regime is known.
func ComputeRiskReward(f *Frame, i, lookback int) RiskRewardMetrics {
	atr := math.Max(f.ATR(i), eps)
	hi, lo := f.extremes(windowStart(i, lookback), i)
	c := f.Bars[i].Close

	return RiskRewardMetrics{
		NearestResistanceDist: math.Max(0, (hi-c)/atr),
		NearestSupportDist:    math.Max(0, (c-lo)/atr),
		StopDistanceSuggested: stopATR,
		ScalpTargetDist:       scalpTargetATR,
		SwingTargetDist:       swingTargetATR,
		RRScalpEstimate:       scalpTargetATR / stopATR,
		RRSwingEstimate:       swingTargetATR / stopATR,
	}
}

// ApplyRegime turns the trending, reversal and ranging scores into rough
// continuation/reversal/range probabilities that sum to 1, or all zero when
// every score is zero.
func (m *RiskRewardMetrics) ApplyRegime(r RegimeScores) {
	total := r.TrendingScore + r.ReversalSetupScore + r.RangingScore
	if total <= 0 {
		m.ProbTrendContinuation, m.ProbReversal, m.ProbRangeContinuation = 0, 0, 0
		return
	}
	m.ProbTrendContinuation = r.TrendingScore / total
	m.ProbReversal = r.ReversalSetupScore / total
	m.ProbRangeContinuation = r.RangingScore / total
}
