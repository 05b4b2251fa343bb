package features

import "math"

// RegimeInputs are the records the regime scorer combines.
type RegimeInputs struct {
	Bar        BarStats
	LocalTrend LocalTrendStats
	Swing      SwingStructure
	Range      RangeStructure
	Reversals  ReversalSignals
}

// ComputeRegime scores the trending, ranging, reversal-setup and
// breakout-mode regimes.
func ComputeRegime(in RegimeInputs) RegimeScores {
	t, rg := in.LocalTrend, in.Range

	trending := 0.4*math.Min(math.Abs(t.EMASlope)*5, 1) +
		0.3*t.BarsAboveEMARatio +
		0.3*math.Min(float64(t.MicroChannelBars)/10, 1)

	h := rg.RangeHeightRelATR
	ranging := 0.6*rg.OverlapRatio + 0.4*heightScore(h)

	double := math.Max(in.Swing.DoubleTopScore, in.Swing.DoubleBottomScore)
	reversal := 0.4*double + 0.3*in.Swing.WedgeScore + 0.3*in.Reversals.ClimaxRunupScore

	tightness := 0.0
	if h > 0 {
		tightness = 1 - math.Min(h/2, 1)
	}
	breakout := 0.4*in.Bar.IsInsideScore + 0.3*tightness +
		0.3*math.Min(float64(rg.BreakoutAttempts)/3, 1)

	return RegimeScores{
		TrendingScore:      clamp01(trending),
		RangingScore:       clamp01(ranging),
		ReversalSetupScore: clamp01(reversal),
		BreakoutModeScore:  clamp01(breakout),
	}
}

// heightScore peaks when the range is 0.5 to 2 ATR tall.
func heightScore(h float64) float64 {
	switch {
	case h <= 0:
		return 0
	case h < 0.5:
		return h / 0.5
	case h <= 2:
		return 1
	}
	return math.Max(0, 1-(h-2)/3)
}
