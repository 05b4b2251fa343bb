package features

import "math"

// ReversalInputs are the upstream records the reversal stage reads.
type ReversalInputs struct {
	Pivots     []Pivot
	Swing      SwingStructure
	LocalTrend LocalTrendStats
	Range      RangeStructure
}

// ComputeReversal scores reversal patterns at bar i.
func ComputeReversal(f *Frame, i int, p Params, in ReversalInputs) ReversalSignals {
	var s ReversalSignals
	atr := f.ATR(i)

	climax, sinceClimax, found := climaxRunup(f, i, p.ClimaxLookback, atr)
	s.ClimaxRunupScore = climax
	s.PullbackAfterClimaxBars = sinceClimax

	sw := in.Swing
	switch {
	case sw.SwingDirection > 0:
		if sw.Leg2VsLeg1Ratio < 0.7 {
			s.HigherLowScore = clamp01(1 - sw.Leg2VsLeg1Ratio)
		}
		s.High1Score, s.High2Score = pushSignal(sw.WedgePushCount)
	case sw.SwingDirection < 0:
		if sw.Leg2VsLeg1Ratio < 0.7 {
			s.LowerHighScore = clamp01(1 - sw.Leg2VsLeg1Ratio)
		}
		s.Low1Score, s.Low2Score = pushSignal(sw.WedgePushCount)
	}

	s.TrendlineBreakScore, s.ChannelOvershootScore = trendLines(f, i, in.Pivots, sign(in.LocalTrend.EMASlope), atr)

	if found {
		s.FinalFlagScore = clamp01(in.LocalTrend.TrendPersistence * math.Min(float64(in.Range.TimeInRangeBars)/5, 1))
	}
	return s
}

// climaxRunup blends the fraction of big-range bars (range > 1.5 ATR) with
// the fraction of trend bars (body > 60% of range) in the dominant direction
// over the lookback. It also reports how many bars ago the latest bar that
// was both big and a trend bar printed.
func climaxRunup(f *Frame, i, lookback int, atr float64) (score float64, since int, found bool) {
	start := windowStart(i, lookback)
	n := float64(i - start + 1)
	big, bull, bear := 0, 0, 0
	for j := start; j <= i; j++ {
		b := f.Bars[j]
		isBig := atr > 0 && b.Range() > 1.5*atr
		isTrend := b.Range() > 0 && b.Body() > 0.6*b.Range()
		if isBig {
			big++
		}
		if isTrend {
			if b.Bull() {
				bull++
			} else {
				bear++
			}
		}
		if isBig && isTrend {
			since, found = i-j, true
		}
	}
	trend := max(bull, bear)
	return clamp01(0.6*float64(big)/n + 0.4*float64(trend)/n), since, found
}

// pushSignal maps a push count to the first and second entry scores.
func pushSignal(count int) (first, second float64) {
	switch {
	case count >= 3:
		return 0, 0.9
	case count == 2:
		return 0, 0.7
	case count == 1:
		return 0.5, 0
	}
	return 0, 0
}

// trendLines draws the trend line through the last two pivots that support
// the trend (lows in an uptrend, highs in a downtrend) and the channel line
// through the last two opposite pivots, both projected to bar i. The break
// score is how far the close sits beyond the trend line, the overshoot how far
// the bar's extreme pokes through the channel line, each in ATR units.
func trendLines(f *Frame, i int, pivots []Pivot, dir, atr float64) (brk, overshoot float64) {
	if atr <= 0 || dir == 0 {
		return 0, 0
	}
	support, channel := PivotLow, PivotHigh
	if dir < 0 {
		support, channel = PivotHigh, PivotLow
	}
	b := f.Bars[i]

	if line, ok := project(lastOfKind(pivots, support, 2), i); ok {
		brk = clamp01(dir * (line - b.Close) / atr)
	}
	if line, ok := project(lastOfKind(pivots, channel, 2), i); ok {
		extreme := b.High
		if dir < 0 {
			extreme = b.Low
		}
		overshoot = clamp01(dir * (extreme - line) / atr)
	}
	return brk, overshoot
}

// project extends the line through two pivots to index i.
func project(pair []Pivot, i int) (float64, bool) {
	if len(pair) < 2 || pair[1].Index == pair[0].Index {
		return 0, false
	}
	a, b := pair[0], pair[1]
	slope := (b.Price - a.Price) / float64(b.Index-a.Index)
	return b.Price + slope*float64(i-b.Index), true
}
