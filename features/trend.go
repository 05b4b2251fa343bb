package features

import "math"

// maxPullbackDepth caps the pullback depth ratio.
const maxPullbackDepth = 3.0

// ComputeLocalTrend measures the trend over the lookback window ending at i.
func ComputeLocalTrend(f *Frame, i, lookback int) LocalTrendStats {
	var s LocalTrendStats
	start := windowStart(i, lookback)
	atr := f.ATR(i)
	ema := f.Ind.EMA

	if k := min(lookback, i); atr > 0 && k > 0 {
		s.EMASlope = (ema[i] - ema[i-k]) / (atr * float64(k))
	}

	above := 0
	for j := start; j <= i; j++ {
		if f.Bars[j].Close > ema[j] {
			above++
		}
	}
	s.BarsAboveEMARatio = float64(above) / float64(i-start+1)

	s.ConsecutiveBullBars, s.ConsecutiveBearBars = consecutiveRun(f, start, i)
	s.MicroChannelBars = microChannel(f, start, i)
	s.PullbackDepthRel, s.PullbackBars = pullback(f, start, i)

	micro := math.Min(float64(s.MicroChannelBars)/float64(max(lookback, 1)), 1)
	slope := math.Abs(s.EMASlope)
	s.SpikeStrength = clamp01(0.5*slope + 0.3*s.BarsAboveEMARatio + 0.2*micro)
	s.TrendPersistence = clamp01(0.5*math.Min(3*slope, 1) + 0.3*s.BarsAboveEMARatio + 0.2*micro)
	return s
}

// consecutiveRun counts same-direction bars ending at i. A doji, or a bar of
// the other color, ends the run.
func consecutiveRun(f *Frame, start, i int) (bull, bear int) {
	for j := i; j >= start; j-- {
		b := f.Bars[j]
		switch {
		case b.Bull():
			if bear > 0 {
				return bull, bear
			}
			bull++
		case b.Bear():
			if bull > 0 {
				return bull, bear
			}
			bear++
		default:
			return bull, bear
		}
	}
	return bull, bear
}

// microChannel walks back from bar i. The bar before the anchor sets the
// direction: a lower low means the anchor sits in a rising channel, a higher
// high a falling one. Each earlier bar must keep extending that extreme.
func microChannel(f *Frame, start, i int) int {
	const (
		none = iota
		up
		down
	)
	dir := none
	count := 0
	prevLow, prevHigh := f.Bars[i].Low, f.Bars[i].High

	for j := i - 1; j >= start; j-- {
		b := f.Bars[j]
		if dir == none {
			switch {
			case b.Low < prevLow:
				dir = up
			case b.High > prevHigh:
				dir = down
			default:
				return count
			}
		}
		switch dir {
		case up:
			if b.Low >= prevLow {
				return count
			}
			prevLow = b.Low
		case down:
			if b.High <= prevHigh {
				return count
			}
			prevHigh = b.High
		}
		count++
	}
	return count
}

// pullback finds the bar furthest from the EMA in [start, i] (latest wins a
// tie). When the current close sits on the other side of the EMA, or on it,
// the depth is the retrace from that extreme in units of its deviation.
func pullback(f *Frame, start, i int) (depth float64, bars int) {
	ema := f.Ind.EMA
	ext := i
	extDev := 0.0
	for j := i; j >= start; j-- {
		if d := math.Abs(f.Bars[j].Close - ema[j]); d > extDev {
			ext, extDev = j, d
		}
	}
	if extDev == 0 {
		return 0, 0
	}

	devExt := f.Bars[ext].Close - ema[ext]
	devCur := f.Bars[i].Close - ema[i]
	if sign(devCur) == sign(devExt) {
		return 0, 0
	}
	depth = math.Abs(f.Bars[i].Close-f.Bars[ext].Close) / math.Abs(devExt)
	return math.Min(depth, maxPullbackDepth), i - ext
}
