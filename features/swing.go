package features

import "math"

// SwingPivots runs the pivot detector over the swing lookback ending at i.
func SwingPivots(f *Frame, i int, p Params) []Pivot {
	return DetectPivots(f, windowStart(i, p.SwingLookback), i, p.PivotSpan, p.MinPivotMoveATR)
}

// ComputeSwing derives the swing structure at bar i from pivots. With fewer
// than three pivots it returns the zero value.
func ComputeSwing(f *Frame, i int, pivots []Pivot) SwingStructure {
	n := len(pivots)
	if n < 3 {
		return SwingStructure{}
	}
	atr := f.ATR(i)

	p1, p2, p3 := pivots[n-3].Price, pivots[n-2].Price, pivots[n-1].Price
	leg1 := math.Abs(p2 - p1)
	leg2 := math.Abs(p3 - p2)

	var s SwingStructure
	if atr > 0 {
		s.SwingLeg1Size = leg1 / atr
		s.SwingLeg2Size = leg2 / atr
	}
	if leg1 > 0 {
		s.Leg2VsLeg1Ratio = leg2 / leg1
	}
	s.SwingDirection = sign(p3 - p2)
	s.HHLLScore = hhllScore(pivots[max(0, n-4):])

	s.WedgePushCount = pushCount(pivots)
	switch {
	case s.WedgePushCount >= 3:
		s.WedgeScore = 1
	case s.WedgePushCount == 2:
		s.WedgeScore = 0.5
	}

	s.DoubleTopScore = doubleScore(lastOfKind(pivots, PivotHigh, 2), atr)
	s.DoubleBottomScore = doubleScore(lastOfKind(pivots, PivotLow, 2), atr)
	return s
}

// hhllScore gives 0.5 for a higher high and 0.5 for a higher low.
func hhllScore(recent []Pivot) float64 {
	score := 0.0
	if highs := lastOfKind(recent, PivotHigh, 2); len(highs) == 2 && highs[1].Price > highs[0].Price {
		score += 0.5
	}
	if lows := lastOfKind(recent, PivotLow, 2); len(lows) == 2 && lows[1].Price > lows[0].Price {
		score += 0.5
	}
	return score
}

// pushCount walks up to five pivot-to-pivot moves back from the most recent
// and counts the leading run of same-signed moves.
func pushCount(pivots []Pivot) int {
	n := len(pivots)
	moves := min(5, n-1)
	first := 0.0
	count := 0
	for k := 0; k < moves; k++ {
		d := sign(pivots[n-1-k].Price - pivots[n-2-k].Price)
		if k == 0 {
			if d == 0 {
				return 0
			}
			first = d
		}
		if d != first {
			break
		}
		count++
	}
	return count
}

// doubleScore is 1 - diff/(0.5 ATR) when two same-kind pivots are within
// half an ATR of each other.
func doubleScore(pair []Pivot, atr float64) float64 {
	if len(pair) < 2 || atr <= 0 {
		return 0
	}
	tol := 0.5 * atr
	diff := math.Abs(pair[1].Price - pair[0].Price)
	if diff > tol {
		return 0
	}
	return clamp01(1 - diff/tol)
}
