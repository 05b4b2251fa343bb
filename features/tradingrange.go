package features

import "math"

// barbwireBars is the window of the barbwire test.
const barbwireBars = 5

// ComputeRange measures trading-range structure over the lookback window
// ending at i.
func ComputeRange(f *Frame, i, lookback int) RangeStructure {
	var s RangeStructure
	start := windowStart(i, lookback)
	atr := f.ATR(i)

	overlaps := 0
	for j := start + 1; j <= i; j++ {
		if f.overlaps(j) {
			overlaps++
		}
	}
	s.OverlapRatio = float64(overlaps) / float64(max(1, i-start))

	hi, lo := f.extremes(start, i)
	if atr > 0 {
		s.RangeHeightRelATR = (hi - lo) / atr
	}

	tol := 0.2 * atr
	if atr <= 0 {
		tol = 0.05 * (hi - lo)
	}
	for j := start; j <= i; j++ {
		if math.Abs(f.Bars[j].High-hi) <= tol {
			s.TestsOfRangeHigh++
		}
		if math.Abs(f.Bars[j].Low-lo) <= tol {
			s.TestsOfRangeLow++
		}
	}

	attempts, failed := breakouts(f, start, i, tol)
	s.BreakoutAttempts = attempts
	if attempts > 0 {
		s.BreakoutFailRatio = float64(failed) / float64(attempts)
	}

	s.TimeInRangeBars = timeInRange(f, start, i)
	s.BarbwireScore = barbwire(f, max(start, i-barbwireBars+1), i)
	return s
}

// breakouts compares every bar j after the first with the range built by the
// window's bars before it. A bar clearing that range by more than tol is an
// attempt; it failed when bar j+1 closes back inside the tolerance band. An
// attempt at i itself has no following bar yet and cannot have failed.
func breakouts(f *Frame, start, i int, tol float64) (attempts, failed int) {
	runHi, runLo := f.Bars[start].High, f.Bars[start].Low
	for j := start + 1; j <= i; j++ {
		b := f.Bars[j]
		if b.High > runHi+tol || b.Low < runLo-tol {
			attempts++
			if j < i {
				c := f.Bars[j+1].Close
				if c >= runLo-tol && c <= runHi+tol {
					failed++
				}
			}
		}
		runHi = math.Max(runHi, b.High)
		runLo = math.Min(runLo, b.Low)
	}
	return attempts, failed
}

// timeInRange counts the bars in the unbroken chain of overlapping bars that
// ends at i. A bar that does not overlap its predecessor yields 0.
func timeInRange(f *Frame, start, i int) int {
	pairs := 0
	for j := i; j > start && f.overlaps(j); j-- {
		pairs++
	}
	if pairs == 0 {
		return 0
	}
	return pairs + 1
}

// barbwire multiplies the overlap fraction of bars [start, i] by the fraction
// of them with a small body.
func barbwire(f *Frame, start, i int) float64 {
	if i <= start {
		return 0
	}
	overlaps, small := 0, 0
	for j := start; j <= i; j++ {
		if j > start && f.overlaps(j) {
			overlaps++
		}
		b := f.Bars[j]
		if b.Body()/math.Max(b.Range(), eps) < 0.4 {
			small++
		}
	}
	ov := float64(overlaps) / float64(i-start)
	sm := float64(small) / float64(i-start+1)
	return clamp01(ov * sm)
}
