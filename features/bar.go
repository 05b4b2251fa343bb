package features

import "math"

// ComputeBarStats decomposes bar i. An undefined ATR is treated as 0, which
// zeroes the ATR-relative fields. Bar 0 is its own previous bar.
func ComputeBarStats(f *Frame, i int) BarStats {
	b := f.Bars[i]
	prev := b
	if i > 0 {
		prev = f.Bars[i-1]
	}
	atr := f.ATR(i)

	rng := math.Max(b.High-b.Low, eps)
	body := b.Body()
	upperTail := math.Max(b.High-math.Max(b.Open, b.Close), 0)
	lowerTail := math.Max(math.Min(b.Open, b.Close)-b.Low, 0)

	s := BarStats{
		BodyRel:      body / rng,
		UpperTailRel: upperTail / rng,
		LowerTailRel: lowerTail / rng,
		ClosePosRel:  (b.Close - b.Low) / rng,
	}
	if atr > 0 {
		s.RangeRelATR = rng / atr
		s.GapToPrevClose = (b.Open - prev.Close) / atr
	}

	trendBody := math.Min(s.BodyRel/0.7, 1)
	closeToEdge := math.Abs(s.ClosePosRel-0.5) * 2
	tailPenalty := math.Max(0, 1-(s.UpperTailRel+s.LowerTailRel))
	s.IsTrendBarScore = clamp01(0.5*trendBody + 0.3*closeToEdge + 0.2*tailPenalty)

	s.IsDojiScore = clamp01((0.4 - s.BodyRel) / 0.4)

	if b.High > prev.High && b.Low < prev.Low {
		s.IsOutsideScore = 1
	}
	if b.High < prev.High && b.Low > prev.Low {
		s.IsInsideScore = 1
	}

	if z, ok := f.Ind.VolumeZAt(i); ok {
		s.VolumeZScore = z
	}
	return s
}
