package features

import "math"

// PivotKind tells a swing high from a swing low.
type PivotKind int

const (
	PivotHigh PivotKind = iota + 1
	PivotLow
)

func (k PivotKind) String() string {
	switch k {
	case PivotHigh:
		return "H"
	case PivotLow:
		return "L"
	}
	return "?"
}

// Pivot is a confirmed local extreme.
type Pivot struct {
	Index int       `json:"index"`
	Kind  PivotKind `json:"kind"`
	Price float64   `json:"price"`
}

// DetectPivots finds fractal pivots among bars [start, end] (inclusive,
// absolute indices). Bar j qualifies when span bars on both sides lie inside
// the range; it is a High if its high is the maximum of [j-span, j+span],
// otherwise a Low if its low is the minimum. Highs are checked first, so a
// bar that is both is reported as a High only.
//
// The raw list is then filtered into a ladder: the first pivot is kept, and
// each later one must have a strictly larger index than the previously kept
// pivot and differ from its price by at least minMoveATR x ATR at its own
// index (the move test is skipped while that ATR is undefined or zero).
//
// An empty slice is returned when the range is too short for one candidate.
func DetectPivots(f *Frame, start, end, span int, minMoveATR float64) []Pivot {
	start = max(start, 0)
	end = min(end, f.Len()-1)
	if end-start+1 < 2*span+1 {
		return nil
	}

	raw := make([]Pivot, 0, (end-start)/max(span, 1)+1)
	for j := start + span; j <= end-span; j++ {
		bar := f.Bars[j]
		hi, lo := true, true
		for k := j - span; k <= j+span; k++ {
			if f.Bars[k].High > bar.High {
				hi = false
			}
			if f.Bars[k].Low < bar.Low {
				lo = false
			}
			if !hi && !lo {
				break
			}
		}
		if hi {
			raw = append(raw, Pivot{Index: j, Kind: PivotHigh, Price: bar.High})
		} else if lo {
			raw = append(raw, Pivot{Index: j, Kind: PivotLow, Price: bar.Low})
		}
	}
	return filterPivots(f, raw, minMoveATR)
}

func filterPivots(f *Frame, raw []Pivot, minMoveATR float64) []Pivot {
	if len(raw) == 0 {
		return nil
	}
	out := make([]Pivot, 0, len(raw))
	out = append(out, raw[0])
	for _, p := range raw[1:] {
		last := out[len(out)-1]
		if p.Index <= last.Index {
			continue
		}
		if atr := f.ATR(p.Index); atr > 0 && math.Abs(p.Price-last.Price) < minMoveATR*atr {
			continue
		}
		out = append(out, p)
	}
	return out
}

// lastOfKind returns up to the n most recent pivots of kind, oldest first.
func lastOfKind(pivots []Pivot, kind PivotKind, n int) []Pivot {
	out := make([]Pivot, 0, n)
	for j := len(pivots) - 1; j >= 0 && len(out) < n; j-- {
		if pivots[j].Kind == kind {
			out = append(out, pivots[j])
		}
	}
	for a, b := 0, len(out)-1; a < b; a, b = a+1, b-1 {
		out[a], out[b] = out[b], out[a]
	}
	return out
}
