package market

import (
	"math"
	"time"
)

// GapKind classifies a hole between two consecutive bars.
type GapKind string

const (
	GapMinor      GapKind = "minor"        // one bar missing inside a day
	GapSuspicious GapKind = "suspicious"   // several bars missing inside a day, or a long outage
	GapSession    GapKind = "session"      // overnight, between two weekdays
	GapWeekend    GapKind = "weekend"      // the hole spans a Saturday or Sunday
	GapOutOfOrder GapKind = "out_of_order" // timestamp not after the previous bar
)

// Gap is the hole before bars[Index].
type Gap struct {
	Index    int
	Missing  int // whole bars missing, 0 for out of order
	Duration time.Duration
	Kind     GapKind
}

type GapStats struct {
	Bars        int
	GapCount    int
	MissingBars int
	Minor       int
	Suspicious  int
	Session     int
	Weekend     int
	OutOfOrder  int
	Longest     time.Duration
	LongestKind GapKind
}

// maxHolidayDays is the longest calendar span (Friday close to Tuesday
// open) still treated as an ordinary market closure.
const maxHolidayDays = 4

// FindGaps reports every place where consecutive bars are further apart
// than one timeframe, or not increasing.
func FindGaps(bars []Bar, timeframeMinutes float64, loc *time.Location) []Gap {
	if timeframeMinutes <= 0 || len(bars) < 2 {
		return nil
	}
	tf := time.Duration(timeframeMinutes * float64(time.Minute))

	var gaps []Gap
	for i := 1; i < len(bars); i++ {
		prev, cur := bars[i-1].Time, bars[i].Time
		d := cur.Sub(prev)
		if d <= 0 {
			gaps = append(gaps, Gap{Index: i, Duration: d, Kind: GapOutOfOrder})
			continue
		}
		if d <= tf {
			continue
		}
		missing := max(int(math.Round(float64(d)/float64(tf)))-1, 1)
		gaps = append(gaps, Gap{
			Index:    i,
			Missing:  missing,
			Duration: d,
			Kind:     classifyGap(prev, cur, missing, loc),
		})
	}
	return gaps
}

func classifyGap(prev, cur time.Time, missing int, loc *time.Location) GapKind {
	if SameLocalDay(prev, cur, loc) {
		if missing > 1 {
			return GapSuspicious
		}
		return GapMinor
	}

	py, pm, pd := prev.In(loc).Date()
	cy, cm, cd := cur.In(loc).Date()
	from := time.Date(py, pm, pd, 12, 0, 0, 0, loc)
	to := time.Date(cy, cm, cd, 12, 0, 0, 0, loc)
	days := int(math.Round(to.Sub(from).Hours() / 24))
	if days > maxHolidayDays {
		return GapSuspicious
	}
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			return GapWeekend
		}
	}
	return GapSession
}

// SummarizeGaps computes gap statistics over n bars.
func SummarizeGaps(gaps []Gap, n int) GapStats {
	s := GapStats{Bars: n}
	for _, g := range gaps {
		s.GapCount++
		s.MissingBars += g.Missing
		if g.Duration > s.Longest {
			s.Longest = g.Duration
			s.LongestKind = g.Kind
		}
		switch g.Kind {
		case GapMinor:
			s.Minor++
		case GapSuspicious:
			s.Suspicious++
		case GapSession:
			s.Session++
		case GapWeekend:
			s.Weekend++
		case GapOutOfOrder:
			s.OutOfOrder++
		}
	}
	return s
}
