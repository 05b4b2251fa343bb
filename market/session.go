package market

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

// DefaultExchangeTZ is the exchange timezone used when none is configured.
const DefaultExchangeTZ = "America/New_York"

// Session tags a bar as regular or extended trading hours.
type Session string

const (
	SessionRTH     Session = "RTH"
	SessionETH     Session = "ETH"
	SessionUnknown Session = "UNKNOWN"
)

// String returns string representation
func (s Session) String() string {
	return string(s)
}

// LoadExchangeLocation resolves an IANA zone name, defaulting to New York.
func LoadExchangeLocation(name string) (*time.Location, error) {
	if name == "" {
		name = DefaultExchangeTZ
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load exchange timezone %q: %w", name, err)
	}
	return loc, nil
}

// InferSession reports RTH for exchange-local 09:30 <= t < 16:00.
func InferSession(t time.Time, loc *time.Location) Session {
	if t.IsZero() {
		return SessionUnknown
	}
	lt := t.In(loc)
	h, m := lt.Hour(), lt.Minute()

	afterOpen := h > 9 || (h == 9 && m >= 30)
	beforeClose := h < 16
	if afterOpen && beforeClose {
		return SessionRTH
	}
	return SessionETH
}

// TimeOfDayFraction maps exchange-local wall time onto [0,1): 0 is local
// midnight.
func TimeOfDayFraction(t time.Time, loc *time.Location) float64 {
	lt := t.In(loc)
	minutes := lt.Hour()*60 + lt.Minute()
	return float64(minutes) / (24 * 60)
}

// DayOfWeek returns 0 for Monday through 6 for Sunday in exchange-local time.
func DayOfWeek(t time.Time, loc *time.Location) int {
	return (int(t.In(loc).Weekday()) + 6) % 7
}

// SameLocalDay reports whether a and b fall on the same exchange-local
// calendar day.
func SameLocalDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// DayIndexes returns, for every bar, its zero based position within its
// exchange-local calendar day. The counter restarts at the first bar of each
// new day.
func DayIndexes(bars []Bar, loc *time.Location) []int {
	out := make([]int, len(bars))
	for i := 1; i < len(bars); i++ {
		if SameLocalDay(bars[i-1].Time, bars[i].Time, loc) {
			out[i] = out[i-1] + 1
		}
	}
	return out
}
