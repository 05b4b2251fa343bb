package market

import (
	"fmt"
	"time"
)

// Resample aggregates bars into buckets of minutes, anchored at local
// midnight in loc. A bucket is emitted only when at least minBars valid
// source bars fall into it. Malformed source bars are skipped. bars must be
// in time order.
func Resample(bars []Bar, minutes float64, minBars int, loc *time.Location) ([]Bar, error) {
	if minutes <= 0 || minutes != float64(int64(minutes)) {
		return nil, fmt.Errorf("resample: invalid timeframe minutes %v", minutes)
	}
	if minBars < 1 {
		minBars = 1
	}
	size := time.Duration(minutes) * time.Minute

	var (
		out   []Bar
		cur   Bar
		key   time.Time
		count int
	)
	flush := func() {
		if count >= minBars {
			out = append(out, cur)
		}
		count = 0
	}

	for _, b := range bars {
		if b.Validate() != nil {
			continue
		}

		lt := b.Time.In(loc)
		midnight := time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
		start := midnight.Add(lt.Sub(midnight) / size * size)

		if count == 0 || !start.Equal(key) {
			if count > 0 {
				flush()
			}
			key = start
			cur = Bar{Time: start, Open: b.Open, High: b.High, Low: b.Low, Close: b.Close, Volume: b.Volume}
			count = 1
			continue
		}

		cur.High = max(cur.High, b.High)
		cur.Low = min(cur.Low, b.Low)
		cur.Close = b.Close
		cur.Volume += b.Volume
		count++
	}
	if count > 0 {
		flush()
	}
	return out, nil
}
