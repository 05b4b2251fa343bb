package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newYork(t *testing.T) *time.Location {
	t.Helper()
	loc, err := LoadExchangeLocation("")
	require.NoError(t, err)
	return loc
}

func TestDayIndexesResetAtLocalMidnight(t *testing.T) {
	loc := newYork(t)

	var bars []Bar
	day1 := time.Date(2025, 3, 4, 9, 30, 0, 0, loc)
	day2 := time.Date(2025, 3, 5, 9, 30, 0, 0, loc)
	for i := 0; i < 10; i++ {
		bars = append(bars, Bar{Time: day1.Add(time.Duration(i) * 5 * time.Minute)})
	}
	for i := 0; i < 10; i++ {
		bars = append(bars, Bar{Time: day2.Add(time.Duration(i) * 5 * time.Minute)})
	}

	idx := DayIndexes(bars, loc)
	require.Len(t, idx, 20)
	for i := 0; i < 10; i++ {
		assert.Equal(t, i, idx[i])
		assert.Equal(t, i, idx[i+10])
	}
}

func TestDayIndexesUseExchangeTime(t *testing.T) {
	loc := newYork(t)

	// 03:00Z and 05:00Z are the same UTC day but straddle New York midnight.
	bars := []Bar{
		{Time: time.Date(2025, 3, 4, 3, 0, 0, 0, time.UTC)},
		{Time: time.Date(2025, 3, 4, 4, 0, 0, 0, time.UTC)},
		{Time: time.Date(2025, 3, 4, 5, 0, 0, 0, time.UTC)},
	}
	assert.Equal(t, []int{0, 1, 0}, DayIndexes(bars, loc))
}

func TestInferSession(t *testing.T) {
	loc := newYork(t)

	tests := []struct {
		name string
		h, m int
		want Session
	}{
		{"pre-market", 9, 29, SessionETH},
		{"open", 9, 30, SessionRTH},
		{"midday", 12, 0, SessionRTH},
		{"last minute", 15, 59, SessionRTH},
		{"close", 16, 0, SessionETH},
		{"overnight", 2, 0, SessionETH},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := time.Date(2025, 3, 4, tt.h, tt.m, 0, 0, loc)
			assert.Equal(t, tt.want, InferSession(ts, loc))
		})
	}

	assert.Equal(t, SessionUnknown, InferSession(time.Time{}, loc))
}

func TestTimeOfDayFractionAndWeekday(t *testing.T) {
	loc := newYork(t)

	noon := time.Date(2025, 3, 4, 12, 0, 0, 0, loc) // Tuesday
	assert.InDelta(t, 0.5, TimeOfDayFraction(noon, loc), 1e-12)
	assert.Equal(t, 1, DayOfWeek(noon, loc))

	midnight := time.Date(2025, 3, 9, 0, 0, 0, 0, loc) // Sunday
	assert.Equal(t, 0.0, TimeOfDayFraction(midnight, loc))
	assert.Equal(t, 6, DayOfWeek(midnight, loc))
}

func TestLoadExchangeLocationRejectsUnknownZone(t *testing.T) {
	_, err := LoadExchangeLocation("Mars/Olympus_Mons")
	require.Error(t, err)
}
