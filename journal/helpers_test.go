package journal

import (
	"time"

	"github.com/rustyeddy/barscope/features"
	"github.com/rustyeddy/barscope/market"
	"github.com/rustyeddy/barscope/snapshot"
)

func testSnapshot(i int) snapshot.MarketSnapshot {
	ts := time.Date(2024, 3, 4, 14, 30, 0, 0, time.UTC).Add(time.Duration(i) * 5 * time.Minute)
	return snapshot.MarketSnapshot{
		Meta: snapshot.MetaContext{
			Timestamp: ts,
			Symbol:    "ES",
			DayIndex:  i,
			Session:   market.SessionRTH,
			DayOfWeek: 0,
			BarIndex:  20 + i,
		},
		Bar: features.BarStats{BodyRel: 0.5, ClosePosRel: 0.75, IsTrendBarScore: 0.6},
		LocalTrend: features.LocalTrendStats{
			EMASlope:            0.25,
			ConsecutiveBullBars: 3,
		},
		Swing:  features.SwingStructure{SwingDirection: 1, WedgePushCount: 2},
		Regime: features.RegimeScores{TrendingScore: 0.8, RangingScore: 0.1 * float64(i)},
		RiskReward: features.RiskRewardMetrics{
			StopDistanceSuggested: 1,
			ScalpTargetDist:       1,
			SwingTargetDist:       2,
		},
		TimeframeMinutes:  5,
		TimeOfDayFraction: 0.4,
	}
}

func testRun() Run {
	r := NewRun("ES", "testdata/es.csv", 5)
	r.Created = time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC)
	r.Config = []byte(`{"symbol":"ES"}`)
	r.Start = time.Date(2024, 3, 4, 14, 30, 0, 0, time.UTC)
	r.End = time.Date(2024, 3, 4, 14, 40, 0, 0, time.UTC)
	r.Bars = 23
	r.Snapshots = 3
	r.AvgTrending = 0.8
	r.AvgRanging = 0.1
	r.Notes = []string{"first", "second"}
	return r
}
