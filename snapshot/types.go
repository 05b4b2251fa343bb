// Package snapshot assembles per-bar MarketSnapshots from a bar history.
package snapshot

import (
	"time"

	"github.com/rustyeddy/barscope/features"
	"github.com/rustyeddy/barscope/market"
)

// MetaContext places a snapshot in time and in the bar sequence.
type MetaContext struct {
	Timestamp time.Time      `json:"timestamp"`
	Symbol    string         `json:"symbol"`
	DayIndex  int            `json:"day_index"`
	Session   market.Session `json:"session"`
	DayOfWeek int            `json:"day_of_week"` // 0=Monday ... 6=Sunday
	BarIndex  int            `json:"bar_index"`
}

// MarketSnapshot is the immutable feature record for one bar.
type MarketSnapshot struct {
	Meta              MetaContext                `json:"meta"`
	Bar               features.BarStats          `json:"bar"`
	LocalTrend        features.LocalTrendStats   `json:"local_trend"`
	Swing             features.SwingStructure    `json:"swing"`
	TradingRange      features.RangeStructure    `json:"trading_range"`
	Reversals         features.ReversalSignals   `json:"reversals"`
	RiskReward        features.RiskRewardMetrics `json:"risk_reward"`
	Regime            features.RegimeScores      `json:"regime"`
	TimeframeMinutes  float64                    `json:"timeframe_minutes"`
	TimeOfDayFraction float64                    `json:"time_of_day_fraction"`
}
