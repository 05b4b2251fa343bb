package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/barscope/pkg/id"
	"github.com/rustyeddy/barscope/snapshot"
)

func TestNewRun(t *testing.T) {
	a := NewRun("ES", "es.csv", 5)
	b := NewRun("ES", "es.csv", 5)

	assert.NotEmpty(t, a.RunID)
	assert.NotEqual(t, a.RunID, b.RunID)
	assert.Equal(t, "ES", a.Symbol)
	assert.Equal(t, 5.0, a.TimeframeMinutes)
	assert.False(t, a.Created.IsZero())
}

func TestSummarize(t *testing.T) {
	res := &snapshot.Result{
		Snapshots: []snapshot.MarketSnapshot{testSnapshot(0), testSnapshot(1), testSnapshot(2)},
		Failures:  []snapshot.Failure{{Index: 7}},
	}

	r := NewRun("ES", "", 5)
	r.Summarize(res, 40)

	assert.Equal(t, 40, r.Bars)
	assert.Equal(t, 3, r.Snapshots)
	assert.Equal(t, 1, r.Failures)
	assert.Equal(t, res.Snapshots[0].Meta.Timestamp, r.Start)
	assert.Equal(t, res.Snapshots[2].Meta.Timestamp, r.End)
	assert.InDelta(t, 0.8, r.AvgTrending, 1e-12)
	assert.InDelta(t, 0.1, r.AvgRanging, 1e-12)
	assert.Zero(t, r.AvgBreakoutMode)
}

func TestSummarizeEmpty(t *testing.T) {
	r := NewRun("ES", "", 5)
	r.Summarize(&snapshot.Result{}, 10)

	assert.Equal(t, 10, r.Bars)
	assert.Zero(t, r.Snapshots)
	assert.True(t, r.Start.IsZero())
}

func TestFlattenColumns(t *testing.T) {
	cols := Columns()
	s := testSnapshot(1)
	row := Row(s)

	assert.Len(t, row, len(cols))
	assert.Equal(t, "meta.timestamp", cols[0])
	assert.Contains(t, cols, "regime.trending_score")
	assert.Contains(t, cols, "swing.wedge_push_count")
	assert.Equal(t, "time_of_day_fraction", cols[len(cols)-1])

	idx := map[string]int{}
	for i, c := range cols {
		idx[c] = i
	}
	assert.Equal(t, "2024-03-04T14:35:00Z", row[idx["meta.timestamp"]])
	assert.Equal(t, "RTH", row[idx["meta.session"]])
	assert.Equal(t, "21", row[idx["meta.bar_index"]])
	assert.Equal(t, "2", row[idx["swing.wedge_push_count"]])
	assert.Equal(t, "0.800000", row[idx["regime.trending_score"]])
}

func TestRunCreatedAt(t *testing.T) {
	r := NewRun("ES", "", 5)
	assert.Equal(t, r.Created, r.CreatedAt())

	fromID, err := id.Time(r.RunID)
	require.NoError(t, err)
	r.Created = time.Time{}
	assert.Equal(t, fromID, r.CreatedAt())

	assert.True(t, Run{RunID: "bogus"}.CreatedAt().IsZero())
}
