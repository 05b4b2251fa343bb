// journal/journal.go
package journal

import (
	"time"

	"github.com/rustyeddy/barscope/pkg/id"
	"github.com/rustyeddy/barscope/snapshot"
)

// Run describes one snapshot build.
type Run struct {
	RunID            string
	Created          time.Time
	Symbol           string
	TimeframeMinutes float64
	Dataset          string
	Config           []byte // effective config, JSON

	// First and last snapshot timestamps
	Start time.Time
	End   time.Time

	Bars      int
	Snapshots int
	Failures  int

	// Mean regime scores over the run's snapshots
	AvgTrending      float64
	AvgRanging       float64
	AvgReversalSetup float64
	AvgBreakoutMode  float64

	OrgPath string
	Notes   []string
}

// NewRun starts a run record with a fresh ULID.
func NewRun(symbol, dataset string, timeframeMinutes float64) Run {
	return Run{
		RunID:            id.New(),
		Created:          time.Now().UTC(),
		Symbol:           symbol,
		TimeframeMinutes: timeframeMinutes,
		Dataset:          dataset,
	}
}

// CreatedAt returns Created, falling back to the time embedded in the
// run's ULID when Created was never set.
func (r Run) CreatedAt() time.Time {
	if !r.Created.IsZero() {
		return r.Created
	}
	if ts, err := id.Time(r.RunID); err == nil {
		return ts
	}
	return time.Time{}
}

// Summarize fills the counters and regime means from a build result.
func (r *Run) Summarize(res *snapshot.Result, bars int) {
	r.Bars = bars
	r.Snapshots = len(res.Snapshots)
	r.Failures = len(res.Failures)
	if len(res.Snapshots) == 0 {
		return
	}

	r.Start = res.Snapshots[0].Meta.Timestamp
	r.End = res.Snapshots[len(res.Snapshots)-1].Meta.Timestamp

	var t, rg, rev, bo float64
	for _, s := range res.Snapshots {
		t += s.Regime.TrendingScore
		rg += s.Regime.RangingScore
		rev += s.Regime.ReversalSetupScore
		bo += s.Regime.BreakoutModeScore
	}
	n := float64(len(res.Snapshots))
	r.AvgTrending = t / n
	r.AvgRanging = rg / n
	r.AvgReversalSetup = rev / n
	r.AvgBreakoutMode = bo / n
}

// Journal persists runs and their snapshots.
type Journal interface {
	RecordRun(Run) error
	RecordSnapshot(runID string, s snapshot.MarketSnapshot) error
	Close() error
}

// RecordAll records the run and then every snapshot in order.
func RecordAll(j Journal, run Run, snaps []snapshot.MarketSnapshot) error {
	if err := j.RecordRun(run); err != nil {
		return err
	}
	for _, s := range snaps {
		if err := j.RecordSnapshot(run.RunID, s); err != nil {
			return err
		}
	}
	return nil
}
