// journal/csv.go
package journal

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rustyeddy/barscope/snapshot"
)

var runColumns = []string{
	"run_id", "created", "symbol", "timeframe_minutes", "dataset", "start", "end",
	"bars", "snapshots", "failures",
	"avg_trending", "avg_ranging", "avg_reversal_setup", "avg_breakout_mode", "notes",
}

// CSVJournal writes one flattened snapshot per row. Runs go to a second
// writer when one is given.
type CSVJournal struct {
	snaps   *csv.Writer
	runs    *csv.Writer
	closers []io.Closer
}

// NewCSV writes snapshots to snapshotsPath, or to stdout when it is "" or
// "-". Runs are written to runsPath when it is set.
func NewCSV(snapshotsPath, runsPath string) (*CSVJournal, error) {
	var (
		sw      io.Writer = os.Stdout
		rw      io.Writer
		closers []io.Closer
	)
	if snapshotsPath != "" && snapshotsPath != "-" {
		sf, err := os.Create(snapshotsPath)
		if err != nil {
			return nil, err
		}
		sw = sf
		closers = append(closers, sf)
	}
	if runsPath != "" {
		rf, err := os.Create(runsPath)
		if err != nil {
			for _, c := range closers {
				_ = c.Close()
			}
			return nil, err
		}
		rw = rf
		closers = append(closers, rf)
	}

	j, err := NewCSVWriter(sw, rw)
	if err != nil {
		return nil, err
	}
	j.closers = closers
	return j, nil
}

// NewCSVWriter writes headers to snaps and, when non-nil, runs.
func NewCSVWriter(snaps, runs io.Writer) (*CSVJournal, error) {
	j := &CSVJournal{snaps: csv.NewWriter(snaps)}

	if runs != nil {
		j.runs = csv.NewWriter(runs)
		if err := j.runs.Write(runColumns); err != nil {
			return nil, err
		}
		j.runs.Flush()
		if err := j.runs.Error(); err != nil {
			return nil, err
		}
	}

	if err := j.snaps.Write(append([]string{"run_id"}, Columns()...)); err != nil {
		return nil, err
	}
	j.snaps.Flush()
	if err := j.snaps.Error(); err != nil {
		return nil, err
	}

	return j, nil
}

func (j *CSVJournal) RecordRun(r Run) error {
	if j.runs == nil {
		return nil
	}
	err := j.runs.Write([]string{
		r.RunID,
		r.CreatedAt().Format(time.RFC3339),
		r.Symbol,
		f(r.TimeframeMinutes),
		r.Dataset,
		r.Start.Format(time.RFC3339),
		r.End.Format(time.RFC3339),
		strconv.Itoa(r.Bars),
		strconv.Itoa(r.Snapshots),
		strconv.Itoa(r.Failures),
		f(r.AvgTrending),
		f(r.AvgRanging),
		f(r.AvgReversalSetup),
		f(r.AvgBreakoutMode),
		strings.Join(r.Notes, "; "),
	})
	if err != nil {
		return err
	}
	j.runs.Flush()
	return j.runs.Error()
}

func (j *CSVJournal) RecordSnapshot(runID string, s snapshot.MarketSnapshot) error {
	if err := j.snaps.Write(append([]string{runID}, Row(s)...)); err != nil {
		return err
	}
	j.snaps.Flush()
	return j.snaps.Error()
}

func (j *CSVJournal) Close() error {
	j.snaps.Flush()
	if err := j.snaps.Error(); err != nil {
		return err
	}
	if j.runs != nil {
		j.runs.Flush()
		if err := j.runs.Error(); err != nil {
			return err
		}
	}
	for _, c := range j.closers {
		if err := c.Close(); err != nil {
			return err
		}
	}
	return nil
}
