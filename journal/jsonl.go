package journal

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/rustyeddy/barscope/snapshot"
)

// Record kinds in a JSON lines journal.
const (
	KindRun      = "run"
	KindSnapshot = "snapshot"
)

// Line is one record of a JSON lines journal. Exactly one of Run or
// Snapshot is set, selected by Kind.
type Line struct {
	Kind     string                   `json:"kind"`
	RunID    string                   `json:"run_id"`
	Run      *RunRecord               `json:"run,omitempty"`
	Snapshot *snapshot.MarketSnapshot `json:"snapshot,omitempty"`
}

// RunRecord is the JSON form of a Run.
type RunRecord struct {
	Created          time.Time       `json:"created"`
	Symbol           string          `json:"symbol"`
	TimeframeMinutes float64         `json:"timeframe_minutes"`
	Dataset          string          `json:"dataset"`
	Config           json.RawMessage `json:"config,omitempty"`
	Start            time.Time       `json:"start"`
	End              time.Time       `json:"end"`
	Bars             int             `json:"bars"`
	Snapshots        int             `json:"snapshots"`
	Failures         int             `json:"failures"`
	AvgTrending      float64         `json:"avg_trending"`
	AvgRanging       float64         `json:"avg_ranging"`
	AvgReversalSetup float64         `json:"avg_reversal_setup"`
	AvgBreakoutMode  float64         `json:"avg_breakout_mode"`
	Notes            []string        `json:"notes,omitempty"`
}

// JSONLJournal writes one JSON object per line.
type JSONLJournal struct {
	w   *bufio.Writer
	enc *json.Encoder
	c   io.Closer
}

// NewJSONL writes to path, or to stdout when path is "" or "-".
func NewJSONL(path string) (*JSONLJournal, error) {
	if path == "" || path == "-" {
		return NewJSONLWriter(os.Stdout, nil), nil
	}
	fh, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return NewJSONLWriter(fh, fh), nil
}

// NewJSONLWriter wraps w. c, when non-nil, is closed by Close.
func NewJSONLWriter(w io.Writer, c io.Closer) *JSONLJournal {
	bw := bufio.NewWriter(w)
	return &JSONLJournal{w: bw, enc: json.NewEncoder(bw), c: c}
}

func (j *JSONLJournal) RecordRun(r Run) error {
	rec := &RunRecord{
		Created:          r.CreatedAt(),
		Symbol:           r.Symbol,
		TimeframeMinutes: r.TimeframeMinutes,
		Dataset:          r.Dataset,
		Start:            r.Start,
		End:              r.End,
		Bars:             r.Bars,
		Snapshots:        r.Snapshots,
		Failures:         r.Failures,
		AvgTrending:      r.AvgTrending,
		AvgRanging:       r.AvgRanging,
		AvgReversalSetup: r.AvgReversalSetup,
		AvgBreakoutMode:  r.AvgBreakoutMode,
		Notes:            r.Notes,
	}
	if json.Valid(r.Config) {
		rec.Config = r.Config
	}
	return j.enc.Encode(Line{Kind: KindRun, RunID: r.RunID, Run: rec})
}

func (j *JSONLJournal) RecordSnapshot(runID string, s snapshot.MarketSnapshot) error {
	return j.enc.Encode(Line{Kind: KindSnapshot, RunID: runID, Snapshot: &s})
}

func (j *JSONLJournal) Close() error {
	if err := j.w.Flush(); err != nil {
		return err
	}
	if j.c != nil {
		return j.c.Close()
	}
	return nil
}
