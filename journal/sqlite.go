package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/barscope/snapshot"
)

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordRun(r Run) error {
	_, err := j.db.Exec(`
		INSERT OR REPLACE INTO runs
		(run_id, created, symbol, timeframe_minutes, dataset, config, start_time, end_time,
		 bars, snapshots, failures, avg_trending, avg_ranging, avg_reversal_setup, avg_breakout_mode, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.CreatedAt(), r.Symbol, r.TimeframeMinutes, r.Dataset, r.Config, r.Start, r.End,
		r.Bars, r.Snapshots, r.Failures, r.AvgTrending, r.AvgRanging, r.AvgReversalSetup, r.AvgBreakoutMode,
		strings.Join(r.Notes, "\n"),
	)
	return err
}

func (j *SQLiteJournal) RecordSnapshot(runID string, s snapshot.MarketSnapshot) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode snapshot %d: %w", s.Meta.BarIndex, err)
	}
	_, err = j.db.Exec(`
		INSERT OR REPLACE INTO snapshots
		(run_id, bar_index, time, symbol, session, day_index, swing_direction,
		 trending_score, ranging_score, reversal_setup_score, breakout_mode_score, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, s.Meta.BarIndex, s.Meta.Timestamp, s.Meta.Symbol, s.Meta.Session.String(), s.Meta.DayIndex,
		s.Swing.SwingDirection, s.Regime.TrendingScore, s.Regime.RangingScore,
		s.Regime.ReversalSetupScore, s.Regime.BreakoutModeScore, string(payload),
	)
	return err
}

// GetRun returns a single run by ID.
func (j *SQLiteJournal) GetRun(ctx context.Context, runID string) (Run, error) {
	var (
		r     Run
		notes string
	)
	row := j.db.QueryRowContext(ctx, `
		SELECT run_id, created, symbol, timeframe_minutes, dataset, config, start_time, end_time,
		       bars, snapshots, failures, avg_trending, avg_ranging, avg_reversal_setup, avg_breakout_mode, notes
		FROM runs
		WHERE run_id = ?`, runID)

	err := row.Scan(
		&r.RunID, &r.Created, &r.Symbol, &r.TimeframeMinutes, &r.Dataset, &r.Config, &r.Start, &r.End,
		&r.Bars, &r.Snapshots, &r.Failures, &r.AvgTrending, &r.AvgRanging, &r.AvgReversalSetup, &r.AvgBreakoutMode,
		&notes,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, fmt.Errorf("run %q not found", runID)
		}
		return Run{}, err
	}
	if notes != "" {
		r.Notes = strings.Split(notes, "\n")
	}
	return r, nil
}

// LatestRunID returns the most recently created run. ULIDs sort by time.
func (j *SQLiteJournal) LatestRunID(ctx context.Context) (string, error) {
	var runID string
	err := j.db.QueryRowContext(ctx, `SELECT run_id FROM runs ORDER BY run_id DESC LIMIT 1`).Scan(&runID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("journal has no runs")
	}
	return runID, err
}

// ListSnapshots returns the snapshots of a run in bar order.
func (j *SQLiteJournal) ListSnapshots(ctx context.Context, runID string) ([]snapshot.MarketSnapshot, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT payload
		FROM snapshots
		WHERE run_id = ?
		ORDER BY bar_index ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []snapshot.MarketSnapshot
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var s snapshot.MarketSnapshot
		if err := json.Unmarshal([]byte(payload), &s); err != nil {
			return nil, fmt.Errorf("decode snapshot: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
