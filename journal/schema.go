// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	created DATETIME NOT NULL,
	symbol TEXT NOT NULL,
	timeframe_minutes REAL NOT NULL,
	dataset TEXT NOT NULL,
	config BLOB,
	start_time DATETIME,
	end_time DATETIME,
	bars INTEGER NOT NULL,
	snapshots INTEGER NOT NULL,
	failures INTEGER NOT NULL,
	avg_trending REAL NOT NULL,
	avg_ranging REAL NOT NULL,
	avg_reversal_setup REAL NOT NULL,
	avg_breakout_mode REAL NOT NULL,
	notes TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshots (
	run_id TEXT NOT NULL,
	bar_index INTEGER NOT NULL,
	time DATETIME NOT NULL,
	symbol TEXT NOT NULL,
	session TEXT NOT NULL,
	day_index INTEGER NOT NULL,
	swing_direction REAL NOT NULL,
	trending_score REAL NOT NULL,
	ranging_score REAL NOT NULL,
	reversal_setup_score REAL NOT NULL,
	breakout_mode_score REAL NOT NULL,
	payload TEXT NOT NULL,
	PRIMARY KEY (run_id, bar_index)
);

CREATE INDEX IF NOT EXISTS idx_snapshots_time ON snapshots(time);
`
