package journal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		format string
		path   string
		want   any
	}{
		{"json", filepath.Join(dir, "a.jsonl"), &JSONLJournal{}},
		{"csv", filepath.Join(dir, "a.csv"), &CSVJournal{}},
		{"sqlite", filepath.Join(dir, "a.db"), &SQLiteJournal{}},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			j, err := Open(tt.format, tt.path)
			require.NoError(t, err)
			assert.IsType(t, tt.want, j)
			assert.NoError(t, j.Close())
		})
	}

	_, err := os.Stat(filepath.Join(dir, "a.csv.runs.csv"))
	assert.NoError(t, err)
}

func TestOpenErrors(t *testing.T) {
	_, err := Open("sqlite", "")
	assert.Error(t, err)

	_, err = Open("parquet", "x")
	assert.ErrorContains(t, err, "unknown journal format")
}
