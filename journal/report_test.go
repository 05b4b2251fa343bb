package journal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderOrg(t *testing.T) {
	t.Parallel()

	run := testRun()
	var sb strings.Builder
	require.NoError(t, run.RenderOrg(&sb))
	out := sb.String()

	assert.Contains(t, out, "* SNAPSHOTS: ES M5")
	assert.Contains(t, out, ":RUN_ID:      "+run.RunID)
	assert.Contains(t, out, ":DATASET:     testdata/es.csv")
	assert.Contains(t, out, ":START:       2024-03-04 14:30")
	assert.Contains(t, out, ":BARS:        23")
	assert.Contains(t, out, ":CREATED:     [2024-03-05 Tue 08:00]")
	assert.Contains(t, out, `{"symbol":"ES"}`)
	assert.Contains(t, out, "| Trending       | 80.0 |")
	assert.Contains(t, out, "** Observations")
	assert.Contains(t, out, "- second")
}

func TestRenderOrgDefaults(t *testing.T) {
	t.Parallel()

	run := Run{TimeframeMinutes: 7.5}
	var sb strings.Builder
	require.NoError(t, run.RenderOrg(&sb))
	out := sb.String()

	assert.Contains(t, out, "(run-id?)")
	assert.Contains(t, out, "(dataset?)")
	assert.Contains(t, out, "(timeframe?)")
	assert.Contains(t, out, "# (defaults)")
	assert.NotContains(t, out, "** Observations")
}

func TestWriteOrg(t *testing.T) {
	t.Parallel()

	run := testRun()
	run.OrgPath = filepath.Join(t.TempDir(), "run.org")
	require.NoError(t, run.WriteOrg())

	data, err := os.ReadFile(run.OrgPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), run.RunID)
}
