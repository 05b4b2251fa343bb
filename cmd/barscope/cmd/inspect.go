package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/barscope/journal"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [run-id]",
	Short: "Show the snapshots of a run stored in a SQLite journal",
	Long: `Print a table of the most recent snapshots of a run.

Without a run id the newest run in the journal is shown.

Examples:
  barscope inspect --db barscope.db
  barscope inspect --db barscope.db 01HQ3Z... --rows 50`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInspectCmd,
}

var (
	inspectDB   string
	inspectRows int
)

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().StringVarP(&inspectDB, "db", "d", "./barscope.db", "path to SQLite journal DB")
	inspectCmd.Flags().IntVarP(&inspectRows, "rows", "n", 20, "number of trailing snapshots to show (0 = all)")
}

func runInspectCmd(cmd *cobra.Command, args []string) error {
	runID := ""
	if len(args) == 1 {
		runID = args[0]
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return inspect(ctx, cmd.OutOrStdout(), inspectDB, runID, inspectRows)
}

func inspect(ctx context.Context, w io.Writer, dbPath, runID string, rows int) error {
	j, err := journal.NewSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	if runID == "" {
		if runID, err = j.LatestRunID(ctx); err != nil {
			return err
		}
	}
	run, err := j.GetRun(ctx, runID)
	if err != nil {
		return err
	}
	snaps, err := j.ListSnapshots(ctx, runID)
	if err != nil {
		return fmt.Errorf("list snapshots: %w", err)
	}
	if rows > 0 && len(snaps) > rows {
		snaps = snaps[len(snaps)-rows:]
	}

	fmt.Fprintf(w, "Run %s  %s  %s snapshots  created %s\n",
		run.RunID, run.Symbol, humanize.Comma(int64(run.Snapshots)), humanize.Time(run.Created))

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Bar", "Time", "Sess", "Swing", "Trend", "Range", "Reversal", "Breakout", "R:R swing"})
	for _, s := range snaps {
		t.AppendRow(table.Row{
			s.Meta.BarIndex,
			s.Meta.Timestamp.Format(time.DateTime),
			s.Meta.Session.String(),
			fmt.Sprintf("%+.0f", s.Swing.SwingDirection),
			fmt.Sprintf("%.2f", s.Regime.TrendingScore),
			fmt.Sprintf("%.2f", s.Regime.RangingScore),
			fmt.Sprintf("%.2f", s.Regime.ReversalSetupScore),
			fmt.Sprintf("%.2f", s.Regime.BreakoutModeScore),
			fmt.Sprintf("%.2f", s.RiskReward.RRSwingEstimate),
		})
	}
	t.Render()
	return nil
}
