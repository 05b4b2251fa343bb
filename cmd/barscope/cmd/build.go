package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/barscope/config"
	"github.com/rustyeddy/barscope/internal/metrics"
	"github.com/rustyeddy/barscope/journal"
	"github.com/rustyeddy/barscope/market"
	"github.com/rustyeddy/barscope/snapshot"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build snapshots from a bar CSV file",
	Long: `Read bars from a CSV file and write one snapshot per bar.

The CSV has the columns timestamp,open,high,low,close,volume. Timestamps
are RFC3339 or "2006-01-02 15:04:05" in the exchange timezone.

Examples:
  barscope build --bars es_5m.csv --symbol ES > es.jsonl
  barscope build --bars es_5m.csv --format csv --out es.csv --last 500
  barscope build --bars es_5m.csv --format sqlite --out barscope.db --org run.org`,
	RunE: runBuildCmd,
}

var (
	buildBars        string
	buildSymbol      string
	buildTimeframe   string
	buildLast        int
	buildStride      int
	buildWorkers     int
	buildFormat      string
	buildOut         string
	buildMetricsFile string
	buildOrg         string
	buildResample    string
)

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVarP(&buildBars, "bars", "b", "", "bar CSV file (required)")
	buildCmd.Flags().StringVarP(&buildSymbol, "symbol", "s", "", "symbol stamped into each snapshot")
	buildCmd.Flags().StringVarP(&buildTimeframe, "timeframe", "t", "", "bar timeframe, e.g. M5, H1 or 15")
	buildCmd.Flags().IntVar(&buildLast, "last", 0, "only emit the last N bars (0 = all)")
	buildCmd.Flags().IntVar(&buildStride, "stride", 0, "emit every Nth bar")
	buildCmd.Flags().IntVarP(&buildWorkers, "workers", "w", -1, "parallel workers (0 = GOMAXPROCS)")
	buildCmd.Flags().StringVarP(&buildFormat, "format", "f", "", "output format: json, csv or sqlite")
	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "", "output path (stdout for json/csv when empty)")
	buildCmd.Flags().StringVar(&buildMetricsFile, "metrics-file", "", "write Prometheus textfile metrics here")
	buildCmd.Flags().StringVar(&buildOrg, "org", "", "write an org-mode run summary here")
	buildCmd.Flags().StringVar(&buildResample, "resample", "", "aggregate input bars to this timeframe first, e.g. M15")
	buildCmd.MarkFlagRequired("bars")
}

func runBuildCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyBuildFlags(cmd, cfg); err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	req := buildRequest{BarsPath: buildBars, OrgPath: buildOrg}
	if buildResample != "" {
		if req.ResampleMinutes, err = market.ParseTimeframe(buildResample); err != nil {
			return err
		}
	}

	run, err := buildSnapshots(cmd.Context(), cfg, req, log)
	if err != nil {
		return err
	}

	printRunSummary(cmd.ErrOrStderr(), run)
	return nil
}

// applyBuildFlags overrides cfg with the flags the user actually set.
func applyBuildFlags(cmd *cobra.Command, cfg *config.Config) error {
	fl := cmd.Flags()
	if fl.Changed("symbol") {
		cfg.Symbol = buildSymbol
	}
	if fl.Changed("timeframe") {
		tf, err := market.ParseTimeframe(buildTimeframe)
		if err != nil {
			return err
		}
		cfg.TimeframeMinutes = tf
	}
	if fl.Changed("last") {
		cfg.Pipeline.OnlyLastN = buildLast
	}
	if fl.Changed("stride") {
		cfg.Pipeline.Stride = buildStride
	}
	if fl.Changed("workers") {
		cfg.Pipeline.Workers = buildWorkers
	}
	if fl.Changed("format") {
		cfg.Output.Format = buildFormat
	}
	if fl.Changed("out") {
		cfg.Output.Path = buildOut
	}
	if fl.Changed("metrics-file") {
		cfg.Output.MetricsFile = buildMetricsFile
	}
	return cfg.Validate()
}

type buildRequest struct {
	BarsPath string
	OrgPath  string

	// ResampleMinutes, when set, aggregates the input bars first and
	// becomes the snapshot timeframe.
	ResampleMinutes float64
}

// buildSnapshots runs the whole pipeline: load bars, build snapshots, write
// them to the configured journal and optionally the metrics and org files.
func buildSnapshots(ctx context.Context, cfg *config.Config, req buildRequest, log *zap.Logger) (journal.Run, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	loc, err := market.LoadExchangeLocation(cfg.Timezone)
	if err != nil {
		return journal.Run{}, err
	}
	bars, err := market.LoadBarsCSV(req.BarsPath, loc)
	if err != nil {
		return journal.Run{}, fmt.Errorf("load bars: %w", err)
	}
	log.Info("bars loaded", zap.String("path", req.BarsPath), zap.Int("bars", len(bars)))

	if req.ResampleMinutes > 0 {
		n := len(bars)
		if bars, err = market.Resample(bars, req.ResampleMinutes, 1, loc); err != nil {
			return journal.Run{}, err
		}
		cfg.TimeframeMinutes = req.ResampleMinutes
		log.Info("bars resampled", zap.Int("from", n), zap.Int("to", len(bars)),
			zap.Float64("timeframe_minutes", req.ResampleMinutes))
	}

	gaps := market.SummarizeGaps(market.FindGaps(bars, cfg.TimeframeMinutes, loc), len(bars))
	if gaps.Suspicious > 0 || gaps.OutOfOrder > 0 {
		log.Warn("bar sequence has gaps",
			zap.Int("suspicious", gaps.Suspicious),
			zap.Int("out_of_order", gaps.OutOfOrder),
			zap.Int("missing_bars", gaps.MissingBars),
			zap.Duration("longest", gaps.Longest))
	} else if gaps.GapCount > 0 {
		log.Debug("bar sequence gaps", zap.Int("count", gaps.GapCount), zap.Int("missing_bars", gaps.MissingBars))
	}

	rec := metrics.NewPipeline()
	opts, err := cfg.Options(log, rec)
	if err != nil {
		return journal.Run{}, err
	}
	b, err := snapshot.NewBuilder(opts)
	if err != nil {
		return journal.Run{}, err
	}

	res, err := b.Build(ctx, bars)
	if err != nil {
		return journal.Run{}, fmt.Errorf("build snapshots: %w", err)
	}

	run := journal.NewRun(cfg.Symbol, req.BarsPath, cfg.TimeframeMinutes)
	run.Summarize(res, len(bars))
	run.Config = configJSON(cfg, log)
	if gaps.Suspicious > 0 || gaps.OutOfOrder > 0 {
		run.Notes = append(run.Notes, fmt.Sprintf("gaps: %d suspicious, %d out of order, %d bars missing",
			gaps.Suspicious, gaps.OutOfOrder, gaps.MissingBars))
	}
	for _, f := range res.Failures {
		run.Notes = append(run.Notes, f.Error())
	}

	j, err := journal.Open(cfg.Output.Format, cfg.Output.Path)
	if err != nil {
		return run, fmt.Errorf("open journal: %w", err)
	}
	if err := journal.RecordAll(j, run, res.Snapshots); err != nil {
		_ = j.Close()
		return run, fmt.Errorf("write snapshots: %w", err)
	}
	if err := j.Close(); err != nil {
		return run, fmt.Errorf("close journal: %w", err)
	}

	if cfg.Output.MetricsFile != "" {
		if err := rec.WriteTextfile(cfg.Output.MetricsFile); err != nil {
			return run, fmt.Errorf("write metrics: %w", err)
		}
	}
	if req.OrgPath != "" {
		run.OrgPath = req.OrgPath
		if err := run.WriteOrg(); err != nil {
			return run, fmt.Errorf("write org summary: %w", err)
		}
	}
	return run, nil
}

// configJSON encodes the effective config for the run record. A config that
// cannot be encoded is logged and the run is recorded without it.
func configJSON(cfg *config.Config, log *zap.Logger) []byte {
	raw, err := json.Marshal(cfg)
	if err != nil {
		log.Warn("run recorded without config", zap.Error(err))
		return nil
	}
	return raw
}

func printRunSummary(w io.Writer, run journal.Run) {
	fmt.Fprintf(w, "✓ run %s: %s snapshots from %s bars",
		run.RunID, humanize.Comma(int64(run.Snapshots)), humanize.Comma(int64(run.Bars)))
	if run.Failures > 0 {
		fmt.Fprintf(w, ", %s skipped", humanize.Comma(int64(run.Failures)))
	}
	fmt.Fprintln(w)
	if !run.Start.IsZero() {
		fmt.Fprintf(w, "  span: %s .. %s (%s)\n",
			run.Start.Format(time.RFC3339), run.End.Format(time.RFC3339),
			strings.TrimSpace(humanize.RelTime(run.Start, run.End, "", "")))
	}
}

