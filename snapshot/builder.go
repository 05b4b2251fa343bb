package snapshot

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rustyeddy/barscope/features"
	"github.com/rustyeddy/barscope/indicators"
	"github.com/rustyeddy/barscope/market"
)

// Failure kinds reported to a Recorder.
const (
	FailureMalformedBar = "malformed_bar"
	FailureOutOfRange   = "index_out_of_range"
	FailurePanic        = "panic"
	FailureOther        = "other"
)

var errPanic = errors.New("snapshot panicked")

// Failure is a bar index that produced no snapshot.
type Failure struct {
	Index int
	Err   error
}

func (f Failure) Error() string {
	return fmt.Sprintf("bar %d: %v", f.Index, f.Err)
}

func (f Failure) Unwrap() error { return f.Err }

// Kind classifies the failure for metrics.
func (f Failure) Kind() string {
	switch {
	case errors.Is(f.Err, market.ErrMalformedBar):
		return FailureMalformedBar
	case errors.Is(f.Err, market.ErrIndexOutOfRange):
		return FailureOutOfRange
	case errors.Is(f.Err, errPanic):
		return FailurePanic
	}
	return FailureOther
}

// Result is the output of one build. Snapshots are in bar order. Frame is the
// arena the snapshots were computed from, kept for derived lookups such as
// PriceContext.
type Result struct {
	Snapshots []MarketSnapshot
	Failures  []Failure
	Frame     *features.Frame
	Location  *time.Location
}

// Builder turns bar sequences into snapshot sequences. A Builder is safe for
// concurrent use; it holds configuration only.
type Builder struct {
	opts Options
	log  *zap.Logger
}

// NewBuilder validates opts and fills in defaults.
func NewBuilder(opts Options) (*Builder, error) {
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("snapshot options: %w", err)
	}
	if err := opts.fill(); err != nil {
		return nil, err
	}
	return &Builder{
		opts: opts,
		log:  opts.Logger.With(zap.String("symbol", opts.Symbol)),
	}, nil
}

// Options returns the effective options.
func (b *Builder) Options() Options { return b.opts }

// StartIndex is the first index with enough history for every stage:
// max(ATR period, trend lookback, range lookback) + 1, moved forward to
// n-OnlyLastN when only the most recent bars are wanted.
func (b *Builder) StartIndex(n int) int {
	start := max(b.opts.Periods.ATR, b.opts.Params.TrendLookback, b.opts.Params.RangeLookback) + 1
	if b.opts.OnlyLastN > 0 {
		start = max(start, n-b.opts.OnlyLastN)
	}
	return start
}

// Indexes lists the bar indices a build over n bars will emit.
func (b *Builder) Indexes(n int) []int {
	var out []int
	for i := b.StartIndex(n); i < n; i += b.opts.Stride {
		out = append(out, i)
	}
	return out
}

// Build computes the snapshots for bars. It fails with ErrInsufficientData
// when no index is eligible. A malformed bar or a failing index is reported
// in Result.Failures and does not stop the others. The bars are not modified.
func (b *Builder) Build(ctx context.Context, bars []market.Bar) (*Result, error) {
	began := time.Now()

	arena, malformed := sanitize(bars)
	if len(malformed) == len(bars) {
		return nil, fmt.Errorf("%w: no valid bars among %d", market.ErrInsufficientData, len(bars))
	}

	ind, err := indicators.Compute(arena, b.opts.Periods)
	if err != nil {
		return nil, err
	}
	frame, err := features.NewFrame(arena, ind)
	if err != nil {
		return nil, err
	}

	idxs := b.Indexes(len(arena))
	if len(idxs) == 0 {
		return nil, fmt.Errorf("%w: need more than %d bars, got %d",
			market.ErrInsufficientData, b.StartIndex(len(arena)), len(arena))
	}

	dayIdx := market.DayIndexes(arena, b.opts.Location)

	slots := make([]*MarketSnapshot, len(idxs))
	errs := make([]error, len(idxs))

	workers := b.opts.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for k, i := range idxs {
		if err := gctx.Err(); err != nil {
			break
		}
		if err, bad := malformed[i]; bad {
			errs[k] = err
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			snap, err := b.one(frame, i, dayIdx[i])
			if err != nil {
				errs[k] = err
				return nil
			}
			slots[k] = &snap
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{
		Snapshots: make([]MarketSnapshot, 0, len(idxs)),
		Frame:     frame,
		Location:  b.opts.Location,
	}
	for k, i := range idxs {
		if errs[k] != nil {
			f := Failure{Index: i, Err: errs[k]}
			res.Failures = append(res.Failures, f)
			b.log.Warn("snapshot skipped", zap.Int("bar_index", i), zap.Error(errs[k]))
			b.record(func(r Recorder) { r.ObserveFailure(f.Kind()) })
			continue
		}
		res.Snapshots = append(res.Snapshots, *slots[k])
		b.record(func(r Recorder) { r.ObserveSnapshot() })
	}

	elapsed := time.Since(began)
	b.record(func(r Recorder) { r.ObserveBuild(elapsed) })
	b.log.Info("snapshots built",
		zap.Int("bars", len(bars)),
		zap.Int("snapshots", len(res.Snapshots)),
		zap.Int("failures", len(res.Failures)),
		zap.Duration("elapsed", elapsed),
	)
	return res, nil
}

// one computes the snapshot for bar i. A panic is turned into an error for
// that index alone.
func (b *Builder) one(f *features.Frame, i, dayIndex int) (snap MarketSnapshot, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", errPanic, r)
		}
	}()

	if f.Degenerate(i) {
		b.log.Debug("degenerate volatility", zap.Int("bar_index", i), zap.Error(market.ErrDegenerateNumeric))
	}

	a, err := features.Analyze(f, i, b.opts.Params)
	if err != nil {
		return MarketSnapshot{}, err
	}

	bar := f.Bars[i]
	loc := b.opts.Location
	return MarketSnapshot{
		Meta: MetaContext{
			Timestamp: bar.Time,
			Symbol:    b.opts.Symbol,
			DayIndex:  dayIndex,
			Session:   market.InferSession(bar.Time, loc),
			DayOfWeek: market.DayOfWeek(bar.Time, loc),
			BarIndex:  i,
		},
		Bar:               a.Bar,
		LocalTrend:        a.LocalTrend,
		Swing:             a.Swing,
		TradingRange:      a.TradingRange,
		Reversals:         a.Reversals,
		RiskReward:        a.RiskReward,
		Regime:            a.Regime,
		TimeframeMinutes:  b.opts.TimeframeMinutes,
		TimeOfDayFraction: market.TimeOfDayFraction(bar.Time, loc),
	}, nil
}

func (b *Builder) record(fn func(Recorder)) {
	if b.opts.Recorder != nil {
		fn(b.opts.Recorder)
	}
}

// sanitize copies bars into a fresh arena. Each malformed bar is replaced by
// a flat placeholder at the previous valid close (the next valid one when the
// sequence starts malformed), so rolling windows stay finite. The returned
// map holds the validation error of every replaced index.
func sanitize(bars []market.Bar) ([]market.Bar, map[int]error) {
	arena := make([]market.Bar, len(bars))
	malformed := make(map[int]error)

	first := -1
	for i, bar := range bars {
		if err := bar.Validate(); err != nil {
			malformed[i] = err
			continue
		}
		if first < 0 {
			first = i
		}
	}
	if first < 0 {
		return arena, malformed
	}

	prev := bars[first]
	for i, bar := range bars {
		if _, bad := malformed[i]; !bad {
			arena[i] = bar
			prev = bar
			continue
		}
		ts := bar.Time
		if ts.IsZero() {
			ts = prev.Time
		}
		arena[i] = market.Bar{
			Time:   ts,
			Open:   prev.Close,
			High:   prev.Close,
			Low:    prev.Close,
			Close:  prev.Close,
			Volume: prev.Volume,
		}
	}
	return arena, malformed
}
