package snapshot

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rustyeddy/barscope/features"
	"github.com/rustyeddy/barscope/indicators"
	"github.com/rustyeddy/barscope/market"
)

// Recorder observes a build. internal/metrics.Pipeline implements it.
type Recorder interface {
	ObserveSnapshot()
	ObserveFailure(kind string)
	ObserveBuild(d time.Duration)
}

// Options configure a Builder.
type Options struct {
	Symbol           string
	TimeframeMinutes float64

	Periods indicators.Periods
	Params  features.Params

	// OnlyLastN limits output to the most recent N bars; 0 means all.
	OnlyLastN int
	// Stride emits every Stride-th eligible bar; 0 means 1.
	Stride int
	// Workers bounds concurrent snapshot tasks; 0 means GOMAXPROCS.
	Workers int

	// Location is the exchange timezone; nil means America/New_York.
	Location *time.Location
	Logger   *zap.Logger
	Recorder Recorder
}

// DefaultOptions returns 5 minute bars with the stock periods.
func DefaultOptions() Options {
	return Options{
		TimeframeMinutes: 5,
		Periods:          indicators.DefaultPeriods(),
		Params:           features.DefaultParams(),
		Stride:           1,
	}
}

func (o *Options) validate() error {
	if err := o.Periods.Validate(); err != nil {
		return err
	}
	if err := o.Params.Validate(); err != nil {
		return err
	}
	if o.TimeframeMinutes <= 0 {
		return fmt.Errorf("timeframe must be positive, got %g", o.TimeframeMinutes)
	}
	if o.OnlyLastN < 0 {
		return fmt.Errorf("only-last-n must be >= 0, got %d", o.OnlyLastN)
	}
	if o.Stride < 0 {
		return fmt.Errorf("stride must be >= 0, got %d", o.Stride)
	}
	if o.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", o.Workers)
	}
	return nil
}

func (o *Options) fill() error {
	if o.Stride == 0 {
		o.Stride = 1
	}
	if o.Location == nil {
		loc, err := market.LoadExchangeLocation(market.DefaultExchangeTZ)
		if err != nil {
			return err
		}
		o.Location = loc
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return nil
}
