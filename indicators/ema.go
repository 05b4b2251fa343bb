package indicators

import (
	"fmt"

	"github.com/rustyeddy/barscope/market"
)

var (
	_ Indicator = (*EMA)(nil)
	_ ValueF64  = (*EMA)(nil)
)

// EMA computes an Exponential Moving Average over bar closes.
//
// The average is seeded with the first close and defined from the very first
// bar (no warm-up gap), matching an adjust=False exponential window with
// alpha = 2/(span+1).
type EMA struct {
	n     int
	alpha float64

	seen  int
	value float64

	name string
}

// NewEMA creates a streaming EMA with the given span. It panics on span <= 0.
func NewEMA(span int) *EMA {
	if span <= 0 {
		panic("EMA span must be > 0")
	}
	return &EMA{
		n:     span,
		alpha: 2.0 / float64(span+1),
		name:  fmt.Sprintf("EMA(%d)", span),
	}
}

func (e *EMA) Name() string   { return e.name }
func (e *EMA) Warmup() int    { return 1 }
func (e *EMA) Ready() bool    { return e.seen > 0 }
func (e *EMA) Value() float64 { return e.value }

func (e *EMA) Reset() {
	e.seen = 0
	e.value = 0
}

func (e *EMA) Update(b market.Bar) {
	x := b.Close

	e.seen++
	if e.seen == 1 {
		e.value = x
		return
	}
	e.value = e.alpha*x + (1.0-e.alpha)*e.value
}

// EMASeries runs an EMA over every bar and returns the aligned values.
func EMASeries(bars []market.Bar, span int) []float64 {
	return Run(NewEMA(span), bars)
}
