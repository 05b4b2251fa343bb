package features

import "fmt"

// Params are the window sizes of the feature stages. They are passed
// explicitly so several configurations can run side by side.
type Params struct {
	TrendLookback   int     `json:"trend_lookback" yaml:"trend_lookback"`
	RangeLookback   int     `json:"range_lookback" yaml:"range_lookback"`
	SwingLookback   int     `json:"swing_lookback" yaml:"swing_lookback"`
	PivotSpan       int     `json:"pivot_span" yaml:"pivot_span"`
	MinPivotMoveATR float64 `json:"min_pivot_move_atr" yaml:"min_pivot_move_atr"`
	RiskLookback    int     `json:"risk_lookback" yaml:"risk_lookback"`
	ClimaxLookback  int     `json:"climax_lookback" yaml:"climax_lookback"`
}

// DefaultParams returns the stock window sizes.
func DefaultParams() Params {
	return Params{
		TrendLookback:   20,
		RangeLookback:   20,
		SwingLookback:   60,
		PivotSpan:       2,
		MinPivotMoveATR: 0.5,
		RiskLookback:    50,
		ClimaxLookback:  10,
	}
}

// Validate rejects non-positive windows and a negative pivot move.
func (p Params) Validate() error {
	checks := []struct {
		name string
		v    int
	}{
		{"trend lookback", p.TrendLookback},
		{"range lookback", p.RangeLookback},
		{"swing lookback", p.SwingLookback},
		{"pivot span", p.PivotSpan},
		{"risk lookback", p.RiskLookback},
		{"climax lookback", p.ClimaxLookback},
	}
	for _, c := range checks {
		if c.v <= 0 {
			return fmt.Errorf("%s must be positive, got %d", c.name, c.v)
		}
	}
	if p.MinPivotMoveATR < 0 {
		return fmt.Errorf("min pivot move must be >= 0, got %g", p.MinPivotMoveATR)
	}
	return nil
}
