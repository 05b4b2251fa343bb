package features

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/barscope/indicators"
)

func TestComputeSwing(t *testing.T) {
	f := flat(t, linearUptrend(10), 2, 100)

	tests := []struct {
		name   string
		pivots []Pivot
		want   SwingStructure
	}{
		{
			name:   "too few pivots",
			pivots: []Pivot{{2, PivotLow, 100}, {5, PivotHigh, 110}},
			want:   SwingStructure{},
		},
		{
			name:   "down leg after higher low",
			pivots: []Pivot{{2, PivotLow, 100}, {5, PivotHigh, 110}, {8, PivotLow, 104}},
			want: SwingStructure{
				SwingDirection:  -1,
				HHLLScore:       0.5,
				SwingLeg1Size:   5,
				SwingLeg2Size:   3,
				Leg2VsLeg1Ratio: 0.6,
				WedgePushCount:  1,
			},
		},
		{
			name:   "double top",
			pivots: []Pivot{{2, PivotHigh, 110}, {5, PivotLow, 100}, {8, PivotHigh, 110.5}},
			want: SwingStructure{
				SwingDirection:  1,
				HHLLScore:       0.5,
				SwingLeg1Size:   5,
				SwingLeg2Size:   5.25,
				Leg2VsLeg1Ratio: 1.05,
				WedgePushCount:  1,
				DoubleTopScore:  0.5,
			},
		},
		{
			name:   "three pushes up",
			pivots: []Pivot{{1, PivotHigh, 100}, {3, PivotHigh, 102}, {5, PivotHigh, 104}, {7, PivotHigh, 106}},
			want: SwingStructure{
				SwingDirection:  1,
				HHLLScore:       0.5,
				SwingLeg1Size:   1,
				SwingLeg2Size:   1,
				Leg2VsLeg1Ratio: 1,
				WedgePushCount:  3,
				WedgeScore:      1,
			},
		},
		{
			name:   "flat last move",
			pivots: []Pivot{{1, PivotLow, 100}, {3, PivotHigh, 105}, {5, PivotHigh, 105}},
			want: SwingStructure{
				SwingLeg1Size:  2.5,
				WedgePushCount: 0,
				DoubleTopScore: 1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeSwing(f, 9, tt.pivots)
			assert.InDelta(t, tt.want.SwingDirection, got.SwingDirection, 1e-9)
			assert.InDelta(t, tt.want.HHLLScore, got.HHLLScore, 1e-9)
			assert.InDelta(t, tt.want.SwingLeg1Size, got.SwingLeg1Size, 1e-9)
			assert.InDelta(t, tt.want.SwingLeg2Size, got.SwingLeg2Size, 1e-9)
			assert.InDelta(t, tt.want.Leg2VsLeg1Ratio, got.Leg2VsLeg1Ratio, 1e-9)
			assert.Equal(t, tt.want.WedgePushCount, got.WedgePushCount)
			assert.InDelta(t, tt.want.WedgeScore, got.WedgeScore, 1e-9)
			assert.InDelta(t, tt.want.DoubleTopScore, got.DoubleTopScore, 1e-9)
			assert.InDelta(t, tt.want.DoubleBottomScore, got.DoubleBottomScore, 1e-9)
		})
	}
}

func TestComputeSwingZeroATR(t *testing.T) {
	f := flat(t, linearUptrend(10), 0, 100)
	got := ComputeSwing(f, 9, []Pivot{{2, PivotHigh, 110}, {5, PivotLow, 100}, {8, PivotHigh, 110}})

	assert.Equal(t, 0.0, got.SwingLeg1Size)
	assert.Equal(t, 0.0, got.SwingLeg2Size)
	assert.Equal(t, 0.0, got.DoubleTopScore)
	assert.InDelta(t, 1.0, got.Leg2VsLeg1Ratio, 1e-9)
}

func TestSwingOnStairUptrend(t *testing.T) {
	bars := stairs(110)
	f := computed(t, bars, indicators.DefaultPeriods())

	// Bar 104 confirms the peak at 102.
	got := ComputeSwing(f, 104, SwingPivots(f, 104, DefaultParams()))
	assert.Equal(t, 1.0, got.SwingDirection)
	assert.Equal(t, 1.0, got.HHLLScore)
	assert.Greater(t, got.SwingLeg1Size, 0.0)
}

func TestSwingOnLinearUptrendHasNoPivots(t *testing.T) {
	f := computed(t, linearUptrend(80), indicators.DefaultPeriods())
	assert.Empty(t, SwingPivots(f, 79, DefaultParams()))
	assert.Equal(t, SwingStructure{}, ComputeSwing(f, 79, SwingPivots(f, 79, DefaultParams())))
}
