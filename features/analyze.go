package features

// Analysis is every feature record for one bar index.
type Analysis struct {
	Bar          BarStats
	LocalTrend   LocalTrendStats
	Swing        SwingStructure
	TradingRange RangeStructure
	Reversals    ReversalSignals
	RiskReward   RiskRewardMetrics
	Regime       RegimeScores
}

// Analyze runs every stage for bar i in dependency order. It depends only on
// bars [0, i] and their indicator values.
func Analyze(f *Frame, i int, p Params) (Analysis, error) {
	if err := f.Check(i); err != nil {
		return Analysis{}, err
	}

	var a Analysis
	a.Bar = ComputeBarStats(f, i)
	a.LocalTrend = ComputeLocalTrend(f, i, p.TrendLookback)

	pivots := SwingPivots(f, i, p)
	a.Swing = ComputeSwing(f, i, pivots)
	a.TradingRange = ComputeRange(f, i, p.RangeLookback)
	a.Reversals = ComputeReversal(f, i, p, ReversalInputs{
		Pivots:     pivots,
		Swing:      a.Swing,
		LocalTrend: a.LocalTrend,
		Range:      a.TradingRange,
	})
	a.RiskReward = ComputeRiskReward(f, i, p.RiskLookback)
	a.Regime = ComputeRegime(RegimeInputs{
		Bar:        a.Bar,
		LocalTrend: a.LocalTrend,
		Swing:      a.Swing,
		Range:      a.TradingRange,
		Reversals:  a.Reversals,
	})
	a.RiskReward.ApplyRegime(a.Regime)
	return a, nil
}
