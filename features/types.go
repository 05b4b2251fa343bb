package features

// BarStats is the geometric decomposition of a single bar.
type BarStats struct {
	BodyRel         float64 `json:"body_rel"`
	UpperTailRel    float64 `json:"upper_tail_rel"`
	LowerTailRel    float64 `json:"lower_tail_rel"`
	ClosePosRel     float64 `json:"close_pos_rel"`
	RangeRelATR     float64 `json:"range_rel_atr"`
	GapToPrevClose  float64 `json:"gap_to_prev_close"`
	IsTrendBarScore float64 `json:"is_trend_bar_score"`
	IsDojiScore     float64 `json:"is_doji_score"`
	IsOutsideScore  float64 `json:"is_outside_score"`
	IsInsideScore   float64 `json:"is_inside_score"`
	VolumeZScore    float64 `json:"volume_zscore"`
}

// LocalTrendStats describes the trend over the trend lookback.
type LocalTrendStats struct {
	EMASlope            float64 `json:"ema_slope"`
	BarsAboveEMARatio   float64 `json:"bars_above_ema_ratio"`
	ConsecutiveBullBars int     `json:"consecutive_bull_bars"`
	ConsecutiveBearBars int     `json:"consecutive_bear_bars"`
	MicroChannelBars    int     `json:"micro_channel_bars"`
	PullbackDepthRel    float64 `json:"pullback_depth_rel"`
	PullbackBars        int     `json:"pullback_bars"`
	SpikeStrength       float64 `json:"spike_strength"`
	TrendPersistence    float64 `json:"trend_persistence"`
}

// SwingStructure is derived from the most recent confirmed pivots.
// SwingDirection is -1, 0 or +1.
type SwingStructure struct {
	SwingDirection    float64 `json:"swing_direction"`
	HHLLScore         float64 `json:"hh_ll_score"`
	SwingLeg1Size     float64 `json:"swing_leg1_size"`
	SwingLeg2Size     float64 `json:"swing_leg2_size"`
	Leg2VsLeg1Ratio   float64 `json:"leg2_vs_leg1_ratio"`
	WedgePushCount    int     `json:"wedge_push_count"`
	WedgeScore        float64 `json:"wedge_score"`
	DoubleTopScore    float64 `json:"double_top_score"`
	DoubleBottomScore float64 `json:"double_bottom_score"`
}

// RangeStructure measures how range-bound the recent bars are.
type RangeStructure struct {
	OverlapRatio      float64 `json:"overlap_ratio"`
	RangeHeightRelATR float64 `json:"range_height_rel_atr"`
	TimeInRangeBars   int     `json:"time_in_range_bars"`
	TestsOfRangeHigh  int     `json:"tests_of_range_high"`
	TestsOfRangeLow   int     `json:"tests_of_range_low"`
	BreakoutAttempts  int     `json:"breakout_attempts"`
	BreakoutFailRatio float64 `json:"breakout_fail_ratio"`
	BarbwireScore     float64 `json:"barbwire_score"`
}

// ReversalSignals holds the reversal pattern scores.
type ReversalSignals struct {
	TrendlineBreakScore     float64 `json:"trendline_break_score"`
	ChannelOvershootScore   float64 `json:"channel_overshoot_score"`
	ClimaxRunupScore        float64 `json:"climax_runup_score"`
	PullbackAfterClimaxBars int     `json:"pullback_after_climax_bars"`
	HigherLowScore          float64 `json:"higher_low_score"`
	LowerHighScore          float64 `json:"lower_high_score"`
	High1Score              float64 `json:"high1_score"`
	High2Score              float64 `json:"high2_score"`
	Low1Score               float64 `json:"low1_score"`
	Low2Score               float64 `json:"low2_score"`
	FinalFlagScore          float64 `json:"final_flag_score"`
}

// RiskRewardMetrics are distances in ATR units and naive reward:risk ratios.
type RiskRewardMetrics struct {
	NearestSupportDist    float64 `json:"nearest_support_dist"`
	NearestResistanceDist float64 `json:"nearest_resistance_dist"`
	StopDistanceSuggested float64 `json:"stop_distance_suggested"`
	ScalpTargetDist       float64 `json:"scalp_target_dist"`
	SwingTargetDist       float64 `json:"swing_target_dist"`
	RRSwingEstimate       float64 `json:"rr_swing_estimate"`
	RRScalpEstimate       float64 `json:"rr_scalp_estimate"`
	ProbTrendContinuation float64 `json:"prob_trend_continuation"`
	ProbReversal          float64 `json:"prob_reversal"`
	ProbRangeContinuation float64 `json:"prob_range_continuation"`
}

// RegimeScores are independent [0,1] scores, not a mutually exclusive label.
type RegimeScores struct {
	TrendingScore      float64 `json:"trending_score"`
	RangingScore       float64 `json:"ranging_score"`
	ReversalSetupScore float64 `json:"reversal_setup_score"`
	BreakoutModeScore  float64 `json:"breakout_mode_score"`
}
