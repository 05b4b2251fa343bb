package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/barscope/features"
	"github.com/rustyeddy/barscope/indicators"
	"github.com/rustyeddy/barscope/market"
	"github.com/rustyeddy/barscope/snapshot"
)

// EnvPrefix prefixes every environment override. Keys are the split field
// names, e.g. BARSCOPE_INDICATORS_ATR_PERIOD=14.
const EnvPrefix = "BARSCOPE"

// Config represents the complete pipeline configuration
type Config struct {
	Symbol           string  `json:"symbol" yaml:"symbol" split_words:"true"`
	TimeframeMinutes float64 `json:"timeframe_minutes" yaml:"timeframe_minutes" split_words:"true"`
	Timezone         string  `json:"timezone" yaml:"timezone" split_words:"true"`

	Indicators IndicatorConfig `json:"indicators" yaml:"indicators" split_words:"true"`
	Features   FeatureConfig   `json:"features" yaml:"features" split_words:"true"`
	Pipeline   PipelineConfig  `json:"pipeline" yaml:"pipeline" split_words:"true"`
	Output     OutputConfig    `json:"output" yaml:"output" split_words:"true"`
	Log        LogConfig       `json:"log" yaml:"log" split_words:"true"`
}

// IndicatorConfig contains the rolling indicator periods
type IndicatorConfig struct {
	ATRPeriod       int `json:"atr_period" yaml:"atr_period" split_words:"true"`
	EMAPeriod       int `json:"ema_period" yaml:"ema_period" split_words:"true"`
	VolumeZLookback int `json:"volume_z_lookback" yaml:"volume_z_lookback" split_words:"true"`
}

// FeatureConfig contains the feature window sizes
type FeatureConfig struct {
	TrendLookback   int     `json:"trend_lookback" yaml:"trend_lookback" split_words:"true"`
	RangeLookback   int     `json:"range_lookback" yaml:"range_lookback" split_words:"true"`
	SwingLookback   int     `json:"swing_lookback" yaml:"swing_lookback" split_words:"true"`
	PivotSpan       int     `json:"pivot_span" yaml:"pivot_span" split_words:"true"`
	MinPivotMoveATR float64 `json:"min_pivot_move_atr" yaml:"min_pivot_move_atr" split_words:"true"`
	RiskLookback    int     `json:"risk_lookback" yaml:"risk_lookback" split_words:"true"`
	ClimaxLookback  int     `json:"climax_lookback" yaml:"climax_lookback" split_words:"true"`
}

// PipelineConfig controls which bars are emitted and how many workers run
type PipelineConfig struct {
	OnlyLastN int `json:"only_last_n" yaml:"only_last_n" split_words:"true"`
	Stride    int `json:"stride" yaml:"stride" split_words:"true"`
	Workers   int `json:"workers" yaml:"workers" split_words:"true"`
}

// OutputConfig contains snapshot sink parameters
type OutputConfig struct {
	Format      string `json:"format" yaml:"format" split_words:"true"` // "json", "csv" or "sqlite"
	Path        string `json:"path,omitempty" yaml:"path,omitempty" split_words:"true"`
	MetricsFile string `json:"metrics_file,omitempty" yaml:"metrics_file,omitempty" split_words:"true"`
}

// LogConfig selects the zap level and encoder
type LogConfig struct {
	Level string `json:"level" yaml:"level" split_words:"true"`
	Env   string `json:"env" yaml:"env" split_words:"true"` // "production" or "development"
}

// Output formats.
const (
	FormatJSON   = "json"
	FormatCSV    = "csv"
	FormatSQLite = "sqlite"
)

// Load reads path (the defaults when path is empty), applies environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = readFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a file (YAML, or JSON). Keys missing
// from the file keep their default values.
func LoadFromFile(path string) (*Config, error) {
	cfg, err := readFile(path)
	if err != nil {
		return nil, err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func readFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		cfg = Default()
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}
	return cfg, nil
}

// ApplyEnv loads an optional .env file and then overrides fields from
// BARSCOPE_* variables. Unset variables leave fields untouched.
func (c *Config) ApplyEnv() error {
	_ = godotenv.Load()

	if err := envconfig.Process(EnvPrefix, c); err != nil {
		return fmt.Errorf("env overrides: %w", err)
	}
	return nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	// Determine format by extension
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.TimeframeMinutes <= 0 {
		return fmt.Errorf("timeframe_minutes must be positive")
	}
	if _, err := market.LoadExchangeLocation(c.Timezone); err != nil {
		return fmt.Errorf("timezone: %w", err)
	}

	if c.Indicators.ATRPeriod <= 0 {
		return fmt.Errorf("indicators.atr_period must be positive")
	}
	if c.Indicators.EMAPeriod <= 0 {
		return fmt.Errorf("indicators.ema_period must be positive")
	}
	if c.Indicators.VolumeZLookback <= 0 {
		return fmt.Errorf("indicators.volume_z_lookback must be positive")
	}

	if c.Features.TrendLookback <= 0 {
		return fmt.Errorf("features.trend_lookback must be positive")
	}
	if c.Features.RangeLookback <= 0 {
		return fmt.Errorf("features.range_lookback must be positive")
	}
	if c.Features.SwingLookback <= 0 {
		return fmt.Errorf("features.swing_lookback must be positive")
	}
	if c.Features.PivotSpan <= 0 {
		return fmt.Errorf("features.pivot_span must be positive")
	}
	if c.Features.MinPivotMoveATR < 0 {
		return fmt.Errorf("features.min_pivot_move_atr must be >= 0")
	}
	if c.Features.RiskLookback <= 0 {
		return fmt.Errorf("features.risk_lookback must be positive")
	}
	if c.Features.ClimaxLookback <= 0 {
		return fmt.Errorf("features.climax_lookback must be positive")
	}

	if c.Pipeline.OnlyLastN < 0 {
		return fmt.Errorf("pipeline.only_last_n must be >= 0")
	}
	if c.Pipeline.Stride < 1 {
		return fmt.Errorf("pipeline.stride must be >= 1")
	}
	if c.Pipeline.Workers < 0 {
		return fmt.Errorf("pipeline.workers must be >= 0")
	}

	switch c.Output.Format {
	case FormatJSON, FormatCSV:
	case FormatSQLite:
		if c.Output.Path == "" {
			return fmt.Errorf("output.path required for sqlite format")
		}
	default:
		return fmt.Errorf("output.format must be 'json', 'csv' or 'sqlite'")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	p := features.DefaultParams()
	ip := indicators.DefaultPeriods()
	return &Config{
		TimeframeMinutes: 5,
		Timezone:         market.DefaultExchangeTZ,
		Indicators: IndicatorConfig{
			ATRPeriod:       ip.ATR,
			EMAPeriod:       ip.EMA,
			VolumeZLookback: ip.VolumeZ,
		},
		Features: FeatureConfig{
			TrendLookback:   p.TrendLookback,
			RangeLookback:   p.RangeLookback,
			SwingLookback:   p.SwingLookback,
			PivotSpan:       p.PivotSpan,
			MinPivotMoveATR: p.MinPivotMoveATR,
			RiskLookback:    p.RiskLookback,
			ClimaxLookback:  p.ClimaxLookback,
		},
		Pipeline: PipelineConfig{
			Stride: 1,
		},
		Output: OutputConfig{
			Format: FormatJSON,
		},
		Log: LogConfig{
			Level: "info",
			Env:   "development",
		},
	}
}

// Options converts the configuration into snapshot builder options.
func (c *Config) Options(log *zap.Logger, rec snapshot.Recorder) (snapshot.Options, error) {
	loc, err := market.LoadExchangeLocation(c.Timezone)
	if err != nil {
		return snapshot.Options{}, err
	}
	opts := snapshot.Options{
		Symbol:           c.Symbol,
		TimeframeMinutes: c.TimeframeMinutes,
		Periods: indicators.Periods{
			ATR:     c.Indicators.ATRPeriod,
			EMA:     c.Indicators.EMAPeriod,
			VolumeZ: c.Indicators.VolumeZLookback,
		},
		Params: features.Params{
			TrendLookback:   c.Features.TrendLookback,
			RangeLookback:   c.Features.RangeLookback,
			SwingLookback:   c.Features.SwingLookback,
			PivotSpan:       c.Features.PivotSpan,
			MinPivotMoveATR: c.Features.MinPivotMoveATR,
			RiskLookback:    c.Features.RiskLookback,
			ClimaxLookback:  c.Features.ClimaxLookback,
		},
		OnlyLastN: c.Pipeline.OnlyLastN,
		Stride:    c.Pipeline.Stride,
		Workers:   c.Pipeline.Workers,
		Location:  loc,
		Logger:    log,
		Recorder:  rec,
	}
	return opts, nil
}
