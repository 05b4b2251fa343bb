package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/barscope/config"
	"github.com/rustyeddy/barscope/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "barscope",
	Short: "Per-bar price action feature snapshots",
	Long: `Barscope reads OHLCV bars and emits one MarketSnapshot per bar: bar
geometry, local trend, swing structure, trading range, reversal signals,
risk/reward distances and regime scores.

Snapshots can be written as JSON lines, CSV or into a SQLite journal.

Configuration comes from an optional YAML/JSON file, then BARSCOPE_*
environment variables (a .env file is honoured), then command line flags.`,
	SilenceUsage: true,
}

var (
	cfgFile  string
	logLevel string
	logEnv   string
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logEnv, "log-env", "", "log encoder: production (JSON) or development")
}

// loadConfig resolves file, environment and persistent flag settings.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logEnv != "" {
		cfg.Log.Env = logEnv
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.New(cfg.Log.Level, cfg.Log.Env)
}
