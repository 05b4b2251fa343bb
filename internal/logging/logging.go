// Package logging builds the process logger.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a zap logger. env "production" selects JSON output; anything
// else gets the colored console encoder. An unknown level falls back to
// info. Output goes to stderr so stdout stays free for snapshot data.
func New(level, env string) (*zap.Logger, error) {
	var config zap.Config

	if env == "production" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	config.Level = zap.NewAtomicLevelAt(ParseLevel(level))
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}

	return config.Build(zap.AddStacktrace(zapcore.ErrorLevel))
}

// ParseLevel parses a level name, returning info when it is not one.
func ParseLevel(level string) zapcore.Level {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return zapcore.InfoLevel
	}
	return l
}
