// Package logger builds the structured logger the commands hand to the
// site and storage packages. Output is JSON on stderr at info level;
// verbose mode lowers the threshold to debug.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns the pipeline's logger.
func New(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}
