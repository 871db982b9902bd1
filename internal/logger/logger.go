// Package logger builds the zap loggers used by the CLI and server.
package logger

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ErrUnknownMode is returned for a mode New does not recognize.
var ErrUnknownMode = errors.New("unknown log mode")

// Modes accepted by New.
const (
	ModeDevelopment = "dev"
	ModeProduction  = "prod"
	ModeQuiet       = "quiet"
)

// New builds a logger for mode: "dev" (console, debug level), "prod"
// (JSON, info level) or "quiet" (discards everything). Empty means dev.
func New(mode string) (*zap.Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", ModeDevelopment, "development":
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		cfg.DisableStacktrace = true
	case ModeProduction, "production":
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	case ModeQuiet, "off", "none":
		return zap.NewNop(), nil
	default:
		return nil, fmt.Errorf("%w: %q (use dev, prod or quiet)", ErrUnknownMode, mode)
	}

	// Logs go to stderr so rendered HTML on stdout stays clean.
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	return cfg.Build()
}

// IsValidMode reports whether New accepts mode.
func IsValidMode(mode string) bool {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", ModeDevelopment, "development", ModeProduction, "production", ModeQuiet, "off", "none":
		return true
	}
	return false
}

// Sync flushes l, ignoring the error zap reports when stderr is a terminal.
func Sync(l *zap.Logger) {
	if l != nil {
		_ = l.Sync()
	}
}
