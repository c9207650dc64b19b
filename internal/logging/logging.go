// Package logging builds the zap loggers used by the commands.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewFile returns a logger writing to path. The TUI owns the terminal, so
// interactive commands log here instead of stderr.
func NewFile(path string, debug bool) (*zap.SugaredLogger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log dir: %w", err)
	}
	return build([]string{path}, debug)
}

// NewStderr returns a logger for non-interactive commands such as serve.
func NewStderr(debug bool) (*zap.SugaredLogger, error) {
	return build([]string{"stderr"}, debug)
}

// Nop returns a logger that discards everything.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func build(outputs []string, debug bool) (*zap.SugaredLogger, error) {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	cfg.OutputPaths = outputs
	cfg.ErrorOutputPaths = outputs
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger.Sugar(), nil
}

// Sync flushes buffered entries. Errors from syncing a terminal are expected
// and ignored.
func Sync(logger *zap.SugaredLogger) {
	if err := logger.Sync(); err != nil {
		_ = err
	}
}
