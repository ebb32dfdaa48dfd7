// Package log holds the process-wide zap logger used by the command line
// tools. Library packages never use it; they accept a *zap.Logger instead.
package log

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	base  *zap.Logger
	sugar *zap.SugaredLogger
	level = zap.NewAtomicLevel()
)

// Init builds the package-level logger. debug selects the human readable
// development encoder and debug level; otherwise JSON at info level.
func Init(debug bool) error {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg = zap.NewDevelopmentConfig()
	}
	level.SetLevel(cfg.Level.Level())
	cfg.Level = level

	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("can't initialize zap logger: %w", err)
	}

	base = logger
	sugar = logger.Sugar()
	return nil
}

// SetLevel changes the minimum level of the package-level logger, e.g.
// "debug", "info", "warn" or "error". An empty name is ignored.
func SetLevel(name string) error {
	if name == "" {
		return nil
	}
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(name)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", name, err)
	}
	level.SetLevel(l)
	return nil
}

// Logger returns the base logger, falling back to a production logger when
// Init was not called.
func Logger() *zap.Logger {
	if base == nil {
		if err := Init(false); err != nil {
			base = zap.NewNop()
			sugar = base.Sugar()
		}
	}
	return base
}

// Sugar returns the sugared logger.
func Sugar() *zap.SugaredLogger {
	Logger()
	return sugar
}

// Sync flushes any buffered log entries.
func Sync() {
	if base != nil {
		_ = base.Sync()
	}
}
