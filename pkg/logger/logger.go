// Package logger provides the structured logger used across the module,
// built on zap and configured from application config.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects logger behaviour. It lives here rather than in internal/app
// so the app package can embed it without an import cycle.
type Config struct {
	Development bool   `mapstructure:"development"`
	Level       string `mapstructure:"level"`
}

// Logger wraps a sugared zap logger.
type Logger struct {
	*zap.SugaredLogger
}

// NewLogger builds a Logger from cfg. Unknown levels fall back to info.
func NewLogger(cfg Config) (*Logger, error) {
	var zc zap.Config
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	z, err := zc.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}
	return &Logger{z.Sugar()}, nil
}

// Nop returns a logger that discards everything. Used by tests.
func Nop() *Logger {
	return &Logger{zap.NewNop().Sugar()}
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error { return l.SugaredLogger.Sync() }
