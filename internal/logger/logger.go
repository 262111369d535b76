// Package logger builds the zap logger used by the store and the CLI.
package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Level string
	// File receives log output; empty or "stderr" logs to stderr. The TUI
	// owns the terminal, so the default configuration always names a file.
	File string
	JSON bool
}

// Logger wraps zap.SugaredLogger with a few studyboard field helpers.
type Logger struct {
	*zap.SugaredLogger
}

func New(cfg Config) (*Logger, error) {
	zapConfig := zap.NewProductionConfig()
	if !cfg.JSON {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.DisableStacktrace = true
	}

	levelName := strings.TrimSpace(cfg.Level)
	if levelName == "" {
		levelName = "info"
	}
	level, err := zapcore.ParseLevel(levelName)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)

	out := strings.TrimSpace(cfg.File)
	if out == "" {
		out = "stderr"
	}
	zapConfig.OutputPaths = []string{out}
	zapConfig.ErrorOutputPaths = []string{out}

	zapLogger, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return &Logger{SugaredLogger: zapLogger.Sugar()}, nil
}

// Nop discards everything; tests and library callers without a logger use it.
func Nop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{SugaredLogger: l.SugaredLogger.With("component", component)}
}

func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	return &Logger{SugaredLogger: l.SugaredLogger.With("error", err.Error())}
}
