// Package logging binds the service Logger interface to zap.
package logging

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger adapts a zap.SugaredLogger to the key/value Logger surface used by core.Service.
type Logger struct {
	sugar *zap.SugaredLogger
}

// LevelForVerbosity maps the repeated --debug flag onto a zap level:
// 0 warn, 1 info, 2 and above debug.
func LevelForVerbosity(verbosity int) zapcore.Level {
	switch {
	case verbosity <= 0:
		return zapcore.WarnLevel
	case verbosity == 1:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// New builds a console logger writing to w at the level implied by verbosity.
func New(w io.Writer, verbosity int) *Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(w),
		zap.NewAtomicLevelAt(LevelForVerbosity(verbosity)),
	)
	return &Logger{sugar: zap.New(core).Sugar()}
}

// Zap exposes the underlying logger.
func (l *Logger) Zap() *zap.Logger { return l.sugar.Desugar() }

func (l *Logger) Debug(msg string, args ...any) { l.sugar.Debugw(msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.sugar.Infow(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.sugar.Warnw(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.sugar.Errorw(msg, args...) }

// Sync flushes buffered entries.
func (l *Logger) Sync() error { return l.sugar.Sync() }
