// Package logging provides the Logger interface used throughout plume, and
// a default implementation backed by go.uber.org/zap. The interface and the
// level constants mirror the teacher's logging.Logger / ozap.Wrapper pair so
// that plugin authors (outside this module) can plug in their own sink the
// same way.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level is a logging severity.
type Level int

const (
	Error Level = iota
	Warn
	Info
	Debug
)

// Logger is the sink every plume component logs through. Never hold a
// *zap.Logger directly in component state; hold a Logger.
type Logger interface {
	Debug(f string, a ...interface{})
	Info(f string, a ...interface{})
	Warn(f string, a ...interface{})
	Error(f string, a ...interface{})
	WithFields(fields map[string]interface{}) Logger
}

// NoOp discards everything. Useful as a zero-value default for components
// constructed without an explicit logger.
type NoOp struct{}

func (NoOp) Debug(string, ...interface{})            {}
func (NoOp) Info(string, ...interface{})             {}
func (NoOp) Warn(string, ...interface{})             {}
func (NoOp) Error(string, ...interface{})            {}
func (n NoOp) WithFields(map[string]interface{}) Logger { return n }

// zapLogger adapts a *zap.Logger to Logger, the way the teacher's
// ozap.Wrapper adapts zap to its own logging.Logger.
type zapLogger struct {
	internal *zap.Logger
	level    *zap.AtomicLevel
}

// New returns a Logger backed by zap's development configuration (console
// encoder) at the given level, suitable for CLI and test use.
func New(level Level) Logger {
	atom := zap.NewAtomicLevelAt(toZapLevel(level))
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = atom
	l, err := cfg.Build()
	if err != nil {
		// zap's development config does not fail to build in practice;
		// fall back rather than panic in a logging constructor.
		l = zap.NewNop()
	}
	return &zapLogger{internal: l, level: &atom}
}

func (w *zapLogger) Debug(f string, a ...interface{}) { w.internal.Debug(fmt.Sprintf(f, a...)) }
func (w *zapLogger) Info(f string, a ...interface{})  { w.internal.Info(fmt.Sprintf(f, a...)) }
func (w *zapLogger) Warn(f string, a ...interface{})  { w.internal.Warn(fmt.Sprintf(f, a...)) }
func (w *zapLogger) Error(f string, a ...interface{}) { w.internal.Error(fmt.Sprintf(f, a...)) }

func (w *zapLogger) WithFields(fields map[string]interface{}) Logger {
	return &zapLogger{internal: w.internal.With(toZapFields(fields)...), level: w.level}
}

func toZapFields(fields map[string]interface{}) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		switch t := v.(type) {
		case error:
			out = append(out, zap.NamedError(k, t))
		case string:
			out = append(out, zap.String(k, t))
		case bool:
			out = append(out, zap.Bool(k, t))
		case int:
			out = append(out, zap.Int(k, t))
		default:
			out = append(out, zap.Any(k, v))
		}
	}
	return out
}

func toZapLevel(l Level) zapcore.Level {
	switch l {
	case Error:
		return zap.ErrorLevel
	case Warn:
		return zap.WarnLevel
	case Debug:
		return zap.DebugLevel
	default:
		return zap.InfoLevel
	}
}
