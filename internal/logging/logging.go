package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TraceLevel is a custom level below Debug for per-pattern and per-node detail.
const TraceLevel = zapcore.Level(-2)

// QuietLevel is the level used when no output level is requested. Only
// warnings and errors are written.
const QuietLevel = zapcore.WarnLevel

// Logger writes leveled diagnostics to stderr. The zero value discards
// everything.
type Logger struct {
	zap   *zap.Logger
	level zapcore.Level
}

// LevelFromString maps an output level name to a log level. Each recognized
// name enables a superset of the one before it: verbose, debug, trace.
// Anything else is quiet.
func LevelFromString(name string) zapcore.Level {
	switch name {
	case "verbose":
		return zapcore.InfoLevel
	case "debug":
		return zapcore.DebugLevel
	case "trace":
		return TraceLevel
	default:
		return QuietLevel
	}
}

// New creates a logger writing to w at the given level. A nil writer means stderr.
func New(w io.Writer, level zapcore.Level) Logger {
	if w == nil {
		w = os.Stderr
	}
	core := zapcore.NewCore(newEncoder(), zapcore.AddSync(w), level)
	return Logger{zap: zap.New(core), level: level}
}

func newEncoder() zapcore.Encoder {
	return zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey:       "msg",
		LevelKey:         "level",
		EncodeLevel:      encodeLevel,
		ConsoleSeparator: " ",
	})
}

// encodeLevel renders levels as the colored bracket prefixes used across the CLI.
func encodeLevel(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	switch {
	case l <= TraceLevel:
		enc.AppendString(color.MagentaString("[trace]"))
	case l == zapcore.DebugLevel:
		enc.AppendString(color.CyanString("[debug]"))
	case l == zapcore.InfoLevel:
		enc.AppendString(color.GreenString("[info]"))
	case l == zapcore.WarnLevel:
		enc.AppendString(color.YellowString("[warn]"))
	default:
		enc.AppendString(color.RedString("[error]"))
	}
}

// Level returns the minimum level this logger writes.
func (l Logger) Level() zapcore.Level {
	return l.level
}

// Enabled reports whether messages at lvl are written.
func (l Logger) Enabled(lvl zapcore.Level) bool {
	return l.zap != nil && l.zap.Core().Enabled(lvl)
}

func (l Logger) logf(lvl zapcore.Level, msg string, args ...any) {
	if !l.Enabled(lvl) {
		return
	}
	l.zap.Log(lvl, fmt.Sprintf(msg, args...))
}

func (l Logger) Tracef(msg string, args ...any) {
	l.logf(TraceLevel, msg, args...)
}

func (l Logger) Debugf(msg string, args ...any) {
	l.logf(zapcore.DebugLevel, msg, args...)
}

func (l Logger) Infof(msg string, args ...any) {
	l.logf(zapcore.InfoLevel, msg, args...)
}

func (l Logger) Warnf(msg string, args ...any) {
	l.logf(zapcore.WarnLevel, msg, args...)
}

func (l Logger) Errorf(msg string, args ...any) {
	l.logf(zapcore.ErrorLevel, msg, args...)
}

// ErrorfAndReturn logs the message at error level and returns it as an error.
func (l Logger) ErrorfAndReturn(msg string, args ...any) error {
	l.Errorf(msg, args...)
	return fmt.Errorf(msg, args...)
}

// Sync flushes buffered output.
func (l Logger) Sync() {
	if l.zap != nil {
		_ = l.zap.Sync()
	}
}
