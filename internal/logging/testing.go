package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// NewTestLogger returns a logger that records every entry, down to trace,
// for assertions in tests.
func NewTestLogger() (Logger, *observer.ObservedLogs) {
	core, observed := observer.New(TraceLevel)
	return Logger{zap: zap.New(core), level: TraceLevel}, observed
}
