// Package tracelog provides the engine's logging sink: a small
// Printf-shaped Logger interface, the same shape as the teacher's
// pkg/core.Logger, so call sites don't care whether the backing sink
// is zap, a test recorder, or a websocket console stream (the
// teacher's web/server.WebLogger pattern generalized from "also print
// to stdout" to "route through a structured logger").
package tracelog

import (
	"fmt"

	"go.uber.org/zap"
)

// Logger is the engine-wide logging interface. It deliberately mirrors
// the teacher's core.Logger (Printf(format, args...)) rather than
// zap's own SugaredLogger surface, so pkg/engine and pkg/sceneio never
// import zap directly.
type Logger interface {
	Printf(format string, args ...interface{})
}

// ZapLogger adapts a *zap.SugaredLogger to Logger.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger wraps sugar as a Logger.
func NewZapLogger(sugar *zap.SugaredLogger) *ZapLogger {
	return &ZapLogger{sugar: sugar}
}

// NewDefaultLogger builds a production zap logger (JSON encoding,
// info level) wrapped as a Logger. Callers that want development
// formatting (console encoding, debug level) should build their own
// *zap.Logger and pass its Sugar() to NewZapLogger instead.
func NewDefaultLogger() *ZapLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		logger = zap.NewNop()
	}
	return NewZapLogger(logger.Sugar())
}

// Printf implements Logger.
func (l *ZapLogger) Printf(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

// Recorder is a test/in-memory Logger that keeps every formatted line,
// grounded on the teacher's pattern of swapping in a non-production
// Logger implementation (WebLogger) without changing any call site.
type Recorder struct {
	Lines []string
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Printf implements Logger.
func (r *Recorder) Printf(format string, args ...interface{}) {
	r.Lines = append(r.Lines, fmt.Sprintf(format, args...))
}
