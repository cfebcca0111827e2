package tracelog

import (
	"fmt"
	"time"
)

// ConsoleMessage is one timestamped log line, mirroring the teacher's
// web/server.ConsoleMessage shape (message/timestamp/level) so the
// JSON a collaborator receives over the websocket push channel doesn't
// change shape between this engine and the raytracer it was adapted
// from.
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
}

// ConsoleLogger implements Logger by fanning every line out to a
// channel, non-blockingly, the way the teacher's WebLogger feeds a
// render's SSE console stream without letting a slow or absent reader
// stall rendering. Here it feeds web/server's websocket push instead.
type ConsoleLogger struct {
	sessionID string
	ch        chan<- ConsoleMessage
}

// NewConsoleLogger creates a ConsoleLogger that sends every message on
// ch. sessionID is kept on the logger but is not written into the
// messages it sends. ch may be nil, in which case Printf
// only ever returns without sending (useful for a headless CLI run
// that wants the same Logger value as the served path).
func NewConsoleLogger(sessionID string, ch chan<- ConsoleMessage) *ConsoleLogger {
	return &ConsoleLogger{sessionID: sessionID, ch: ch}
}

// Printf implements Logger.
func (c *ConsoleLogger) Printf(format string, args ...interface{}) {
	if c.ch == nil {
		return
	}
	msg := ConsoleMessage{Message: fmt.Sprintf(format, args...), Timestamp: time.Now(), Level: "info"}
	select {
	case c.ch <- msg:
	default:
		// Channel full or no reader: drop rather than block the engine.
	}
}
