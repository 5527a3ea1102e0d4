package server

import (
	"time"

	"go.uber.org/zap/zapcore"
)

// ConsoleMessage represents a log line forwarded to the browser console
type ConsoleMessage struct {
	RenderID  string         `json:"renderId"`
	Level     string         `json:"level"`
	Message   string         `json:"message"`
	Fields    map[string]any `json:"fields,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// consoleCore is a zap core that forwards entries to a channel. It never
// blocks: messages are dropped when the channel is full or nil.
type consoleCore struct {
	zapcore.LevelEnabler
	renderID    string
	fields      []zapcore.Field
	consoleChan chan<- ConsoleMessage
}

// NewConsoleCore creates a core that forwards entries for one render
func NewConsoleCore(renderID string, level zapcore.LevelEnabler, consoleChan chan<- ConsoleMessage) zapcore.Core {
	return &consoleCore{LevelEnabler: level, renderID: renderID, consoleChan: consoleChan}
}

func (c *consoleCore) With(fields []zapcore.Field) zapcore.Core {
	clone := *c
	clone.fields = append(append([]zapcore.Field(nil), c.fields...), fields...)
	return &clone
}

func (c *consoleCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}

func (c *consoleCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	if c.consoleChan == nil {
		return nil
	}

	enc := zapcore.NewMapObjectEncoder()
	for _, field := range c.fields {
		field.AddTo(enc)
	}
	for _, field := range fields {
		field.AddTo(enc)
	}

	msg := ConsoleMessage{
		RenderID:  c.renderID,
		Level:     entry.Level.String(),
		Message:   entry.Message,
		Timestamp: entry.Time,
	}
	if len(enc.Fields) > 0 {
		msg.Fields = enc.Fields
	}

	select {
	case c.consoleChan <- msg:
	default:
		// Channel full, drop message to avoid stalling render workers
	}
	return nil
}

func (c *consoleCore) Sync() error {
	return nil
}
