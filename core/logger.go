package core

import (
	"fmt"
	"log"
	"strings"
)

// Logger is the engine's structured logging seam. The core never imports a
// logging library; hosts plug in an implementation (see logging/zaplog for a
// go.uber.org/zap adapter) or leave the default no-op in place.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Field is one structured key-value pair attached to a log message.
type Field struct {
	Key   string
	Value any
}

// F builds a Field.
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// DefaultLogger writes key=value lines through the standard log package.
// Meant for examples and quick local debugging, not production output.
type DefaultLogger struct{}

// NewDefaultLogger creates a DefaultLogger.
func NewDefaultLogger() *DefaultLogger {
	return &DefaultLogger{}
}

func (l *DefaultLogger) Debug(msg string, fields ...Field) { l.write("DEBUG", msg, fields) }
func (l *DefaultLogger) Info(msg string, fields ...Field)  { l.write("INFO", msg, fields) }
func (l *DefaultLogger) Warn(msg string, fields ...Field)  { l.write("WARN", msg, fields) }
func (l *DefaultLogger) Error(msg string, fields ...Field) { l.write("ERROR", msg, fields) }

func (l *DefaultLogger) write(level, msg string, fields []Field) {
	var b strings.Builder
	b.WriteString(level)
	b.WriteByte(' ')
	b.WriteString(msg)
	for _, f := range fields {
		fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
	}
	log.Println(b.String())
}

// NoOpLogger discards everything. This is the default when no logger is
// configured, so the engine stays silent unless a host opts in.
type NoOpLogger struct{}

// NewNoOpLogger creates a NoOpLogger.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

func (l *NoOpLogger) Debug(msg string, fields ...Field) {}
func (l *NoOpLogger) Info(msg string, fields ...Field)  {}
func (l *NoOpLogger) Warn(msg string, fields ...Field)  {}
func (l *NoOpLogger) Error(msg string, fields ...Field) {}
