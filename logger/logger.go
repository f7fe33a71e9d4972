package logger

import (
	"fmt"

	"github.com/philipp01105/asynclog/core"
)

// DefaultName is used by Builder when no name is set
const DefaultName = "root"

// Enqueuer accepts records for asynchronous delivery.
// *dispatcher.Dispatcher implements it.
type Enqueuer interface {
	Enqueue(r *core.Record) bool
}

// Logger is the producer-side facade (immutable). Many Loggers may share
// one Enqueuer; a Logger never owns or stops it.
type Logger struct {
	name   string
	level  core.Level
	sink   Enqueuer
	fields []core.Field
}

// Builder provides a fluent API for building Logger instances
type Builder struct {
	name   string
	level  core.Level
	sink   Enqueuer
	fields []core.Field
}

// NewBuilder creates a builder for loggers that enqueue into sink
func NewBuilder(sink Enqueuer) *Builder {
	return &Builder{
		name:  DefaultName,
		level: core.DebugLevel,
		sink:  sink,
	}
}

// WithName sets the logger name
func (b *Builder) WithName(name string) *Builder {
	b.name = name
	return b
}

// WithLevel sets the minimum level
func (b *Builder) WithLevel(level core.Level) *Builder {
	b.level = level
	return b
}

// WithFields adds default fields to all records
func (b *Builder) WithFields(fields ...core.Field) *Builder {
	b.fields = append(b.fields, fields...)
	return b
}

// Build creates the Logger instance
func (b *Builder) Build() *Logger {
	return &Logger{
		name:   b.name,
		level:  b.level,
		sink:   b.sink,
		fields: append([]core.Field(nil), b.fields...),
	}
}

// Name returns the logger name
func (l *Logger) Name() string { return l.name }

// Level returns the minimum level
func (l *Logger) Level() core.Level { return l.level }

// Enabled reports whether a record at level would be enqueued
func (l *Logger) Enabled(level core.Level) bool {
	return level >= l.level && l.sink != nil
}

// With creates a new Logger with additional fields (immutable operation)
func (l *Logger) With(fields ...core.Field) *Logger {
	newFields := make([]core.Field, len(l.fields)+len(fields))
	copy(newFields, l.fields)
	copy(newFields[len(l.fields):], fields)

	return &Logger{
		name:   l.name,
		level:  l.level,
		sink:   l.sink,
		fields: newFields,
	}
}

// Named creates a Logger with another name sharing the same sink, level
// and fields
func (l *Logger) Named(name string) *Logger {
	return &Logger{
		name:   name,
		level:  l.level,
		sink:   l.sink,
		fields: l.fields,
	}
}

// Log builds a record and enqueues it. It returns false without building
// anything when level is below the logger level, and otherwise the result
// of Enqueue.
func (l *Logger) Log(level core.Level, msg string, fields ...core.Field) bool {
	// Level check before any allocation
	if level < l.level {
		return false
	}
	return l.log(level, msg, fields)
}

func (l *Logger) log(level core.Level, msg string, fields []core.Field) bool {
	if l.sink == nil {
		return false
	}
	if len(l.fields) > 0 {
		// Default fields first so call-site fields override their values
		all := make([]core.Field, 0, len(l.fields)+len(fields))
		all = append(all, l.fields...)
		fields = append(all, fields...)
	}
	return l.sink.Enqueue(core.NewRecord(l.name, level, msg, fields...))
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields ...core.Field) {
	if core.DebugLevel < l.level {
		return
	}
	l.log(core.DebugLevel, msg, fields)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields ...core.Field) {
	if core.InfoLevel < l.level {
		return
	}
	l.log(core.InfoLevel, msg, fields)
}

// Warning logs a warning message
func (l *Logger) Warning(msg string, fields ...core.Field) {
	if core.WarningLevel < l.level {
		return
	}
	l.log(core.WarningLevel, msg, fields)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields ...core.Field) {
	if core.ErrorLevel < l.level {
		return
	}
	l.log(core.ErrorLevel, msg, fields)
}

// Critical logs a critical message. Unlike log.Fatal it does not exit.
func (l *Logger) Critical(msg string, fields ...core.Field) {
	if core.CriticalLevel < l.level {
		return
	}
	l.log(core.CriticalLevel, msg, fields)
}

// Debugf logs a debug message with formatting
func (l *Logger) Debugf(format string, args ...interface{}) {
	if core.DebugLevel < l.level {
		return
	}
	l.log(core.DebugLevel, fmt.Sprintf(format, args...), nil)
}

// Infof logs an info message with formatting
func (l *Logger) Infof(format string, args ...interface{}) {
	if core.InfoLevel < l.level {
		return
	}
	l.log(core.InfoLevel, fmt.Sprintf(format, args...), nil)
}

// Warningf logs a warning message with formatting
func (l *Logger) Warningf(format string, args ...interface{}) {
	if core.WarningLevel < l.level {
		return
	}
	l.log(core.WarningLevel, fmt.Sprintf(format, args...), nil)
}

// Errorf logs an error message with formatting
func (l *Logger) Errorf(format string, args ...interface{}) {
	if core.ErrorLevel < l.level {
		return
	}
	l.log(core.ErrorLevel, fmt.Sprintf(format, args...), nil)
}

// Criticalf logs a critical message with formatting
func (l *Logger) Criticalf(format string, args ...interface{}) {
	if core.CriticalLevel < l.level {
		return
	}
	l.log(core.CriticalLevel, fmt.Sprintf(format, args...), nil)
}
