package logger

import (
	"context"
	"log/slog"
	"time"

	"github.com/philipp01105/asynclog/core"
)

// SlogHandler adapts a Logger to slog.Handler, so code written against
// log/slog feeds the same asynchronous pipeline.
type SlogHandler struct {
	logger *Logger
	attrs  []core.Field
	group  string
}

// NewSlogHandler creates a slog.Handler that enqueues through l, using its
// name, level and default fields.
func NewSlogHandler(l *Logger) *SlogHandler {
	return &SlogHandler{logger: l}
}

// Enabled reports whether the handler handles records at the given level.
func (s *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return s.logger.Enabled(slogLevelToCore(level))
}

// Handle converts record and enqueues it. A record rejected by the queue
// is counted by the dispatcher and not reported as an error.
func (s *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	level := slogLevelToCore(record.Level)
	if !s.logger.Enabled(level) {
		return nil
	}

	fields := make([]core.Field, 0, len(s.logger.fields)+len(s.attrs)+record.NumAttrs())
	fields = append(fields, s.logger.fields...)
	fields = append(fields, s.attrs...)
	record.Attrs(func(a slog.Attr) bool {
		fields = appendAttr(fields, s.group, a)
		return true
	})

	t := record.Time
	if t.IsZero() {
		t = time.Now()
	}
	s.logger.sink.Enqueue(core.NewRecordAt(t, s.logger.name, level, record.Message, fields...))
	return nil
}

// WithAttrs returns a new SlogHandler with additional attributes.
func (s *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return s
	}
	newAttrs := make([]core.Field, len(s.attrs), len(s.attrs)+len(attrs))
	copy(newAttrs, s.attrs)
	for _, a := range attrs {
		newAttrs = appendAttr(newAttrs, s.group, a)
	}
	return &SlogHandler{
		logger: s.logger,
		attrs:  newAttrs,
		group:  s.group,
	}
}

// WithGroup returns a new SlogHandler with the given group name.
func (s *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	return &SlogHandler{
		logger: s.logger,
		attrs:  s.attrs,
		group:  joinKey(s.group, name),
	}
}

// slogLevelToCore converts a slog.Level to a core.Level.
func slogLevelToCore(level slog.Level) core.Level {
	switch {
	case level >= slog.LevelError:
		return core.ErrorLevel
	case level >= slog.LevelWarn:
		return core.WarningLevel
	case level >= slog.LevelInfo:
		return core.InfoLevel
	default:
		return core.DebugLevel
	}
}

func joinKey(group, key string) string {
	if group == "" {
		return key
	}
	return group + "." + key
}

// appendAttr converts a, prefixing its key with group. Group values are
// flattened into one field per member; empty attrs are skipped as slog
// handlers should.
func appendAttr(fields []core.Field, group string, a slog.Attr) []core.Field {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return fields
	}

	if a.Value.Kind() == slog.KindGroup {
		prefix := group
		// An inline group (empty key) adds its members to the current group
		if a.Key != "" {
			prefix = joinKey(group, a.Key)
		}
		for _, member := range a.Value.Group() {
			fields = appendAttr(fields, prefix, member)
		}
		return fields
	}

	key := joinKey(group, a.Key)
	switch a.Value.Kind() {
	case slog.KindString:
		return append(fields, String(key, a.Value.String()))
	case slog.KindInt64:
		return append(fields, Int64(key, a.Value.Int64()))
	case slog.KindUint64:
		return append(fields, Any(key, a.Value.Uint64()))
	case slog.KindFloat64:
		return append(fields, Float64(key, a.Value.Float64()))
	case slog.KindBool:
		return append(fields, Bool(key, a.Value.Bool()))
	case slog.KindTime:
		return append(fields, Time(key, a.Value.Time()))
	case slog.KindDuration:
		return append(fields, Duration(key, a.Value.Duration()))
	default:
		if err, ok := a.Value.Any().(error); ok {
			return append(fields, NamedErr(key, err))
		}
		return append(fields, Any(key, a.Value.Any()))
	}
}
