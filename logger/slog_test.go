package logger

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldMap(t *testing.T, sink *memorySink) map[string]string {
	t.Helper()
	out := map[string]string{}
	for _, f := range sink.last(t).Fields() {
		out[f.Key] = f.StringValue()
	}
	return out
}

func TestSlogHandler_Enabled(t *testing.T) {
	sh := NewSlogHandler(NewBuilder(newSink()).WithLevel(InfoLevel).Build())
	ctx := context.Background()

	assert.False(t, sh.Enabled(ctx, slog.LevelDebug), "Debug should not be enabled when level is Info")
	assert.True(t, sh.Enabled(ctx, slog.LevelInfo))
	assert.True(t, sh.Enabled(ctx, slog.LevelWarn))
	assert.True(t, sh.Enabled(ctx, slog.LevelError))
}

func TestSlogHandler_Handle(t *testing.T) {
	sink := newSink()
	l := NewBuilder(sink).WithName("svc").WithFields(String("app", "api")).Build()
	logger := slog.New(NewSlogHandler(l))

	logger.Warn("test message", "key", "value", "count", 42, "ok", true,
		"took", 1500*time.Millisecond, "err", errors.New("boom"))

	r := sink.last(t)
	assert.Equal(t, "svc", r.Name())
	assert.Equal(t, WarningLevel, r.Level())
	assert.Equal(t, "test message", r.Message())
	assert.Equal(t, map[string]string{
		"app":   "api",
		"key":   "value",
		"count": "42",
		"ok":    "true",
		"took":  "1.5s",
		"err":   "boom",
	}, fieldMap(t, sink))
}

func TestSlogHandler_LevelMapping(t *testing.T) {
	tests := map[slog.Level]Level{
		slog.LevelDebug - 4: DebugLevel,
		slog.LevelDebug:     DebugLevel,
		slog.LevelInfo:      InfoLevel,
		slog.LevelWarn:      WarningLevel,
		slog.LevelError:     ErrorLevel,
		slog.LevelError + 8: ErrorLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, slogLevelToCore(in), "slog level %s", in)
	}
}

func TestSlogHandler_Groups(t *testing.T) {
	sink := newSink()
	logger := slog.New(NewSlogHandler(NewBuilder(sink).Build())).
		With("service", "api").
		WithGroup("req").
		With("id", "r-1")

	logger.Info("handled",
		slog.Group("user", slog.String("name", "alice"), slog.Int("id", 7)),
		slog.Group("", slog.String("inline", "yes")),
		slog.Attr{},
		"status", 200,
	)

	assert.Equal(t, map[string]string{
		"service":       "api",
		"req.id":        "r-1",
		"req.user.name": "alice",
		"req.user.id":   "7",
		"req.inline":    "yes",
		"req.status":    "200",
	}, fieldMap(t, sink))
}

func TestSlogHandler_FilteredRecordIsNotEnqueued(t *testing.T) {
	sink := newSink()
	sh := NewSlogHandler(NewBuilder(sink).WithLevel(ErrorLevel).Build())

	r := slog.NewRecord(time.Time{}, slog.LevelInfo, "quiet", 0)
	require.NoError(t, sh.Handle(context.Background(), r))
	assert.Empty(t, sink.all())

	r = slog.NewRecord(time.Time{}, slog.LevelError, "loud", 0)
	require.NoError(t, sh.Handle(context.Background(), r))
	assert.False(t, sink.last(t).Time().IsZero(), "zero slog time is replaced by now")
}
