package handler_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/philipp01105/asynclog/core"
	"github.com/philipp01105/asynclog/diag"
	"github.com/philipp01105/asynclog/formatter"
	"github.com/philipp01105/asynclog/handler"
	"github.com/philipp01105/asynclog/handler/handlertest"
)

func TestBase_LevelGate(t *testing.T) {
	rec := handlertest.NewRecorder(handlertest.Options{Level: core.WarningLevel})

	for _, lvl := range core.Levels {
		rec.Handle(core.NewRecord("app", lvl, lvl.String()))
	}

	assert.Equal(t, []string{"WARNING", "ERROR", "CRITICAL"}, rec.Messages())
	stats := rec.Stats()
	assert.Equal(t, uint64(3), stats.Handled)
	assert.Equal(t, uint64(2), stats.Filtered)
	assert.Zero(t, stats.Failed)
}

func TestBase_DefaultsToDebug(t *testing.T) {
	b := handler.NewBase(handler.Options{Reporter: diag.Nop()}, func(*core.Record) error { return nil })
	assert.Equal(t, core.DebugLevel, b.Level())
	assert.Equal(t, "handler", b.Name())
}

func TestBase_EmitErrorIsReportedAndSwallowed(t *testing.T) {
	obs, logs := observer.New(zapcore.DebugLevel)
	sinkErr := errors.New("disk full")
	rec := handlertest.NewRecorder(handlertest.Options{
		Name:     "flaky",
		Reporter: diag.NewZap(zap.New(obs)),
		Fail: func(n int, _ *core.Record) error {
			if n == 2 {
				return sinkErr
			}
			return nil
		},
	})

	first := core.NewRecord("app", core.InfoLevel, "one")
	second := core.NewRecord("app", core.InfoLevel, "two")
	third := core.NewRecord("app", core.InfoLevel, "three")
	rec.Handle(first)
	rec.Handle(second)
	rec.Handle(third)

	assert.Equal(t, []string{"one", "three"}, rec.Messages())
	assert.Equal(t, uint64(1), rec.Stats().Failed)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
	ctx := entry.ContextMap()
	assert.Equal(t, "flaky", ctx["component"])
	assert.Equal(t, second.Seq(), ctx["seq"])
	assert.Contains(t, ctx["error"], "disk full")
}

func TestBase_PanicIsCaptured(t *testing.T) {
	var reported []error
	rep := reporterFunc(func(_ string, err error) { reported = append(reported, err) })
	b := handler.NewBase(handler.Options{Name: "panicky", Reporter: rep}, func(*core.Record) error {
		panic("sink exploded")
	})

	r := core.NewRecord("app", core.ErrorLevel, "boom")
	require.NotPanics(t, func() { b.Handle(r) })

	require.Len(t, reported, 1)
	assert.ErrorIs(t, reported[0], handler.ErrEmitPanic)

	var emitErr *handler.EmitError
	require.ErrorAs(t, reported[0], &emitErr)
	assert.Equal(t, "panicky", emitErr.Handler)
	assert.Equal(t, r.Seq(), emitErr.Seq)
	assert.Contains(t, emitErr.Error(), "sink exploded")
}

func TestBase_Line(t *testing.T) {
	b := handler.NewBase(handler.Options{
		Formatter: formatter.MustTemplateFormatter("{level}|{msg}"),
		Reporter:  diag.Nop(),
	}, nil)

	line := b.Line(core.NewRecord("app", core.CriticalLevel, "down"))
	assert.Equal(t, "CRITICAL|down\n", string(line))
}

type plainFormatter struct{}

func (plainFormatter) Format(r *core.Record) string { return "plain:" + r.Message() }

func TestBase_LineWithoutBufferFormatter(t *testing.T) {
	b := handler.NewBase(handler.Options{Formatter: plainFormatter{}, Reporter: diag.Nop()}, nil)
	assert.Equal(t, "plain:x\n", string(b.Line(core.NewRecord("app", core.InfoLevel, "x"))))
}

type reporterFunc func(component string, err error)

func (f reporterFunc) Report(component string, err error, _ ...zap.Field) { f(component, err) }
func (f reporterFunc) Info(string, string, ...zap.Field) {}
