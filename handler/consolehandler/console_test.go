package consolehandler

import (
	"bufio"
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/philipp01105/asynclog/core"
	"github.com/philipp01105/asynclog/diag"
	"github.com/philipp01105/asynclog/formatter"
)

func TestConsoleHandler_WritesOneLinePerRecord(t *testing.T) {
	var buf bytes.Buffer
	h := NewConsoleHandler(ConsoleConfig{
		Writer:    &buf,
		Formatter: formatter.MustTemplateFormatter("{asctime} [{level}] {name}: {msg} {meta}"),
		Reporter:  diag.Nop(),
	})
	defer h.Close()

	ts := time.Date(2026, 3, 1, 8, 30, 0, 42000, time.UTC)
	h.Handle(core.NewRecordAt(ts, "MyApp", core.InfoLevel, "message 0 from thread 1",
		core.Field{Key: "thread", Type: core.IntType, Int64: 1},
		core.Field{Key: "i", Type: core.IntType, Int64: 0},
	))
	h.Handle(core.NewRecordAt(ts, "MyApp", core.ErrorLevel, "boom"))

	want := "2026-03-01T08:30:00.000042Z [INFO] MyApp: message 0 from thread 1 thread=1 i=0\n" +
		"2026-03-01T08:30:00.000042Z [ERROR] MyApp: boom \n"
	assert.Equal(t, want, buf.String())
	assert.Equal(t, uint64(2), h.Stats().Handled)
}

func TestConsoleHandler_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	h := NewConsoleHandler(ConsoleConfig{
		Writer:    &buf,
		Level:     core.ErrorLevel,
		Formatter: formatter.MustTemplateFormatter("{msg}"),
		Reporter:  diag.Nop(),
	})

	h.Handle(core.NewRecord("app", core.WarningLevel, "ignored"))
	h.Handle(core.NewRecord("app", core.CriticalLevel, "kept"))

	assert.Equal(t, "kept\n", buf.String())
	assert.Equal(t, core.ErrorLevel, h.Level())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestConsoleHandler_WriteErrorIsReported(t *testing.T) {
	obs, logs := observer.New(zapcore.DebugLevel)
	h := NewConsoleHandler(ConsoleConfig{
		Writer:   failingWriter{},
		Reporter: diag.NewZap(zap.New(obs)),
	})

	r := core.NewRecord("app", core.InfoLevel, "lost")
	require.NotPanics(t, func() { h.Handle(r) })

	require.Equal(t, 1, logs.Len())
	ctx := logs.All()[0].ContextMap()
	assert.Equal(t, "console", ctx["component"])
	assert.Contains(t, ctx["error"], "broken pipe")
	assert.Equal(t, r.Seq(), ctx["seq"])
	assert.Equal(t, uint64(1), h.Stats().Failed)
}

func TestConsoleHandler_CloseFlushesBufferedWriter(t *testing.T) {
	var buf bytes.Buffer
	bw := bufio.NewWriter(&buf)
	h := NewConsoleHandler(ConsoleConfig{
		Writer:    bw,
		Formatter: formatter.MustTemplateFormatter("{msg}"),
		Reporter:  diag.Nop(),
	})

	h.Handle(core.NewRecord("app", core.InfoLevel, "buffered"))
	assert.Empty(t, buf.String())

	require.NoError(t, h.Close())
	assert.Equal(t, "buffered\n", buf.String())
}
