package handler

import (
	"bytes"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/philipp01105/asynclog/core"
	"github.com/philipp01105/asynclog/diag"
	"github.com/philipp01105/asynclog/formatter"
)

// EmitFunc writes one record to a sink. Errors it returns are captured by
// Base and never reach the caller of Handle.
type EmitFunc func(r *core.Record) error

// Options configures a Base
type Options struct {
	// Name identifies the handler in diagnostics
	Name string
	// Level is the minimum level to emit (default: DEBUG)
	Level core.Level
	// Formatter renders records (default: DefaultTemplate)
	Formatter formatter.Formatter
	// Reporter receives emit failures (default: diag.Stderr)
	Reporter diag.Reporter
}

// Base implements the level gate and the failure boundary shared by all
// built-in handlers. Variants embed it and supply their emit function.
type Base struct {
	name            string
	level           core.Level
	formatter       formatter.Formatter
	bufferFormatter formatter.BufferFormatter
	reporter        diag.Reporter
	emit            EmitFunc
	line            bytes.Buffer

	handled  atomic.Uint64
	failed   atomic.Uint64
	filtered atomic.Uint64
}

// NewBase creates a Base that calls emit for every accepted record.
func NewBase(opts Options, emit EmitFunc) *Base {
	if opts.Level == 0 {
		opts.Level = core.DebugLevel
	}
	if opts.Formatter == nil {
		opts.Formatter = formatter.MustTemplateFormatter(formatter.DefaultTemplate)
	}
	if opts.Name == "" {
		opts.Name = "handler"
	}
	b := &Base{
		name:      opts.Name,
		level:     opts.Level,
		formatter: opts.Formatter,
		reporter:  diag.OrDefault(opts.Reporter),
		emit:      emit,
	}
	// Cache BufferFormatter so lines are rendered into the handler-owned buffer
	b.bufferFormatter, _ = opts.Formatter.(formatter.BufferFormatter)
	b.line.Grow(256)
	return b
}

// Name returns the handler name used in diagnostics
func (b *Base) Name() string { return b.name }

// Level returns the minimum accepted level
func (b *Base) Level() core.Level { return b.level }

// Reporter returns the diagnostics sink
func (b *Base) Reporter() diag.Reporter { return b.reporter }

// Handle emits r if it meets the handler level. Failures are reported to
// the diagnostics sink and swallowed.
func (b *Base) Handle(r *core.Record) {
	if r.Level() < b.level {
		b.filtered.Add(1)
		return
	}
	if err := b.safeEmit(r); err != nil {
		b.failed.Add(1)
		b.reporter.Report(b.name, &EmitError{Handler: b.name, Seq: r.Seq(), Err: err},
			zap.Uint64("seq", r.Seq()))
		return
	}
	b.handled.Add(1)
}

func (b *Base) safeEmit(r *core.Record) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", ErrEmitPanic, p)
		}
	}()
	return b.emit(r)
}

// Line renders r followed by a newline into the handler-owned buffer. The
// returned slice is only valid until the next call.
func (b *Base) Line(r *core.Record) []byte {
	b.line.Reset()
	if b.bufferFormatter != nil {
		b.bufferFormatter.FormatTo(&b.line, r)
	} else {
		b.line.WriteString(b.formatter.Format(r))
	}
	b.line.WriteByte('\n')
	return b.line.Bytes()
}

// Stats returns a snapshot of the handler counters
func (b *Base) Stats() Stats {
	return Stats{
		Handled:  b.handled.Load(),
		Failed:   b.failed.Load(),
		Filtered: b.filtered.Load(),
	}
}
