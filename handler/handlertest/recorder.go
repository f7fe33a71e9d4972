// Package handlertest provides in-memory handlers for tests of code that
// drives handlers, such as the dispatcher and the logger facade.
package handlertest

import (
	"sync"
	"time"

	"github.com/philipp01105/asynclog/core"
	"github.com/philipp01105/asynclog/diag"
	"github.com/philipp01105/asynclog/handler"
)

// Options configures a Recorder
type Options struct {
	Name     string
	Level    core.Level
	Reporter diag.Reporter
	// Fail, when set, is consulted before a record is stored. n counts
	// accepted records starting at 1. A non-nil error fails the emit.
	Fail func(n int, r *core.Record) error
	// Hold, when set, is called before each emit and may block to stall
	// the consumer.
	Hold func(r *core.Record)
}

// Recorder stores every record it successfully emits. Unlike real
// handlers it locks, because tests read it from a different goroutine
// than the consumer that writes to it.
type Recorder struct {
	*handler.Base
	opts Options

	mu       sync.Mutex
	changed  chan struct{}
	attempts int
	records  []*core.Record
	closed   int
}

// NewRecorder creates a recording handler
func NewRecorder(opts Options) *Recorder {
	if opts.Reporter == nil {
		opts.Reporter = diag.Nop()
	}
	if opts.Name == "" {
		opts.Name = "recorder"
	}
	rec := &Recorder{opts: opts, changed: make(chan struct{})}
	rec.Base = handler.NewBase(handler.Options{
		Name:     opts.Name,
		Level:    opts.Level,
		Reporter: opts.Reporter,
	}, rec.emit)
	return rec
}

func (rec *Recorder) emit(r *core.Record) error {
	if rec.opts.Hold != nil {
		rec.opts.Hold(r)
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.attempts++
	defer rec.notify()
	if rec.opts.Fail != nil {
		if err := rec.opts.Fail(rec.attempts, r); err != nil {
			return err
		}
	}
	rec.records = append(rec.records, r)
	return nil
}

// notify wakes waiters; callers hold mu.
func (rec *Recorder) notify() {
	close(rec.changed)
	rec.changed = make(chan struct{})
}

// Close marks the recorder closed
func (rec *Recorder) Close() error {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.closed++
	rec.notify()
	return nil
}

// Records returns the stored records in delivery order
func (rec *Recorder) Records() []*core.Record {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return append([]*core.Record(nil), rec.records...)
}

// Messages returns the stored messages in delivery order
func (rec *Recorder) Messages() []string {
	records := rec.Records()
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Message()
	}
	return out
}

// Len returns the number of stored records
func (rec *Recorder) Len() int {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return len(rec.records)
}

// Attempts returns how many accepted records reached emit
func (rec *Recorder) Attempts() int {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return rec.attempts
}

// CloseCount returns how many times Close was called
func (rec *Recorder) CloseCount() int {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return rec.closed
}

// WaitFor blocks until at least n records were attempted or timeout
// elapses, and reports whether the count was reached.
func (rec *Recorder) WaitFor(n int, timeout time.Duration) bool {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	for {
		rec.mu.Lock()
		done := rec.attempts >= n
		changed := rec.changed
		rec.mu.Unlock()
		if done {
			return true
		}
		select {
		case <-changed:
		case <-deadline.C:
			return false
		}
	}
}
