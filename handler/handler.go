package handler

import (
	"github.com/philipp01105/asynclog/core"
)

// Handler consumes records and writes them to a sink.
//
// Handle never reports failures to its caller: a handler that cannot write
// reports the problem to its diag.Reporter and carries on. Handlers are
// driven by a single consumer goroutine and are not safe for concurrent
// Handle calls.
type Handler interface {
	// Level returns the minimum level the handler accepts
	Level() core.Level

	// Handle processes a record
	Handle(r *core.Record)

	// Close flushes and releases the sink
	Close() error
}

// StatsProvider is implemented by handlers that count their work.
type StatsProvider interface {
	Stats() Stats
}

// Stats is a point-in-time copy of a handler's counters.
type Stats struct {
	// Handled counts records emitted successfully
	Handled uint64
	// Failed counts records whose emit failed
	Failed uint64
	// Filtered counts records below the handler level
	Filtered uint64
}
