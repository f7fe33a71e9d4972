package handler

import (
	"go.uber.org/multierr"

	"github.com/philipp01105/asynclog/core"
)

// Multi sends records to multiple handlers in registration order
type Multi struct {
	handlers []Handler
	minLevel core.Level
}

// NewMulti creates a new multi-handler. The handler list is fixed for the
// lifetime of the Multi.
func NewMulti(handlers ...Handler) *Multi {
	m := &Multi{
		handlers: append([]Handler(nil), handlers...),
		minLevel: core.CriticalLevel + 1,
	}
	for _, h := range m.handlers {
		if h.Level() < m.minLevel {
			m.minLevel = h.Level()
		}
	}
	return m
}

// Level returns the lowest level accepted by any child
func (m *Multi) Level() core.Level {
	return m.minLevel
}

// Len returns the number of child handlers
func (m *Multi) Len() int {
	return len(m.handlers)
}

// Handle delivers r to every child in order. Children apply their own
// level filter.
func (m *Multi) Handle(r *core.Record) {
	if r.Level() < m.minLevel {
		return
	}
	for _, h := range m.handlers {
		h.Handle(r)
	}
}

// Close closes all handlers, combining their errors
func (m *Multi) Close() error {
	var err error
	for _, h := range m.handlers {
		err = multierr.Append(err, h.Close())
	}
	return err
}
