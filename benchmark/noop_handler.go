// Package benchmark compares the cost a producer pays for one log call in
// asynclog against other Go logging libraries. It is a separate module so
// the competitors never become dependencies of asynclog itself.
package benchmark

import (
	"github.com/philipp01105/asynclog/core"
	"github.com/philipp01105/asynclog/handler"
)

type noopHandler struct{}

func newNoopHandler() handler.Handler {
	return &noopHandler{}
}

func (h *noopHandler) Level() core.Level { return core.DebugLevel }

func (h *noopHandler) Handle(r *core.Record) {
	_ = len(r.Message())
}

func (h *noopHandler) Close() error {
	return nil
}
