package handler

import (
	"errors"
	"fmt"
)

// ErrEmitPanic marks an emit function that panicked instead of returning.
var ErrEmitPanic = errors.New("emit panicked")

// EmitError describes a record a handler failed to write.
type EmitError struct {
	// Handler is the name of the failing handler
	Handler string
	// Seq is the sequence number of the record
	Seq uint64
	// Err is the underlying failure
	Err error
}

func (e *EmitError) Error() string {
	return fmt.Sprintf("handler %s: emit record %d: %v", e.Handler, e.Seq, e.Err)
}

func (e *EmitError) Unwrap() error {
	return e.Err
}
