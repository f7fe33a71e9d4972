// Package handler provides the Handler interface and the building blocks
// shared by the built-in sinks.
//
// A handler owns a minimum level and a formatter. Base implements the
// common Handle contract: records below the level are skipped, and any
// error returned by the variant's emit function, or any panic raised from
// it, is wrapped in an EmitError and routed to the diag.Reporter. Nothing
// escapes Handle, so one broken sink cannot stop delivery to the others or
// take down the dispatcher's consumer goroutine.
//
// Built-in handlers live in subpackages:
//
//   - consolehandler writes one line per record to an io.Writer (default: stdout).
//   - filehandler appends to a file and rotates numbered backups by size.
//
// Multi fans a record out to an ordered list of handlers; the dispatcher
// uses it to deliver each record to every registered handler in
// registration order.
//
// Handlers are only ever touched by the dispatcher's single consumer
// goroutine, which is why none of them lock their sink.
package handler
