// Package core defines the shared types used across the asynclog pipeline.
//
// It provides the Level type for severity filtering, the Record type that
// represents a single log event, and the Field type for typed metadata.
//
// A Record is immutable once built. NewRecord stamps it with the current
// UTC time and the next value of a process-wide atomic counter, so records
// built by any goroutine carry strictly increasing sequence numbers. The
// dispatcher hands the same *Record to every handler, which is why there is
// no pooling: a handler can never observe a record being reused.
//
// Field encodes values into fixed-size numeric fields (Int64, Float64)
// wherever possible so that common types like int, bool, and time.Time
// never escape to the heap. The Any field exists as a fallback for
// arbitrary types but will cause an allocation.
package core
