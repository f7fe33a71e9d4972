package core

import "errors"

// ErrInvalidConfig marks a construction-time configuration problem such as
// an unknown formatter placeholder or drop policy. It is the only error class
// the pipeline lets escape to callers.
var ErrInvalidConfig = errors.New("invalid configuration")
