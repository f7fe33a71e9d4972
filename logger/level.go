package logger

import (
	"github.com/philipp01105/asynclog/core"
)

// Level Re-export type and constants for convenience
type Level = core.Level

const (
	DebugLevel    = core.DebugLevel
	InfoLevel     = core.InfoLevel
	WarningLevel  = core.WarningLevel
	ErrorLevel    = core.ErrorLevel
	CriticalLevel = core.CriticalLevel
)

// ParseLevel converts a level name to a Level; see core.ParseLevel
func ParseLevel(s string) (Level, error) {
	return core.ParseLevel(s)
}
