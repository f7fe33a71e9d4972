package core

import (
	"fmt"
	"strings"
)

// Level represents the severity level of a log record
type Level int8

const (
	// DebugLevel for detailed debugging information
	DebugLevel Level = 10
	// InfoLevel for general informational messages
	InfoLevel Level = 20
	// WarningLevel for conditions that deserve attention
	WarningLevel Level = 30
	// ErrorLevel for failed operations
	ErrorLevel Level = 40
	// CriticalLevel for failures the process may not survive
	CriticalLevel Level = 50
)

// Levels lists every defined level in ascending order.
var Levels = [...]Level{DebugLevel, InfoLevel, WarningLevel, ErrorLevel, CriticalLevel}

// String returns the string representation of the level
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarningLevel:
		return "WARNING"
	case ErrorLevel:
		return "ERROR"
	case CriticalLevel:
		return "CRITICAL"
	default:
		return fmt.Sprintf("LEVEL(%d)", int8(l))
	}
}

// Index maps a defined level to its position in Levels, or -1.
func (l Level) Index() int {
	switch l {
	case DebugLevel:
		return 0
	case InfoLevel:
		return 1
	case WarningLevel:
		return 2
	case ErrorLevel:
		return 3
	case CriticalLevel:
		return 4
	default:
		return -1
	}
}

// ParseLevel converts a level name to a Level. Matching is case-insensitive
// and WARN is accepted as an alias for WARNING.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return DebugLevel, nil
	case "INFO":
		return InfoLevel, nil
	case "WARN", "WARNING":
		return WarningLevel, nil
	case "ERROR":
		return ErrorLevel, nil
	case "CRITICAL":
		return CriticalLevel, nil
	default:
		return 0, fmt.Errorf("%w: unknown level %q", ErrInvalidConfig, s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (l Level) MarshalText() ([]byte, error) {
	if l.Index() < 0 {
		return nil, fmt.Errorf("%w: unknown level %d", ErrInvalidConfig, int(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
