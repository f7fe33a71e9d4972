package dispatcher

import (
	"fmt"
	"strings"

	"github.com/philipp01105/asynclog/core"
)

// DropPolicy defines how Enqueue behaves when the queue is full
type DropPolicy int

const (
	// DropOldest evicts the oldest queued record to make room
	DropOldest DropPolicy = iota
	// DropNew rejects the incoming record
	DropNew
	// Block waits up to BlockTimeout for room, then rejects the record
	Block
)

// String returns the string representation of the policy
func (p DropPolicy) String() string {
	switch p {
	case DropOldest:
		return "drop_oldest"
	case DropNew:
		return "drop_new"
	case Block:
		return "block"
	default:
		return fmt.Sprintf("DropPolicy(%d)", int(p))
	}
}

func (p DropPolicy) valid() bool {
	return p >= DropOldest && p <= Block
}

// ParsePolicy parses a policy name. Underscores and dashes are accepted
// interchangeably and case is ignored.
func ParsePolicy(s string) (DropPolicy, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_") {
	case "drop_oldest":
		return DropOldest, nil
	case "drop_new":
		return DropNew, nil
	case "block":
		return Block, nil
	default:
		return 0, fmt.Errorf("%w: unknown drop policy %q", core.ErrInvalidConfig, s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (p DropPolicy) MarshalText() ([]byte, error) {
	if !p.valid() {
		return nil, fmt.Errorf("%w: unknown drop policy %d", core.ErrInvalidConfig, int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (p *DropPolicy) UnmarshalText(text []byte) error {
	parsed, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
