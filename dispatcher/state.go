package dispatcher

import "fmt"

// State is the lifecycle position of a Dispatcher. It only moves forward:
// Created, Running, Stopping, Stopped.
type State int32

const (
	// Created is the state after New and before Start
	Created State = iota
	// Running accepts records and delivers them
	Running
	// Stopping still accepts records while the consumer drains
	Stopping
	// Stopped rejects every record
	Stopped
)

func (s State) String() string {
	switch s {
	case Created:
		return "CREATED"
	case Running:
		return "RUNNING"
	case Stopping:
		return "STOPPING"
	case Stopped:
		return "STOPPED"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// accepting reports whether Enqueue may insert in this state
func (s State) accepting() bool {
	return s == Running || s == Stopping
}
