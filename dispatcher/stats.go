package dispatcher

import (
	"sync/atomic"

	"github.com/philipp01105/asynclog/core"
)

// stats tracks dispatcher counters. Drops are kept per level so a caller
// can tell whether it lost debug chatter or errors.
type stats struct {
	enqueued     atomic.Uint64
	dropped      [len(core.Levels)]atomic.Uint64
	droppedOther atomic.Uint64 // records with a level outside core.Levels
	lost         atomic.Uint64
	delivered    atomic.Uint64
	batches      atomic.Uint64
}

func (s *stats) drop(level core.Level) {
	if i := level.Index(); i >= 0 {
		s.dropped[i].Add(1)
		return
	}
	s.droppedOther.Add(1)
}

// Snapshot is a point-in-time copy of the dispatcher counters. Lost
// records are the ones discarded because a stop timed out; they are never
// counted as dropped.
type Snapshot struct {
	// Enqueued counts records accepted into the queue
	Enqueued uint64
	// Dropped counts records discarded by the drop policy
	Dropped uint64
	// DroppedByLevel splits Dropped by record level
	DroppedByLevel map[core.Level]uint64
	// Lost counts records discarded by a timed out stop
	Lost uint64
	// Delivered counts records handed to the handlers
	Delivered uint64
	// Batches counts flushes that delivered at least one record
	Batches uint64
}

func (s *stats) snapshot() Snapshot {
	snap := Snapshot{
		Enqueued:       s.enqueued.Load(),
		DroppedByLevel: make(map[core.Level]uint64, len(core.Levels)),
		Lost:           s.lost.Load(),
		Delivered:      s.delivered.Load(),
		Batches:        s.batches.Load(),
	}
	for i, lvl := range core.Levels {
		n := s.dropped[i].Load()
		snap.DroppedByLevel[lvl] = n
		snap.Dropped += n
	}
	snap.Dropped += s.droppedOther.Load()
	return snap
}
