package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/philipp01105/asynclog/core"
	"github.com/philipp01105/asynclog/handler"
)

// ErrDrainTimeout is returned by Shutdown when the queue did not drain
// before the context was done.
var ErrDrainTimeout = errors.New("drain timed out")

const component = "dispatcher"

// Dispatcher owns a bounded queue and the single consumer goroutine that
// batches queued records and delivers them to its handlers. Enqueue is safe
// for concurrent use by any number of producers.
type Dispatcher struct {
	cfg      Config
	handlers *handler.Multi
	queue    chan *core.Record

	// stateMu is read-held by producers for the whole insert. The move to
	// Stopped is the only transition taken under the write lock, so once
	// it is stored no insert is in flight and none can follow.
	stateMu sync.RWMutex
	state   atomic.Int32

	// closing releases Block producers before the write lock is taken
	closing  chan struct{}
	sealOnce sync.Once

	// pushMu serializes DropOldest producers between evict and insert
	pushMu sync.Mutex

	stopOnce sync.Once
	drained  bool
	stop     chan struct{}
	abandon  chan struct{}
	done     chan struct{}

	stats stats
}

// New validates cfg and creates a dispatcher in the Created state. The
// handler list is fixed; handlers are closed when the dispatcher stops.
func New(cfg Config, handlers ...handler.Handler) (*Dispatcher, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return &Dispatcher{
		cfg:      cfg,
		handlers: handler.NewMulti(handlers...),
		queue:    make(chan *core.Record, cfg.QueueSize),
		closing:  make(chan struct{}),
		stop:     make(chan struct{}),
		abandon:  make(chan struct{}),
		done:     make(chan struct{}),
	}, nil
}

// Name returns the pipeline name
func (d *Dispatcher) Name() string {
	return d.cfg.Name
}

// State returns the current lifecycle state
func (d *Dispatcher) State() State {
	return State(d.state.Load())
}

// Stats returns a snapshot of the counters
func (d *Dispatcher) Stats() Snapshot {
	return d.stats.snapshot()
}

// Len returns the number of records currently queued
func (d *Dispatcher) Len() int {
	return len(d.queue)
}

// Start launches the consumer. Calling it again, or after Stop, does nothing.
func (d *Dispatcher) Start() {
	if d.state.CompareAndSwap(int32(Created), int32(Running)) {
		go d.run()
	}
}

// Enqueue offers r to the queue and reports whether it was accepted. It is
// permitted while Running or Stopping; in any other state it returns false
// without counting a drop. When the queue is full the configured
// DropPolicy decides. A Block producer still waiting when the dispatcher
// stops accepting gives up at once and counts a drop.
func (d *Dispatcher) Enqueue(r *core.Record) bool {
	if r == nil {
		return false
	}
	d.stateMu.RLock()
	defer d.stateMu.RUnlock()
	if !d.State().accepting() {
		return false
	}
	if cap(d.queue) == 0 {
		d.stats.drop(r.Level())
		return false
	}

	switch d.cfg.Policy {
	case DropNew:
		return d.enqueueDropNew(r)
	case Block:
		return d.enqueueBlock(r)
	default:
		return d.enqueueDropOldest(r)
	}
}

func (d *Dispatcher) enqueueDropNew(r *core.Record) bool {
	select {
	case d.queue <- r:
		d.stats.enqueued.Add(1)
		return true
	default:
		d.stats.drop(r.Level())
		return false
	}
}

func (d *Dispatcher) enqueueBlock(r *core.Record) bool {
	// Fast path without a timer
	select {
	case d.queue <- r:
		d.stats.enqueued.Add(1)
		return true
	default:
	}

	timer := time.NewTimer(d.cfg.BlockTimeout)
	defer timer.Stop()
	select {
	case d.queue <- r:
		d.stats.enqueued.Add(1)
		return true
	case <-timer.C:
		d.stats.drop(r.Level())
		return false
	case <-d.closing:
		d.stats.drop(r.Level())
		return false
	}
}

func (d *Dispatcher) enqueueDropOldest(r *core.Record) bool {
	d.pushMu.Lock()
	defer d.pushMu.Unlock()
	for {
		select {
		case d.queue <- r:
			d.stats.enqueued.Add(1)
			return true
		default:
		}
		// Queue full: evict the oldest. The consumer may win the race for
		// it, in which case there is room anyway.
		select {
		case old := <-d.queue:
			d.stats.drop(old.Level())
		default:
		}
	}
}

// Stop moves the dispatcher to Stopping, lets the consumer drain the queue
// and final-flush, and waits up to timeout (DefaultStopTimeout when
// timeout <= 0). It returns whether every queued record was delivered.
// Records still undelivered at the deadline are discarded and counted as
// lost. Stop is idempotent; later calls return the first result.
func (d *Dispatcher) Stop(timeout time.Duration) bool {
	if timeout <= 0 {
		timeout = DefaultStopTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return d.shutdown(ctx)
}

// Shutdown is Stop bounded by ctx. It returns ErrDrainTimeout if records
// were lost.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	if !d.shutdown(ctx) {
		return fmt.Errorf("pipeline %s: %w", d.cfg.Name, ErrDrainTimeout)
	}
	return nil
}

func (d *Dispatcher) shutdown(ctx context.Context) bool {
	d.stopOnce.Do(func() {
		d.drained = d.stopAndDrain(ctx)
	})
	return d.drained
}

func (d *Dispatcher) stopAndDrain(ctx context.Context) bool {
	if d.state.CompareAndSwap(int32(Created), int32(Stopped)) {
		// The consumer never ran, so the handlers are ours to close
		d.closeHandlers()
		return true
	}
	d.state.CompareAndSwap(int32(Running), int32(Stopping))
	close(d.stop)

	drained := true
	select {
	case <-d.done:
	case <-ctx.Done():
		drained = false
		close(d.abandon)
		// The consumer is stuck in a handler; whatever is still queued
		// will never be delivered
		d.seal()
		d.discardQueued()
	}

	snap := d.stats.snapshot()
	fields := []zap.Field{
		zap.String("pipeline", d.cfg.Name),
		zap.Bool("drained", drained),
		zap.Uint64("enqueued", snap.Enqueued),
		zap.Uint64("delivered", snap.Delivered),
		zap.Uint64("dropped", snap.Dropped),
		zap.Uint64("lost", snap.Lost),
	}
	if !drained {
		d.cfg.Reporter.Report(component, ErrDrainTimeout, fields...)
	}
	d.cfg.Reporter.Info(component, "dispatcher stopped", fields...)
	return drained
}

// seal moves the dispatcher to Stopped. Waiting Block producers are
// released first so the write lock is never held up by a BlockTimeout.
func (d *Dispatcher) seal() {
	d.sealOnce.Do(func() {
		close(d.closing)
		d.stateMu.Lock()
		d.state.Store(int32(Stopped))
		d.stateMu.Unlock()
	})
}

func (d *Dispatcher) discardQueued() {
	for {
		select {
		case <-d.queue:
			d.stats.lost.Add(1)
		default:
			return
		}
	}
}

func (d *Dispatcher) abandoned() bool {
	select {
	case <-d.abandon:
		return true
	default:
		return false
	}
}

// run is the consumer loop. It is the only goroutine that touches the
// handlers while the dispatcher is running.
func (d *Dispatcher) run() {
	defer close(d.done)
	defer d.closeHandlers()

	batch := make([]*core.Record, 0, d.cfg.BatchSize)
	timer := time.NewTimer(d.cfg.FlushInterval)
	defer timer.Stop()

	for {
		select {
		case r := <-d.queue:
			batch = append(batch, r)
			if len(batch) >= d.cfg.BatchSize {
				batch, _ = d.flush(batch)
				timer.Reset(d.cfg.FlushInterval)
			}
		case <-timer.C:
			if len(batch) > 0 {
				batch, _ = d.flush(batch)
			}
			timer.Reset(d.cfg.FlushInterval)
		case <-d.stop:
			d.drain(batch)
			return
		}
	}
}

// drain empties the queue, seals the dispatcher, empties the queue again
// and final-flushes. Producers may still insert during the first pass; the
// second sees every record that was accepted.
func (d *Dispatcher) drain(batch []*core.Record) {
	batch, ok := d.drainQueue(batch)
	if !ok {
		return
	}
	d.seal()
	if batch, ok = d.drainQueue(batch); ok {
		d.flush(batch)
	}
}

// drainQueue receives until the queue is empty, flushing per BatchSize, and
// returns the partial batch. It returns false once the stop is abandoned.
func (d *Dispatcher) drainQueue(batch []*core.Record) ([]*core.Record, bool) {
	for {
		select {
		case r := <-d.queue:
			batch = append(batch, r)
			if len(batch) < d.cfg.BatchSize {
				continue
			}
		default:
			return batch, true
		}
		var ok bool
		if batch, ok = d.flush(batch); !ok {
			return batch, false
		}
	}
}

// flush delivers batch in order and returns it emptied. Once a stop has
// been abandoned the remaining records are counted as lost and flush
// returns false.
func (d *Dispatcher) flush(batch []*core.Record) ([]*core.Record, bool) {
	if len(batch) == 0 {
		return batch, true
	}
	for i, r := range batch {
		if d.abandoned() {
			d.stats.lost.Add(uint64(len(batch) - i))
			clear(batch)
			return batch[:0], false
		}
		d.deliver(r)
		d.stats.delivered.Add(1)
	}
	d.stats.batches.Add(1)
	clear(batch)
	return batch[:0], true
}

// deliver hands r to every handler. Handlers built on handler.Base never
// panic; this guards the consumer against ones that do.
func (d *Dispatcher) deliver(r *core.Record) {
	defer func() {
		if p := recover(); p != nil {
			d.cfg.Reporter.Report(component, fmt.Errorf("%w: %v", handler.ErrEmitPanic, p),
				zap.String("pipeline", d.cfg.Name), zap.Uint64("seq", r.Seq()))
		}
	}()
	d.handlers.Handle(r)
}

func (d *Dispatcher) closeHandlers() {
	if err := d.handlers.Close(); err != nil {
		d.cfg.Reporter.Report(component, err, zap.String("pipeline", d.cfg.Name))
	}
}
