// Package dispatcher decouples producers from handlers.
//
// A Dispatcher owns one bounded queue and one consumer goroutine. Producers
// call Enqueue from any goroutine; the consumer collects records into
// batches and flushes a batch when it reaches BatchSize or when
// FlushInterval elapses, whichever comes first. Because there is a single
// queue and a single consumer, every handler sees records in the order
// they were accepted.
//
// When the queue is full the DropPolicy decides what gives:
//
//	DropOldest  evict the oldest queued record, accept the new one
//	DropNew     reject the new record
//	Block       wait up to BlockTimeout, then reject
//
// Every discarded record is counted per level in Stats. Records that were
// accepted but could not be delivered before a stop timed out are counted
// separately as lost.
//
// Lifecycle:
//
//	d, err := dispatcher.New(dispatcher.DefaultConfig(), console, file)
//	if err != nil {
//		return err
//	}
//	d.Start()
//	defer d.Stop(2 * time.Second)
package dispatcher
