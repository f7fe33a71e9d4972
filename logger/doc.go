// Package logger is the producer-side API of asynclog.
//
// A Logger is immutable after construction: its name, level, default
// fields and the Enqueuer it feeds are set once via the Builder. This
// makes Logger safe for concurrent use without any locking on the read
// path. Many loggers normally share one dispatcher:
//
//	d, _ := dispatcher.New(dispatcher.DefaultConfig(), console, file)
//	d.Start()
//	defer d.Stop(2 * time.Second)
//
//	log := logger.NewBuilder(d).
//	    WithName("MyApp").
//	    WithLevel(logger.InfoLevel).
//	    Build()
//
//	log.Info("ready", logger.Int("port", 8080))
//
// Child loggers are derived with With (extra default fields) and Named
// (another name); both share the parent's dispatcher.
//
// Level checks happen before any allocation, so filtered-out messages
// cost a single integer comparison. Log reports whether the record was
// accepted; the level methods discard that result.
//
// There is no package-level default logger. NewSlogHandler bridges
// log/slog onto a Logger for code that is written against slog.
package logger
