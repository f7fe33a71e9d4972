package logger

import (
	"testing"
	"time"

	"github.com/philipp01105/asynclog/core"
	"github.com/philipp01105/asynclog/diag"
	"github.com/philipp01105/asynclog/dispatcher"
	"github.com/philipp01105/asynclog/handler/handlertest"
)

type discardSink struct{}

func (discardSink) Enqueue(*core.Record) bool { return true }

// BenchmarkInfoNoFields measures record construction without a queue.
func BenchmarkInfoNoFields(b *testing.B) {
	logger := NewBuilder(discardSink{}).
		WithLevel(InfoLevel).
		Build()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		logger.Info("test message")
	}
}

// BenchmarkInfoWith2Fields benchmarks Info() with 2 string fields.
func BenchmarkInfoWith2Fields(b *testing.B) {
	logger := NewBuilder(discardSink{}).
		WithLevel(InfoLevel).
		WithFields(String("service", "api")).
		Build()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		logger.Info("test message", String("key1", "value1"), String("key2", "value2"))
	}
}

// BenchmarkFilteredDebug benchmarks Debug() when level is Info (should be filtered).
// Target: 0 allocs/op
func BenchmarkFilteredDebug(b *testing.B) {
	logger := NewBuilder(discardSink{}).
		WithLevel(InfoLevel).
		Build()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		logger.Debug("debug message", String("key", "value"))
	}
}

// BenchmarkDispatcherParallel logs from many goroutines into one dispatcher.
func BenchmarkDispatcherParallel(b *testing.B) {
	cfg := dispatcher.DefaultConfig()
	cfg.QueueSize = 8192
	cfg.BatchSize = 256
	cfg.Reporter = diag.Nop()
	d, err := dispatcher.New(cfg, handlertest.NewRecorder(handlertest.Options{Level: core.CriticalLevel}))
	if err != nil {
		b.Fatal(err)
	}
	d.Start()
	defer d.Stop(time.Second)

	logger := NewBuilder(d).WithLevel(InfoLevel).Build()

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			logger.Info("parallel message", Int("n", 1))
		}
	})
}
