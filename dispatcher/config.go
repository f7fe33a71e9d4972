package dispatcher

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/philipp01105/asynclog/core"
	"github.com/philipp01105/asynclog/diag"
)

const (
	// DefaultQueueSize is the queue capacity used by DefaultConfig
	DefaultQueueSize = 1000
	// DefaultBatchSize is the flush size used by DefaultConfig
	DefaultBatchSize = 50
	// DefaultFlushInterval is the flush period used by DefaultConfig
	DefaultFlushInterval = 500 * time.Millisecond
	// DefaultBlockTimeout bounds the wait of the Block policy
	DefaultBlockTimeout = 100 * time.Millisecond
	// DefaultStopTimeout is used by Stop when called with a non-positive timeout
	DefaultStopTimeout = 2 * time.Second
)

// Config holds the dispatcher settings
type Config struct {
	// QueueSize is the queue capacity. Zero is allowed and rejects every record.
	QueueSize int
	// BatchSize is the number of records that triggers a flush
	BatchSize int
	// FlushInterval is the longest a partial batch waits before it is flushed
	FlushInterval time.Duration
	// Policy applies when the queue is full
	Policy DropPolicy
	// BlockTimeout is how long Enqueue waits under the Block policy
	BlockTimeout time.Duration
	// Name identifies the pipeline in diagnostics (default: random UUID)
	Name string
	// Reporter receives shutdown summaries (default: diag.Stderr)
	Reporter diag.Reporter
}

// DefaultConfig returns a Config with every field set to its default
func DefaultConfig() Config {
	return Config{
		QueueSize:     DefaultQueueSize,
		BatchSize:     DefaultBatchSize,
		FlushInterval: DefaultFlushInterval,
		Policy:        DropOldest,
		BlockTimeout:  DefaultBlockTimeout,
	}
}

func (c *Config) validate() error {
	if c.QueueSize < 0 {
		return fmt.Errorf("%w: queue size must not be negative, got %d", core.ErrInvalidConfig, c.QueueSize)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("%w: batch size must be positive, got %d", core.ErrInvalidConfig, c.BatchSize)
	}
	if c.FlushInterval <= 0 {
		return fmt.Errorf("%w: flush interval must be positive, got %s", core.ErrInvalidConfig, c.FlushInterval)
	}
	if !c.Policy.valid() {
		return fmt.Errorf("%w: unknown drop policy %d", core.ErrInvalidConfig, int(c.Policy))
	}
	if c.BlockTimeout < 0 {
		return fmt.Errorf("%w: block timeout must not be negative, got %s", core.ErrInvalidConfig, c.BlockTimeout)
	}
	return nil
}

// applyDefaults fills the fields that have no meaningful zero value
func (c *Config) applyDefaults() {
	if c.Policy == Block && c.BlockTimeout == 0 {
		c.BlockTimeout = DefaultBlockTimeout
	}
	if c.Name == "" {
		c.Name = uuid.NewString()
	}
	c.Reporter = diag.OrDefault(c.Reporter)
}
