// Package config builds a complete pipeline from plain settings read from
// the environment or the command line. The core packages never read
// either; this is the layer programs use to wire them up.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/philipp01105/asynclog/core"
	"github.com/philipp01105/asynclog/dispatcher"
	"github.com/philipp01105/asynclog/formatter"
)

// EnvPrefix is prepended to every environment variable name
const EnvPrefix = "ASYNCLOG_"

// DefaultFormat is the console and file template used when none is set
const DefaultFormat = "{asctime} [{level}] {name}: {msg} {meta}"

// Config holds the settings of one pipeline: a console handler, an
// optional rotating file handler and the dispatcher in front of them.
type Config struct {
	// Name identifies the pipeline in diagnostics; empty picks a random UUID
	Name string `env:"NAME"`
	// Level is the minimum level of loggers created by the pipeline
	Level string `env:"LEVEL" envDefault:"debug"`
	// Format is the line template; ignored when JSON is set
	Format string `env:"FORMAT" envDefault:"{asctime} [{level}] {name}: {msg} {meta}"`
	// JSON switches both handlers to one JSON object per line
	JSON bool `env:"JSON"`

	Console      bool   `env:"CONSOLE" envDefault:"true"`
	ConsoleLevel string `env:"CONSOLE_LEVEL" envDefault:"debug"`

	// File enables the rotating file handler when non-empty
	File        string `env:"FILE"`
	FileLevel   string `env:"FILE_LEVEL" envDefault:"debug"`
	MaxBytes    int64  `env:"MAX_BYTES" envDefault:"10485760"`
	BackupCount int    `env:"BACKUP_COUNT" envDefault:"3"`

	QueueSize     int           `env:"QUEUE_SIZE" envDefault:"1000"`
	BatchSize     int           `env:"BATCH_SIZE" envDefault:"50"`
	FlushInterval time.Duration `env:"FLUSH_INTERVAL" envDefault:"500ms"`
	DropPolicy    string        `env:"DROP_POLICY" envDefault:"drop_oldest"`
	BlockTimeout  time.Duration `env:"BLOCK_TIMEOUT" envDefault:"100ms"`
	StopTimeout   time.Duration `env:"STOP_TIMEOUT" envDefault:"2s"`
}

// Default returns the configuration FromEnv yields with an empty
// environment.
func Default() *Config {
	cfg, err := parse(map[string]string{})
	if err != nil {
		// The defaults are constants; they always parse
		panic(err)
	}
	return cfg
}

// FromEnv reads ASYNCLOG_* variables and validates the result.
func FromEnv() (*Config, error) {
	return fromEnvironment(nil)
}

// fromEnvironment is FromEnv with an explicit environment; nil reads the
// process environment.
func fromEnvironment(environ map[string]string) (*Config, error) {
	cfg, err := parse(environ)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parse(environ map[string]string) (*Config, error) {
	var cfg Config
	opts := env.Options{Prefix: EnvPrefix, Environment: environ}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("%w: %s", core.ErrInvalidConfig, err.Error())
	}
	return &cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var problems []string

	for _, lvl := range []struct{ name, value string }{
		{"level", c.Level},
		{"console level", c.ConsoleLevel},
		{"file level", c.FileLevel},
	} {
		if _, err := core.ParseLevel(lvl.value); err != nil {
			problems = append(problems, fmt.Sprintf("%s %q is not a level", lvl.name, lvl.value))
		}
	}
	if _, err := dispatcher.ParsePolicy(c.DropPolicy); err != nil {
		problems = append(problems, fmt.Sprintf("drop policy %q is not one of drop_oldest, drop_new, block", c.DropPolicy))
	}
	if !c.JSON {
		if _, err := formatter.NewTemplateFormatter(c.Format); err != nil {
			problems = append(problems, fmt.Sprintf("format %q does not parse", c.Format))
		}
	}
	if c.MaxBytes < 0 {
		problems = append(problems, "max bytes must not be negative")
	}
	if c.BackupCount < 0 {
		problems = append(problems, "backup count must not be negative")
	}
	if c.QueueSize < 0 {
		problems = append(problems, "queue size must not be negative")
	}
	if c.BatchSize <= 0 {
		problems = append(problems, "batch size must be positive")
	}
	if c.FlushInterval <= 0 {
		problems = append(problems, "flush interval must be positive")
	}
	if c.BlockTimeout < 0 {
		problems = append(problems, "block timeout must not be negative")
	}
	if c.StopTimeout < 0 {
		problems = append(problems, "stop timeout must not be negative")
	}
	if !c.Console && c.File == "" {
		problems = append(problems, "no handler enabled: set console or file")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", core.ErrInvalidConfig, strings.Join(problems, ", "))
	}
	return nil
}
