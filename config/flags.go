package config

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	levelNames  = []string{"debug", "info", "warning", "error", "critical"}
	policyNames = []string{"drop_oldest", "drop_new", "block"}
)

// RegisterFlags adds one flag per setting to flags. Current values of c
// become the flag defaults, so flags override whatever FromEnv loaded.
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	levels := strings.Join(levelNames, ", ")

	flags.StringVar(&c.Name, "name", c.Name, "pipeline name used in diagnostics")
	flags.StringVar(&c.Level, "log-level", c.Level, fmt.Sprintf("logger level, one of: %s", levels))
	flags.StringVar(&c.Format, "log-format", c.Format, "line template using {asctime} {level} {name} {msg} {meta}")
	flags.BoolVar(&c.JSON, "json", c.JSON, "write one JSON object per line")

	flags.BoolVar(&c.Console, "console", c.Console, "write to stdout")
	flags.StringVar(&c.ConsoleLevel, "console-level", c.ConsoleLevel, "console handler level")

	flags.StringVar(&c.File, "log-file", c.File, "path of the rotating log file (empty disables it)")
	flags.StringVar(&c.FileLevel, "file-level", c.FileLevel, "file handler level")
	flags.Int64Var(&c.MaxBytes, "max-bytes", c.MaxBytes, "rotate the file once it reaches this size (0 never rotates)")
	flags.IntVar(&c.BackupCount, "backup-count", c.BackupCount, "number of rotated backups to keep")

	flags.IntVar(&c.QueueSize, "queue-size", c.QueueSize, "capacity of the dispatcher queue")
	flags.IntVar(&c.BatchSize, "batch-size", c.BatchSize, "records per flush")
	flags.DurationVar(&c.FlushInterval, "flush-interval", c.FlushInterval, "longest wait before a partial batch is flushed")
	flags.StringVar(&c.DropPolicy, "drop-policy", c.DropPolicy,
		fmt.Sprintf("behavior when the queue is full, one of: %s", strings.Join(policyNames, ", ")))
	flags.DurationVar(&c.BlockTimeout, "block-timeout", c.BlockTimeout, "how long the block policy waits for room")
	flags.DurationVar(&c.StopTimeout, "stop-timeout", c.StopTimeout, "how long stopping waits for the queue to drain")
}

// RegisterCompletions registers shell completions for the enumerated flags.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	for _, name := range []string{"log-level", "console-level", "file-level"} {
		err := cmd.RegisterFlagCompletionFunc(name,
			cobra.FixedCompletions(levelNames, cobra.ShellCompDirectiveNoFileComp))
		if err != nil {
			return fmt.Errorf("registering %s completion: %w", name, err)
		}
	}

	err := cmd.RegisterFlagCompletionFunc("drop-policy",
		cobra.FixedCompletions(policyNames, cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering drop-policy completion: %w", err)
	}
	return nil
}
