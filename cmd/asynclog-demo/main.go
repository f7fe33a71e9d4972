// Command asynclog-demo drives concurrent producers through a pipeline and
// reports what the dispatcher accepted, delivered, dropped and lost.
//
// # Usage
//
//	asynclog-demo [flags]
//
// Every pipeline setting can also be given as an ASYNCLOG_* environment
// variable; flags win over the environment.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/philipp01105/asynclog/config"
	"github.com/philipp01105/asynclog/diag"
	"github.com/philipp01105/asynclog/logger"
)

type demoFlags struct {
	workers  int
	messages int
	delay    time.Duration
	logger   string
}

func (f *demoFlags) addFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.IntVar(&f.workers, "workers", 3, "number of concurrent producers")
	flags.IntVar(&f.messages, "messages", 50, "messages per producer")
	flags.DurationVar(&f.delay, "delay", 10*time.Millisecond, "pause between two messages of one producer")
	flags.StringVar(&f.logger, "logger-name", "MyApp", "name of the demo logger")
}

func newRootCommand(stdout, stderr io.Writer) (*cobra.Command, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}
	flags := &demoFlags{}

	cmd := &cobra.Command{
		Use:           "asynclog-demo",
		Short:         "Log from concurrent producers through an asynchronous pipeline",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if flags.workers < 1 || flags.messages < 0 {
				return fmt.Errorf("--workers must be positive and --messages not negative")
			}
			return run(cmd.Context(), cfg, flags, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cfg.RegisterFlags(cmd.Flags())
	if err := cfg.RegisterCompletions(cmd); err != nil {
		return nil, err
	}
	flags.addFlags(cmd)
	return cmd, nil
}

func run(ctx context.Context, cfg *config.Config, flags *demoFlags, stdout, stderr io.Writer) error {
	pipeline, err := cfg.Build(stdout, diag.Nop())
	if err != nil {
		return err
	}
	log := pipeline.Logger(flags.logger)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < flags.workers; w++ {
		g.Go(func() error {
			return produce(ctx, log, w, flags.messages, flags.delay)
		})
	}
	waitErr := g.Wait()

	drained := pipeline.Stop()
	stats := pipeline.Dispatcher().Stats()
	fmt.Fprintf(stderr, "Demo complete. enqueued=%d delivered=%d dropped=%d lost=%d drained=%t\n",
		stats.Enqueued, stats.Delivered, stats.Dropped, stats.Lost, drained)
	if fh := pipeline.File(); fh != nil {
		fmt.Fprintf(stderr, "File %s: %d bytes, %d rotations\n", fh.Filename(), fh.Size(), fh.Rotations())
	}
	return waitErr
}

func produce(ctx context.Context, log *logger.Logger, worker, messages int, delay time.Duration) error {
	wlog := log.With(logger.Int("worker", worker))
	for i := 0; i < messages; i++ {
		wlog.Info(fmt.Sprintf("message %d from worker %d", i, worker), logger.Int("i", i))
		if delay <= 0 {
			continue
		}
		select {
		case <-ctx.Done():
			wlog.Warning("interrupted", logger.Int("sent", i+1))
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd, err := newRootCommand(os.Stdout, os.Stderr)
	if err == nil {
		err = cmd.ExecuteContext(ctx)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "asynclog-demo: %v\n", err)
		stop()
		os.Exit(1)
	}
}
