package config

import (
	"context"
	"io"
	"time"

	"go.uber.org/multierr"

	"github.com/philipp01105/asynclog/core"
	"github.com/philipp01105/asynclog/diag"
	"github.com/philipp01105/asynclog/dispatcher"
	"github.com/philipp01105/asynclog/formatter"
	"github.com/philipp01105/asynclog/handler"
	"github.com/philipp01105/asynclog/handler/consolehandler"
	"github.com/philipp01105/asynclog/handler/filehandler"
	"github.com/philipp01105/asynclog/logger"
)

// Pipeline is a started dispatcher with its handlers, plus the settings
// loggers are created with.
type Pipeline struct {
	dispatcher  *dispatcher.Dispatcher
	level       core.Level
	stopTimeout time.Duration
	file        *filehandler.RotatingFileHandler
}

// Build validates c, creates the handlers and starts the dispatcher. The
// console handler writes to stdout; rep receives pipeline diagnostics
// (nil selects diag.Stderr).
func (c *Config) Build(stdout io.Writer, rep diag.Reporter) (*Pipeline, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	rep = diag.OrDefault(rep)

	// Validate guarantees these parse
	level, _ := core.ParseLevel(c.Level)
	consoleLevel, _ := core.ParseLevel(c.ConsoleLevel)
	fileLevel, _ := core.ParseLevel(c.FileLevel)
	policy, _ := dispatcher.ParsePolicy(c.DropPolicy)

	var f formatter.Formatter
	if c.JSON {
		f = formatter.NewJSONFormatter("")
	} else {
		tf, err := formatter.NewTemplateFormatter(c.Format)
		if err != nil {
			return nil, err
		}
		f = tf
	}

	p := &Pipeline{level: level, stopTimeout: c.StopTimeout}
	var handlers []handler.Handler
	if c.Console {
		handlers = append(handlers, consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
			Writer:    stdout,
			Level:     consoleLevel,
			Formatter: f,
			Reporter:  rep,
		}))
	}
	if c.File != "" {
		fh, err := filehandler.NewRotatingFileHandler(filehandler.FileConfig{
			Filename:    c.File,
			MaxBytes:    c.MaxBytes,
			BackupCount: c.BackupCount,
			Level:       fileLevel,
			Formatter:   f,
			Reporter:    rep,
		})
		if err != nil {
			return nil, multierr.Append(err, handler.NewMulti(handlers...).Close())
		}
		p.file = fh
		handlers = append(handlers, fh)
	}

	d, err := dispatcher.New(dispatcher.Config{
		QueueSize:     c.QueueSize,
		BatchSize:     c.BatchSize,
		FlushInterval: c.FlushInterval,
		Policy:        policy,
		BlockTimeout:  c.BlockTimeout,
		Name:          c.Name,
		Reporter:      rep,
	}, handlers...)
	if err != nil {
		return nil, multierr.Append(err, handler.NewMulti(handlers...).Close())
	}
	d.Start()
	p.dispatcher = d
	return p, nil
}

// Logger returns a logger named name at the configured level
func (p *Pipeline) Logger(name string) *logger.Logger {
	return logger.NewBuilder(p.dispatcher).
		WithName(name).
		WithLevel(p.level).
		Build()
}

// Dispatcher returns the running dispatcher
func (p *Pipeline) Dispatcher() *dispatcher.Dispatcher {
	return p.dispatcher
}

// File returns the rotating file handler, or nil when no file is configured
func (p *Pipeline) File() *filehandler.RotatingFileHandler {
	return p.file
}

// Stop drains the pipeline within the configured stop timeout and reports
// whether nothing was lost.
func (p *Pipeline) Stop() bool {
	return p.dispatcher.Stop(p.stopTimeout)
}

// Shutdown drains the pipeline within ctx; see dispatcher.Shutdown.
func (p *Pipeline) Shutdown(ctx context.Context) error {
	return p.dispatcher.Shutdown(ctx)
}
