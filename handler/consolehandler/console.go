package consolehandler

import (
	"io"
	"os"

	"github.com/philipp01105/asynclog/core"
	"github.com/philipp01105/asynclog/diag"
	"github.com/philipp01105/asynclog/formatter"
	"github.com/philipp01105/asynclog/handler"
)

// ConsoleConfig holds configuration for console handler
type ConsoleConfig struct {
	// Writer to write to (default: os.Stdout)
	Writer io.Writer
	// Level is the minimum level to write (default: DEBUG)
	Level core.Level
	// Formatter to use (default: formatter.DefaultTemplate)
	Formatter formatter.Formatter
	// Reporter receives write failures (default: diag.Stderr)
	Reporter diag.Reporter
}

// ConsoleHandler writes records to a stream
type ConsoleHandler struct {
	*handler.Base
	writer io.Writer
}

// applyConsoleDefaults fills in zero-value fields with defaults.
func applyConsoleDefaults(cfg *ConsoleConfig) {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
}

// NewConsoleHandler creates a new console handler.
func NewConsoleHandler(cfg ConsoleConfig) *ConsoleHandler {
	applyConsoleDefaults(&cfg)
	h := &ConsoleHandler{writer: cfg.Writer}
	h.Base = handler.NewBase(handler.Options{
		Name:      "console",
		Level:     cfg.Level,
		Formatter: cfg.Formatter,
		Reporter:  cfg.Reporter,
	}, h.emit)
	return h
}

func (h *ConsoleHandler) emit(r *core.Record) error {
	_, err := h.writer.Write(h.Line(r))
	return err
}

// Close flushes the writer if it buffers. The writer itself belongs to the
// caller and stays open.
func (h *ConsoleHandler) Close() error {
	if f, ok := h.writer.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}
