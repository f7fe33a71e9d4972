package filehandler

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/philipp01105/asynclog/core"
	"github.com/philipp01105/asynclog/diag"
	"github.com/philipp01105/asynclog/formatter"
	"github.com/philipp01105/asynclog/handler"
)

// ErrClosed is returned by emit after Close.
var ErrClosed = errors.New("file handler closed")

// rename is replaced in tests to inject rotation failures
var rename = os.Rename

// RotationError describes a filesystem failure during rotation.
type RotationError struct {
	// Op is the failed step: close, rename or open
	Op string
	// Path is the file the step operated on
	Path string
	Err  error
}

func (e *RotationError) Error() string {
	return fmt.Sprintf("rotate %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *RotationError) Unwrap() error {
	return e.Err
}

// sizeTrackingWriter wraps an io.Writer and tracks total bytes written
type sizeTrackingWriter struct {
	w       io.Writer
	written int64
}

func (s *sizeTrackingWriter) Write(p []byte) (n int, err error) {
	n, err = s.w.Write(p)
	s.written += int64(n)
	return
}

func (s *sizeTrackingWriter) reset(w io.Writer, size int64) {
	s.w = w
	s.written = size
}

// FileConfig holds configuration for file handler
type FileConfig struct {
	// Filename is the path to the active log file
	Filename string
	// MaxBytes is the size at which the file is rotated (0 = never rotate)
	MaxBytes int64
	// BackupCount is the number of numbered backups to keep (0 = truncate in place)
	BackupCount int
	// Level is the minimum level to write (default: DEBUG)
	Level core.Level
	// Formatter to use (default: formatter.DefaultTemplate)
	Formatter formatter.Formatter
	// Reporter receives write and rotation failures (default: diag.Stderr)
	Reporter diag.Reporter
}

// RotatingFileHandler writes records to a file with size-based rotation.
// The open file is owned exclusively by the handler and replaced on every
// rotation.
type RotatingFileHandler struct {
	*handler.Base
	filename    string
	maxBytes    int64
	backupCount int
	file        *os.File
	sw          sizeTrackingWriter
	closed      bool

	// A failed shift resumes at resumeAt so finished renames are not repeated
	resuming bool
	resumeAt int

	rotations atomic.Uint64
	failures  atomic.Uint64
}

// NewRotatingFileHandler creates the parent directory if needed and opens
// cfg.Filename for append.
func NewRotatingFileHandler(cfg FileConfig) (*RotatingFileHandler, error) {
	if cfg.Filename == "" {
		return nil, fmt.Errorf("%w: filename is required", core.ErrInvalidConfig)
	}
	if cfg.MaxBytes < 0 {
		return nil, fmt.Errorf("%w: max bytes must not be negative, got %d", core.ErrInvalidConfig, cfg.MaxBytes)
	}
	if cfg.BackupCount < 0 {
		return nil, fmt.Errorf("%w: backup count must not be negative, got %d", core.ErrInvalidConfig, cfg.BackupCount)
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(cfg.Filename), 0755); err != nil {
		return nil, err
	}

	h := &RotatingFileHandler{
		filename:    cfg.Filename,
		maxBytes:    cfg.MaxBytes,
		backupCount: cfg.BackupCount,
	}
	h.Base = handler.NewBase(handler.Options{
		Name:      "file:" + filepath.Base(cfg.Filename),
		Level:     cfg.Level,
		Formatter: cfg.Formatter,
		Reporter:  cfg.Reporter,
	}, h.emit)

	if err := h.open(false); err != nil {
		return nil, err
	}
	return h, nil
}

// Filename returns the path of the active file
func (h *RotatingFileHandler) Filename() string {
	return h.filename
}

// Size returns the current size of the active file as tracked by the handler
func (h *RotatingFileHandler) Size() int64 {
	return h.sw.written
}

// Rotations returns the number of completed rotations
func (h *RotatingFileHandler) Rotations() uint64 {
	return h.rotations.Load()
}

// RotationFailures returns the number of failed rotation attempts
func (h *RotatingFileHandler) RotationFailures() uint64 {
	return h.failures.Load()
}

func (h *RotatingFileHandler) emit(r *core.Record) error {
	if h.closed {
		return ErrClosed
	}
	// A failed rotation may have left no stream behind
	if h.file == nil {
		if err := h.open(false); err != nil {
			return err
		}
	}

	if _, err := h.sw.Write(h.Line(r)); err != nil {
		return err
	}

	if h.maxBytes > 0 && h.sw.written >= h.maxBytes {
		if err := h.rotate(); err != nil {
			h.failures.Add(1)
			h.Reporter().Report(h.Name(), err, zap.String("path", h.filename), zap.Uint64("seq", r.Seq()))
		}
	}
	return nil
}

// open (re)opens the active file for append, optionally truncating it.
func (h *RotatingFileHandler) open(truncate bool) error {
	flag := os.O_CREATE | os.O_WRONLY | os.O_APPEND
	if truncate {
		flag |= os.O_TRUNC
	}
	file, err := os.OpenFile(h.filename, flag, 0644)
	if err != nil {
		return err
	}

	// Get file size
	info, err := file.Stat()
	if err != nil {
		return multierr.Append(err, file.Close())
	}

	h.file = file
	h.sw.reset(file, info.Size())
	return nil
}

// backupName returns the path of the i-th backup
func (h *RotatingFileHandler) backupName(i int) string {
	return h.filename + "." + strconv.Itoa(i)
}

// rotate closes the active file, shifts the numbered backups and reopens
// the active file empty. On failure the active file is reopened for append
// so writing can continue and the next oversized write retries.
func (h *RotatingFileHandler) rotate() error {
	if err := h.file.Close(); err != nil {
		h.file = nil
		return h.reopenAfter(&RotationError{Op: "close", Path: h.filename, Err: err})
	}
	h.file = nil

	if h.backupCount == 0 {
		if err := h.open(true); err != nil {
			return h.reopenAfter(&RotationError{Op: "open", Path: h.filename, Err: err})
		}
		h.rotations.Add(1)
		return nil
	}

	// Shift backups oldest first; renaming onto P.N discards it
	from := h.backupCount - 1
	if h.resuming {
		from = h.resumeAt
	}
	for i := from; i >= 1; i-- {
		src := h.backupName(i)
		if !exists(src) {
			continue
		}
		if err := rename(src, h.backupName(i+1)); err != nil {
			h.resuming, h.resumeAt = true, i
			return h.reopenAfter(&RotationError{Op: "rename", Path: src, Err: err})
		}
	}

	if exists(h.filename) {
		if err := rename(h.filename, h.backupName(1)); err != nil {
			h.resuming, h.resumeAt = true, 0
			return h.reopenAfter(&RotationError{Op: "rename", Path: h.filename, Err: err})
		}
	}
	h.resuming = false

	if err := h.open(false); err != nil {
		return h.reopenAfter(&RotationError{Op: "open", Path: h.filename, Err: err})
	}
	h.rotations.Add(1)
	return nil
}

// reopenAfter reopens the active file after a failed rotation step and returns
// the rotation error, joined with the reopen error if that failed too.
func (h *RotatingFileHandler) reopenAfter(rotErr error) error {
	if h.file != nil {
		return rotErr
	}
	if err := h.open(false); err != nil {
		return multierr.Append(rotErr, &RotationError{Op: "open", Path: h.filename, Err: err})
	}
	return rotErr
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return !errors.Is(err, fs.ErrNotExist)
}

// Close syncs and closes the active file. It is safe to call more than once.
func (h *RotatingFileHandler) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	if h.file == nil {
		return nil
	}
	file := h.file
	h.file = nil
	return multierr.Combine(file.Sync(), file.Close())
}
