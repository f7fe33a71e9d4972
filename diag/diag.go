// Package diag is the last-resort sink for failures inside the pipeline
// itself: a handler that cannot write, a rotation that cannot rename, a
// shutdown that could not drain. Those failures must never travel back into
// producers or the consumer loop, so they are reported here instead.
package diag

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Reporter receives pipeline failures. Implementations must be safe for
// concurrent use; handlers and dispatchers share one Reporter.
type Reporter interface {
	// Report records a failure in component. Extra fields add context such
	// as the pipeline name or the record sequence number.
	Report(component string, err error, fields ...zap.Field)

	// Info records a non-failure lifecycle event, e.g. a shutdown summary.
	Info(component, msg string, fields ...zap.Field)
}

type zapReporter struct {
	log *zap.Logger
}

// NewZap returns a Reporter backed by l. A nil logger yields Nop.
func NewZap(l *zap.Logger) Reporter {
	if l == nil {
		return Nop()
	}
	return &zapReporter{log: l.Named("asynclog")}
}

// Stderr returns a Reporter that writes human-readable lines to os.Stderr.
func Stderr() Reporter {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(cfg),
		zapcore.Lock(os.Stderr),
		zapcore.InfoLevel,
	)
	return NewZap(zap.New(core))
}

func (r *zapReporter) Report(component string, err error, fields ...zap.Field) {
	if ce := r.log.Check(zapcore.ErrorLevel, "pipeline failure"); ce != nil {
		ce.Write(append([]zap.Field{zap.String("component", component), zap.Error(err)}, fields...)...)
	}
}

func (r *zapReporter) Info(component, msg string, fields ...zap.Field) {
	if ce := r.log.Check(zapcore.InfoLevel, msg); ce != nil {
		ce.Write(append([]zap.Field{zap.String("component", component)}, fields...)...)
	}
}

type nopReporter struct{}

// Nop returns a Reporter that discards everything.
func Nop() Reporter { return nopReporter{} }

func (nopReporter) Report(string, error, ...zap.Field) {}
func (nopReporter) Info(string, string, ...zap.Field)  {}

// OrDefault returns r, or Stderr when r is nil.
func OrDefault(r Reporter) Reporter {
	if r == nil {
		return defaultReporter
	}
	return r
}

var defaultReporter = Stderr()
