package logger_test

import (
	"log/slog"
	"os"
	"time"

	"github.com/philipp01105/asynclog/diag"
	"github.com/philipp01105/asynclog/dispatcher"
	"github.com/philipp01105/asynclog/formatter"
	"github.com/philipp01105/asynclog/handler/consolehandler"
	"github.com/philipp01105/asynclog/logger"
)

func newPipeline() *dispatcher.Dispatcher {
	console := consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
		Writer:    os.Stdout,
		Formatter: formatter.MustTemplateFormatter("[{level}] {name}: {msg} {meta}"),
	})
	cfg := dispatcher.DefaultConfig()
	cfg.Reporter = diag.Nop()
	d, err := dispatcher.New(cfg, console)
	if err != nil {
		panic(err)
	}
	d.Start()
	return d
}

// Create a Logger with the Builder and share its dispatcher.
func ExampleNewBuilder() {
	d := newPipeline()

	log := logger.NewBuilder(d).
		WithName("api").
		WithLevel(logger.InfoLevel).
		WithFields(logger.String("service", "users")).
		Build()

	log.Debug("not shown")
	log.Info("ready", logger.Int("port", 8080))

	d.Stop(2 * time.Second)
	// Output:
	// [INFO] api: ready service=users port=8080
}

// Use With to create a child logger with persistent context fields.
func ExampleLogger_With() {
	d := newPipeline()
	log := logger.NewBuilder(d).WithName("http").Build()

	reqLog := log.With(
		logger.String("request_id", "req-12345"),
		logger.String("method", "GET"),
	)

	reqLog.Info("Processing request", logger.String("path", "/api/users"))
	reqLog.Info("Request completed", logger.Int("status", 200))

	d.Stop(2 * time.Second)
	// Output:
	// [INFO] http: Processing request request_id=req-12345 method=GET path=/api/users
	// [INFO] http: Request completed request_id=req-12345 method=GET status=200
}

// Route log/slog output through the pipeline.
func ExampleNewSlogHandler() {
	d := newPipeline()
	slogger := slog.New(logger.NewSlogHandler(logger.NewBuilder(d).WithName("slog").Build()))

	slogger.Warn("cache miss", "key", "user:7", slog.Group("cache", slog.Int("size", 128)))

	d.Stop(2 * time.Second)
	// Output:
	// [WARNING] slog: cache miss key=user:7 cache.size=128
}
