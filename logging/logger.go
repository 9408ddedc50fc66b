// Corelog - Application Logging and Correlation Toolkit
// Copyright 2026 The Corelog Authors
// SPDX-License-Identifier: MIT
// https://github.com/sedgwick-docs/corelog

// Package logging provides centralized zerolog-based logging for web
// applications built on corelog.
//
// The package owns a process-wide logger with an explicit lifecycle:
// configured once at startup via Init, read-only thereafter, and torn down
// at shutdown through the close function Init returns. It provides:
//
//   - Zero-allocation structured logging
//   - JSON output for production, console output for development
//   - Application name and environment stamped on every record
//   - Rolling file sinks alongside the console sink
//   - Correlation ID enrichment on context-aware log calls
//
// # Quick Start
//
//	closeLogs, err := logging.Init(logging.Config{
//	    AppName:   "billing-api",
//	    Level:     "info",
//	    Format:    "json",
//	    Directory: "/var/log/billing-api",
//	})
//	if err != nil {
//	    return err
//	}
//	defer closeLogs()
//
//	logging.Info().Msg("Server starting")
//	logging.Ctx(ctx).Info().Str("user", userID).Msg("Request processed")
//
// # Best Practices
//
// Always terminate log chains with .Msg() or .Send():
//
//	logging.Info().Str("key", "value").Msg("message")  // Correct
//	logging.Info().Str("key", "value")                 // WRONG - log not emitted
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/sedgwick-docs/corelog/correlation"
)

// Config holds logging configuration.
type Config struct {
	// AppName is the application display name stamped on every record
	// as the "app" field and used to derive log file names.
	AppName string

	// Environment is stamped on every record when set
	// (development, staging, production).
	Environment string

	// Level is the minimum log level: trace, debug, info, warn, error,
	// fatal, panic. Default: info
	Level string

	// Format is the console output format: json or console.
	// Default: json (recommended for production)
	Format string

	// Caller includes caller file and line number in logs.
	// Default: false (reduces performance overhead)
	Caller bool

	// Timestamp enables timestamps in log output.
	// Default: true
	Timestamp bool

	// Output is the writer for console output.
	// Default: os.Stderr
	Output io.Writer

	// Directory is where rolling log files are written. Empty disables
	// file sinks; records then go to Output only.
	Directory string

	// MaxSizeMB is the size a log file may reach before rotation.
	// Default: 100
	MaxSizeMB int

	// MaxBackups is how many rotated files to retain. Default: 3
	MaxBackups int

	// MaxAgeDays is how long rotated files are retained. Default: 28
	MaxAgeDays int

	// Compress gzips rotated files.
	Compress bool

	// ErrorFile adds a second rolling sink receiving only error-and-above
	// records, rotated independently of the main file.
	ErrorFile bool
}

// DefaultConfig returns the default logging configuration.
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		Format:     "json",
		Caller:     false,
		Timestamp:  true,
		Output:     os.Stderr,
		MaxSizeMB:  100,
		MaxBackups: 3,
		MaxAgeDays: 28,
	}
}

var (
	// log is the global logger instance.
	log zerolog.Logger

	// mu protects concurrent initialization.
	mu sync.RWMutex
)

//nolint:gochecknoinits // init ensures logging works before explicit Init() call
func init() {
	_, _ = initLocked(DefaultConfig())
}

// Init initializes the global logger with the given configuration. Call it
// early in application startup, typically from main(), and run the returned
// close function at shutdown to flush and close the file sinks. It is safe
// to call multiple times; subsequent calls reconfigure the logger.
func Init(cfg Config) (func() error, error) {
	mu.Lock()
	defer mu.Unlock()
	return initLocked(cfg)
}

// initLocked configures the global logger (must be called with mu held).
func initLocked(cfg Config) (func() error, error) {
	// Apply defaults for empty values
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	if cfg.Format == "" {
		cfg.Format = "json"
	}
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = 100
	}
	if cfg.MaxBackups <= 0 {
		cfg.MaxBackups = 3
	}
	if cfg.MaxAgeDays <= 0 {
		cfg.MaxAgeDays = 28
	}

	zerolog.SetGlobalLevel(parseLevel(cfg.Level))

	// Configure time format and field names for consistency
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.TimestampFieldName = "time"
	zerolog.LevelFieldName = "level"
	zerolog.MessageFieldName = "message"
	zerolog.ErrorFieldName = "error"
	zerolog.CallerFieldName = "caller"

	console := cfg.Output
	if cfg.Format == "console" {
		console = zerolog.ConsoleWriter{
			Out:        cfg.Output,
			TimeFormat: "15:04:05",
			NoColor:    false,
		}
	}

	writers := []io.Writer{console}
	var closers []io.Closer

	if cfg.Directory != "" {
		if err := os.MkdirAll(cfg.Directory, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory %s: %w", cfg.Directory, err)
		}

		base := fileBase(cfg.AppName)
		appFile := &lumberjack.Logger{
			Filename:   filepath.Join(cfg.Directory, base+".log"),
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		writers = append(writers, appFile)
		closers = append(closers, appFile)

		if cfg.ErrorFile {
			errFile := &lumberjack.Logger{
				Filename:   filepath.Join(cfg.Directory, base+".error.log"),
				MaxSize:    cfg.MaxSizeMB,
				MaxBackups: cfg.MaxBackups,
				MaxAge:     cfg.MaxAgeDays,
				Compress:   cfg.Compress,
			}
			writers = append(writers, &levelFilterWriter{w: errFile, min: zerolog.ErrorLevel})
			closers = append(closers, errFile)
		}
	}

	var out io.Writer = writers[0]
	if len(writers) > 1 {
		out = zerolog.MultiLevelWriter(writers...)
	}

	// Correlation IDs attach through the hook on context-aware calls.
	logger := zerolog.New(out).Hook(correlation.Hook{})

	logCtx := logger.With()
	if cfg.Timestamp {
		logCtx = logCtx.Timestamp()
	}
	if cfg.Caller {
		logCtx = logCtx.Caller()
	}
	if cfg.AppName != "" {
		logCtx = logCtx.Str("app", cfg.AppName)
	}
	if cfg.Environment != "" {
		logCtx = logCtx.Str("environment", cfg.Environment)
	}
	log = logCtx.Logger()

	closeFunc := func() error {
		var firstErr error
		for _, c := range closers {
			if err := c.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		return firstErr
	}
	return closeFunc, nil
}

// fileBase derives a log file name from the application display name.
func fileBase(appName string) string {
	if appName == "" {
		return "app"
	}
	base := strings.ToLower(strings.TrimSpace(appName))
	base = strings.ReplaceAll(base, " ", "_")
	return base
}

// levelFilterWriter forwards only records at or above min, so the error
// file stays free of routine traffic.
type levelFilterWriter struct {
	w   io.Writer
	min zerolog.Level
}

func (f *levelFilterWriter) Write(p []byte) (int, error) {
	// Level-less writes (zerolog falls back to Write for NoLevel) pass through.
	return f.w.Write(p)
}

func (f *levelFilterWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level < f.min {
		return len(p), nil
	}
	return f.w.Write(p)
}

// parseLevel converts a string level to zerolog.Level.
func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	case "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// Logger returns the global logger instance.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// SetLogger replaces the global logger instance.
// This is useful for testing or specialized configurations.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func SetLogger(l zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	log = l
}

// With creates a child logger context with additional fields.
//
//	syncLogger := logging.With().Str("component", "session").Logger()
func With() zerolog.Context {
	mu.RLock()
	defer mu.RUnlock()
	return log.With()
}

// WithComponent creates a child logger with a component field.
//
//	storeLogger := logging.WithComponent("session")
func WithComponent(component string) zerolog.Logger {
	return With().Str("component", component).Logger()
}

// Trace starts a new message with trace level.
func Trace() *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return log.Trace()
}

// Debug starts a new message with debug level.
func Debug() *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return log.Debug()
}

// Info starts a new message with info level.
func Info() *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return log.Info()
}

// Warn starts a new message with warning level.
func Warn() *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return log.Warn()
}

// Error starts a new message with error level.
func Error() *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return log.Error()
}

// Fatal starts a new message with fatal level.
// The os.Exit(1) function is called after the message is logged.
func Fatal() *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return log.Fatal()
}

// Panic starts a new message with panic level.
// The message is logged and then panics.
func Panic() *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return log.Panic()
}

// Err starts a new message with error level and adds the error.
func Err(err error) *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return log.Err(err)
}

// GetLevel returns the current global log level.
func GetLevel() zerolog.Level {
	return zerolog.GlobalLevel()
}

// SetLevelString updates the global log level from a string.
func SetLevelString(level string) {
	zerolog.SetGlobalLevel(parseLevel(level))
}

// NewTestLogger creates a logger that writes to the provided writer, with
// the correlation hook installed. Useful for capturing output in tests.
//
//	var buf bytes.Buffer
//	logger := logging.NewTestLogger(&buf)
func NewTestLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).Hook(correlation.Hook{}).With().Timestamp().Logger()
}
