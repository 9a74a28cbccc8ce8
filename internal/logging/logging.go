// Package logging sets up the application's structured loggers.
package logging

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

var structuredLogger *slog.Logger
var fileCloser io.Closer

// FileConfig describes the optional rotating log file output.
type FileConfig struct {
	Enabled bool
	Path    string
	MaxSize int // megabytes
	MaxAge  int // days
}

// Init initializes the logging system. Structured JSON logs go to stdout
// and, when enabled, to a size-rotated log file.
func Init(debug bool, file FileConfig) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	var out io.Writer = os.Stdout
	if file.Enabled && file.Path != "" {
		rotator := &lumberjack.Logger{
			Filename: file.Path,
			MaxSize:  file.MaxSize,
			MaxAge:   file.MaxAge,
			Compress: true,
		}
		fileCloser = rotator
		out = io.MultiWriter(os.Stdout, rotator)
	}

	structuredLogger = slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(structuredLogger)
}

// ForService returns a child logger tagged with the given service name.
// Returns the default logger if Init has not been called, so packages can
// log safely in tests.
func ForService(serviceName string) *slog.Logger {
	if structuredLogger == nil {
		return slog.Default().With("service", serviceName)
	}
	return structuredLogger.With("service", serviceName)
}

// Close flushes and closes the log file output, if any.
func Close() error {
	if fileCloser != nil {
		return fileCloser.Close()
	}
	return nil
}

// --- Convenience functions using the default logger ---

// Debug logs a debug message using the default slog logger.
func Debug(msg string, args ...any) {
	slog.Debug(msg, args...)
}

// Info logs an info message using the default slog logger.
func Info(msg string, args ...any) {
	slog.Info(msg, args...)
}

// Warn logs a warning message using the default slog logger.
func Warn(msg string, args ...any) {
	slog.Warn(msg, args...)
}

// Error logs an error message using the default slog logger.
func Error(msg string, args ...any) {
	slog.Error(msg, args...)
}
