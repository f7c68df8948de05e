package sharepoint

import (
	"fmt"
	"log"
	"log/slog"
)

// StructuredLogger provides structured logging support for the client.
// It is compatible with Go's slog package and similar structured logging
// libraries. Configure it with WithLogger:
//
//	client, _ := sharepoint.New(siteURL,
//	    sharepoint.WithLogger(sharepoint.NewSlogAdapter(slog.Default())),
//	)
type StructuredLogger interface {
	// Debug logs a debug-level message with optional key-value pairs.
	Debug(msg string, args ...any)
	// Info logs an info-level message with optional key-value pairs.
	Info(msg string, args ...any)
	// Warn logs a warning-level message with optional key-value pairs.
	Warn(msg string, args ...any)
	// Error logs an error-level message with optional key-value pairs.
	Error(msg string, args ...any)
}

// slogAdapter adapts *slog.Logger to the StructuredLogger interface.
type slogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter wraps a *slog.Logger to implement StructuredLogger.
func NewSlogAdapter(logger *slog.Logger) StructuredLogger {
	return &slogAdapter{logger: logger}
}

func (a *slogAdapter) Debug(msg string, args ...any) { a.logger.Debug(msg, args...) }
func (a *slogAdapter) Info(msg string, args ...any)  { a.logger.Info(msg, args...) }
func (a *slogAdapter) Warn(msg string, args ...any)  { a.logger.Warn(msg, args...) }
func (a *slogAdapter) Error(msg string, args ...any) { a.logger.Error(msg, args...) }

// WrapStdLogger wraps a standard library *log.Logger to implement
// StructuredLogger. All messages are logged with a level prefix and
// formatted key-value pairs appended.
func WrapStdLogger(l *log.Logger) StructuredLogger {
	return &stdLoggerWrapper{logger: l}
}

type stdLoggerWrapper struct {
	logger *log.Logger
}

func (w *stdLoggerWrapper) Debug(msg string, args ...any) {
	w.logger.Printf("[DEBUG] " + msg + formatArgs(args))
}

func (w *stdLoggerWrapper) Info(msg string, args ...any) {
	w.logger.Printf("[INFO] " + msg + formatArgs(args))
}

func (w *stdLoggerWrapper) Warn(msg string, args ...any) {
	w.logger.Printf("[WARN] " + msg + formatArgs(args))
}

func (w *stdLoggerWrapper) Error(msg string, args ...any) {
	w.logger.Printf("[ERROR] " + msg + formatArgs(args))
}

// formatArgs formats structured logging arguments as a string.
func formatArgs(args []any) string {
	if len(args) == 0 {
		return ""
	}
	result := " |"
	for i := 0; i < len(args)-1; i += 2 {
		result += fmt.Sprintf(" %v=%v", args[i], args[i+1])
	}
	return result
}

// NopLogger discards all log messages. It is the default when no logger is
// configured.
type NopLogger struct{}

func (NopLogger) Debug(msg string, args ...any) {}
func (NopLogger) Info(msg string, args ...any)  {}
func (NopLogger) Warn(msg string, args ...any)  {}
func (NopLogger) Error(msg string, args ...any) {}

var _ StructuredLogger = NopLogger{}
var _ StructuredLogger = (*slogAdapter)(nil)
var _ StructuredLogger = (*stdLoggerWrapper)(nil)
