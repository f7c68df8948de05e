package sharepoint

import (
	"bytes"
	"log"
	"log/slog"
	"strings"
	"testing"
)

func TestWrapStdLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := WrapStdLogger(log.New(&buf, "", 0))

	logger.Info("request completed", "status", 200, "path", "/_api/web")

	got := buf.String()
	if !strings.Contains(got, "[INFO] request completed") {
		t.Errorf("missing level and message: %q", got)
	}
	if !strings.Contains(got, "status=200") || !strings.Contains(got, "path=/_api/web") {
		t.Errorf("missing key-value pairs: %q", got)
	}
}

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogAdapter(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	logger.Debug("sending request", "method", "GET")
	logger.Error("request failed", "status", 503)

	got := buf.String()
	if !strings.Contains(got, "sending request") || !strings.Contains(got, "method=GET") {
		t.Errorf("debug line not recorded: %q", got)
	}
	if !strings.Contains(got, "level=ERROR") {
		t.Errorf("error level not recorded: %q", got)
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	// Must not panic with nil receivers or odd argument counts.
	NopLogger{}.Debug("x")
	NopLogger{}.Warn("y", "and", "odd", "trailing")
}

func TestFormatArgs(t *testing.T) {
	if got := formatArgs(nil); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
	if got := formatArgs([]any{"k", "v"}); got != " | k=v" {
		t.Errorf("unexpected format: %q", got)
	}
}
