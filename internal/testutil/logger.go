// Package testutil provides shared helpers for sqlscore's tests.
package testutil

import (
	"log/slog"
	"strings"
	"testing"
)

// NewTestLogger returns a slog.Logger routed through t.Log, so runner and
// splitter debug output surfaces only on failure or under -v.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(logSink{t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

// logSink adapts testing.TB to io.Writer. t.Log adds its own newline, so
// the handler's trailing one is dropped.
type logSink struct {
	tb testing.TB
}

func (s logSink) Write(p []byte) (int, error) {
	s.tb.Helper()
	s.tb.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
