// Package testutil holds helpers shared by the storage and driver test
// suites.
package testutil

import (
	"log/slog"
	"testing"
)

// NewTestLogger returns a debug-level slog.Logger whose records go through
// t.Log, so driver output shows up next to the failing assertion instead
// of on stderr.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	h := slog.NewTextHandler(tbWriter{tb: t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	return slog.New(h)
}

// tbWriter adapts a testing.TB to io.Writer for the text handler.
type tbWriter struct {
	tb testing.TB
}

func (w tbWriter) Write(p []byte) (int, error) {
	w.tb.Helper()
	w.tb.Log(string(p))
	return len(p), nil
}
