package slogx

import (
	"log/slog"
	"testing"
)

type TestWriter struct {
	t testing.TB
}

func (w *TestWriter) Write(p []byte) (n int, err error) {
	n = len(p)
	if n > 0 && p[n-1] == '\n' {
		p = p[:n-1]
	}

	w.t.Logf("%s", p)

	return n, nil
}

// NewTestLogger routes debug level records to t.Logf without timestamps.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()

	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}

	handler := slog.NewTextHandler(&TestWriter{t: t}, opts)

	return slog.New(ContextHandler{Handler: handler})
}
