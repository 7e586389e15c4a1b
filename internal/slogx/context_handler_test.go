package slogx

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestContextHandler_AddsContextAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(ContextHandler{Handler: slog.NewTextHandler(&buf, nil)})

	ctx := WithAttrs(context.Background(), slog.String("instance", "abc"))
	ctx = WithAttrs(ctx, slog.String("field", "1"))

	logger.InfoContext(ctx, "hello")

	out := buf.String()
	for _, want := range []string{"instance=abc", "field=1", "msg=hello"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}

func TestContextHandler_KeepsWrappingAfterWith(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(ContextHandler{Handler: slog.NewTextHandler(&buf, nil)}).With(slog.String("component", "server"))

	logger.InfoContext(WithAttrs(context.Background(), slog.String("instance", "xyz")), "hello")

	out := buf.String()
	if !strings.Contains(out, "component=server") || !strings.Contains(out, "instance=xyz") {
		t.Fatalf("expected both logger and context attrs, got %q", out)
	}
}
