package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/details"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/widget"
)

// Renderer renders widget snapshots as plain text and drives interactive
// terminal sessions over a widget (see Run).
type Renderer struct {
	driver PromptDriver
	theme  Theme
	logger *slog.Logger
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver on stdout).
func New(options ...Option) *Renderer {
	r := &Renderer{
		theme:  DefaultTheme,
		logger: slog.Default(),
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Render prints the view for the snapshot state.
func (r *Renderer) Render(ctx context.Context, snapshot widget.Snapshot, _ render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var b strings.Builder
	switch snapshot.State {
	case model.ViewEditing:
		b.WriteString("Form\n")
		for _, field := range snapshot.Fields {
			fmt.Fprintf(&b, "  [%s] %s%s%s: %s\n",
				field.ID, field.Label, requiredMark(field), optionHint(field), snapshot.Values.Get(field.ID))
			if msg, ok := snapshot.Errors[field.ID]; ok {
				fmt.Fprintf(&b, "      %s%s\n", r.theme.ErrorPrefix, msg)
			}
		}
		if snapshot.AddFieldOpen {
			fmt.Fprintf(&b, "  New Field Title: %s\n", snapshot.PendingLabel)
		}
	case model.ViewPreviewing:
		b.WriteString("Preview\n")
		for _, field := range snapshot.Fields {
			fmt.Fprintf(&b, "  %s: %s\n", field.Label, snapshot.Values.Get(field.ID))
			if msg, ok := snapshot.Errors[field.ID]; ok {
				fmt.Fprintf(&b, "      %s%s\n", r.theme.ErrorPrefix, msg)
			}
		}
	case model.ViewSubmitted:
		b.WriteString("Submitted Details\n")
		submission := details.Submission{Fields: snapshot.Fields, Data: snapshot.Values}
		for _, entry := range submission.Entries() {
			fmt.Fprintf(&b, "  %s: %s\n", entry.Label, entry.Value)
		}
	default:
		return nil, fmt.Errorf("tui: unsupported view state %v", snapshot.State)
	}
	return []byte(b.String()), nil
}

func requiredMark(field model.Field) string {
	if field.Required {
		return " *"
	}
	return ""
}

func optionHint(field model.Field) string {
	switch variant := field.Variant().(type) {
	case model.SelectVariant:
		return " (" + strings.Join(variant.Options, ", ") + ")"
	default:
		return ""
	}
}
