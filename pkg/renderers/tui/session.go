package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/widget"
)

type action int

const (
	actionFill action = iota
	actionAdd
	actionRemove
	actionPreview
	actionEdit
	actionSubmit
	actionQuit
)

var actionLabels = map[action]string{
	actionFill:    "Fill in a field",
	actionAdd:     "Add a field",
	actionRemove:  "Remove a field",
	actionPreview: "Preview form",
	actionEdit:    "Edit form",
	actionSubmit:  "Submit",
	actionQuit:    "Quit",
}

func menuFor(state model.ViewState) []action {
	switch state {
	case model.ViewPreviewing:
		return []action{actionEdit, actionSubmit, actionQuit}
	default:
		return []action{actionFill, actionAdd, actionRemove, actionPreview, actionSubmit, actionQuit}
	}
}

// Run drives an interactive session over w until it is submitted. Details are
// handed to the widget's details display. Quitting returns ErrAborted.
func (r *Renderer) Run(ctx context.Context, w *widget.Widget) error {
	if w == nil {
		return errors.New("tui: widget is nil")
	}

	for w.State() != model.ViewSubmitted {
		if err := r.show(ctx, w); err != nil {
			return err
		}

		menu := menuFor(w.State())
		labels := make([]string, len(menu))
		for i, item := range menu {
			labels[i] = actionLabels[item]
		}
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message: r.theme.PromptPrefix + "What would you like to do?",
			Options: labels,
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(menu) {
			return ErrInvalidChoice
		}

		done, err := r.dispatch(ctx, w, menu[idx])
		if err != nil {
			return err
		}
		if done {
			return ErrAborted
		}
	}
	return nil
}

func (r *Renderer) show(ctx context.Context, w *widget.Widget) error {
	view, err := r.Render(ctx, w.Snapshot(), render.RenderOptions{})
	if err != nil {
		return err
	}
	return r.driver.Info(ctx, strings.TrimRight(string(view), "\n"))
}

func (r *Renderer) dispatch(ctx context.Context, w *widget.Widget, item action) (bool, error) {
	switch item {
	case actionFill:
		return false, r.fill(ctx, w)
	case actionAdd:
		return false, r.add(ctx, w)
	case actionRemove:
		return false, r.remove(ctx, w)
	case actionPreview, actionEdit:
		return false, w.TogglePreview(ctx)
	case actionSubmit:
		return false, r.submit(ctx, w)
	case actionQuit:
		ok, err := r.driver.Confirm(ctx, ConfirmConfig{Message: "Discard the form and quit?"})
		if err != nil {
			return false, err
		}
		return ok, nil
	default:
		return false, ErrInvalidChoice
	}
}

func (r *Renderer) fill(ctx context.Context, w *widget.Widget) error {
	field, ok, err := r.pickField(ctx, w, "Which field?")
	if err != nil || !ok {
		return err
	}

	current := w.Value(field.ID)
	var value string
	switch variant := field.Variant().(type) {
	case model.SelectVariant:
		placeholder := field.Placeholder
		if placeholder == "" {
			placeholder = "Select " + field.Label
		}
		options := append([]string{placeholder}, variant.Options...)
		defaultIndex := 0
		for i, option := range variant.Options {
			if option == current {
				defaultIndex = i + 1
			}
		}
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      field.Label,
			Options:      options,
			DefaultIndex: defaultIndex,
			Help:         field.Help,
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(options) {
			return ErrInvalidChoice
		}
		if idx > 0 {
			value = options[idx]
		}
	default:
		value, err = r.driver.Input(ctx, InputConfig{
			Message: field.Label,
			Default: current,
			Help:    field.Help,
		})
		if err != nil {
			return err
		}
	}
	return w.SetValue(field.ID, value)
}

func (r *Renderer) add(ctx context.Context, w *widget.Widget) error {
	if err := w.OpenAddField(); err != nil {
		return err
	}
	label, err := r.driver.Input(ctx, InputConfig{
		Message: "New Field Title",
		Default: w.Snapshot().PendingLabel,
	})
	if err != nil {
		return err
	}
	if err := w.SetPendingLabel(label); err != nil {
		return err
	}

	field, err := w.ConfirmAddField(ctx)
	if errors.Is(err, widget.ErrEmptyLabel) {
		if err := w.CancelAddField(); err != nil {
			return err
		}
		return r.driver.Info(ctx, r.theme.ErrorPrefix+"Please provide a title for the new field")
	}
	if err != nil {
		return err
	}
	r.logger.DebugContext(ctx, "tui field added", slog.String("field", field.ID))
	return r.driver.Info(ctx, fmt.Sprintf("%sAdded %q", r.theme.InfoPrefix, field.Label))
}

func (r *Renderer) remove(ctx context.Context, w *widget.Widget) error {
	field, ok, err := r.pickField(ctx, w, "Remove which field?")
	if err != nil || !ok {
		return err
	}
	if _, err := w.RemoveField(ctx, field.ID); err != nil {
		return err
	}
	return r.driver.Info(ctx, fmt.Sprintf("%sRemoved %q", r.theme.InfoPrefix, field.Label))
}

func (r *Renderer) submit(ctx context.Context, w *widget.Widget) error {
	errs, err := w.Submit(ctx)
	if err != nil {
		return err
	}
	if errs.Empty() {
		return r.driver.Info(ctx, r.theme.InfoPrefix+"Form submitted")
	}

	lines := []string{r.theme.ErrorPrefix + "Please fix the following:"}
	for _, field := range w.Fields() {
		if msg, ok := errs[field.ID]; ok {
			lines = append(lines, "  "+msg)
		}
	}
	return r.driver.Info(ctx, strings.Join(lines, "\n"))
}

func (r *Renderer) pickField(ctx context.Context, w *widget.Widget, message string) (model.Field, bool, error) {
	fields := w.Fields()
	if len(fields) == 0 {
		return model.Field{}, false, r.driver.Info(ctx, r.theme.InfoPrefix+"The form has no fields")
	}
	labels := make([]string, len(fields))
	for i, field := range fields {
		labels[i] = fmt.Sprintf("%s (%s)", field.Label, field.ID)
	}
	idx, err := r.driver.Select(ctx, SelectConfig{Message: message, Options: labels})
	if err != nil {
		return model.Field{}, false, err
	}
	if idx < 0 || idx >= len(fields) {
		return model.Field{}, false, ErrInvalidChoice
	}
	return fields[idx], true, nil
}
