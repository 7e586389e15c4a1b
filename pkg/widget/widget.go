package widget

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/details"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

// Snapshot is a read-only copy of the widget state handed to renderers.
type Snapshot struct {
	Fields       []model.Field
	Values       model.FormData
	Errors       model.ErrorMap
	State        model.ViewState
	AddFieldOpen bool
	PendingLabel string
}

// Widget is one form builder instance.
type Widget struct {
	registry   *Registry
	store      *Store
	controller Controller
	errors     model.ErrorMap

	addFieldOpen bool
	pendingLabel string

	validator validation.Validator
	display   details.Display
	logger    *slog.Logger
}

// New constructs a Widget seeded with model.DefaultFields unless WithFields is
// supplied.
func New(options ...Option) (*Widget, error) {
	cfg := config{
		fields:    model.DefaultFields(),
		validator: validation.NewFieldValidator(),
		display:   details.Discard,
		logger:    slog.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	registry, err := NewRegistry(cfg.fields, WithRequiredAdditions(cfg.requireAdded))
	if err != nil {
		return nil, fmt.Errorf("widget: seed registry: %w", err)
	}

	return &Widget{
		registry:  registry,
		store:     NewStore(),
		errors:    make(model.ErrorMap),
		validator: cfg.validator,
		display:   cfg.display,
		logger:    cfg.logger,
	}, nil
}

// State returns the current view.
func (w *Widget) State() model.ViewState {
	return w.controller.State()
}

// Fields returns the ordered field definitions.
func (w *Widget) Fields() []model.Field {
	return w.registry.Fields()
}

// Data returns a copy of the entered values.
func (w *Widget) Data() model.FormData {
	return w.store.Data()
}

// Errors returns a copy of the errors from the last submit.
func (w *Widget) Errors() model.ErrorMap {
	return w.errors.Clone()
}

// Value returns the value entered for id.
func (w *Widget) Value(id string) string {
	return w.store.Get(id)
}

// Snapshot copies the current state for rendering.
func (w *Widget) Snapshot() Snapshot {
	return Snapshot{
		Fields:       w.registry.Fields(),
		Values:       w.store.Data(),
		Errors:       w.errors.Clone(),
		State:        w.controller.State(),
		AddFieldOpen: w.addFieldOpen,
		PendingLabel: w.pendingLabel,
	}
}

// SetValue records the value typed or selected for a field.
func (w *Widget) SetValue(id, value string) error {
	if err := w.requireEditing(); err != nil {
		return err
	}
	w.store.Set(id, value)
	return nil
}

// OpenAddField shows the new field title input.
func (w *Widget) OpenAddField() error {
	if err := w.requireEditing(); err != nil {
		return err
	}
	w.addFieldOpen = true
	return nil
}

// CancelAddField hides the new field title input. The typed title is kept.
func (w *Widget) CancelAddField() error {
	if err := w.requireEditing(); err != nil {
		return err
	}
	w.addFieldOpen = false
	return nil
}

// SetPendingLabel records the title typed into the new field input.
func (w *Widget) SetPendingLabel(label string) error {
	if err := w.requireEditing(); err != nil {
		return err
	}
	w.pendingLabel = label
	return nil
}

// ConfirmAddField adds a field using the pending title.
func (w *Widget) ConfirmAddField(ctx context.Context) (model.Field, error) {
	return w.AddField(ctx, w.pendingLabel)
}

// AddField appends a text field. On success the pending title is cleared and
// the title input closed; a blank label changes nothing.
func (w *Widget) AddField(ctx context.Context, label string) (model.Field, error) {
	if err := w.requireEditing(); err != nil {
		return model.Field{}, err
	}
	field, err := w.registry.Add(label)
	if err != nil {
		w.logger.DebugContext(ctx, "rejected new field", slog.String("label", label))
		return model.Field{}, err
	}
	w.pendingLabel = ""
	w.addFieldOpen = false
	w.logger.DebugContext(ctx, "field added", slog.String("field", field.ID), slog.String("label", field.Label))
	return field, nil
}

// RemoveField removes a field by id. Unknown ids are ignored.
func (w *Widget) RemoveField(ctx context.Context, id string) (bool, error) {
	if err := w.requireEditing(); err != nil {
		return false, err
	}
	removed := w.registry.Remove(id)
	if removed {
		w.logger.DebugContext(ctx, "field removed", slog.String("field", id))
	}
	return removed, nil
}

// TogglePreview switches between the editing and preview views.
func (w *Widget) TogglePreview(ctx context.Context) error {
	if err := w.controller.TogglePreview(); err != nil {
		return err
	}
	w.logger.DebugContext(ctx, "view toggled", slog.String("state", w.controller.State().String()))
	return nil
}

// Submit validates the entered values against the live registry. Invalid
// data populates the error map and keeps the current view; the returned map
// is then non-empty. Valid data clears the errors, moves to Submitted and
// hands the values to the details display. A display failure is returned but
// the widget stays submitted. A done context returns its error and changes
// nothing.
func (w *Widget) Submit(ctx context.Context) (model.ErrorMap, error) {
	if w.controller.State() == model.ViewSubmitted {
		return nil, ErrSubmitted
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fields := w.registry.Fields()
	data := w.store.Data()

	errs := w.validator.Validate(ctx, fields, data)
	if errs == nil {
		errs = make(model.ErrorMap)
	}
	w.errors = errs.Clone()

	state, err := w.controller.Submit(errs.Empty())
	if err != nil {
		return nil, err
	}
	if state != model.ViewSubmitted {
		w.logger.InfoContext(ctx, "submission rejected",
			slog.String("state", state.String()),
			slog.String("fields", strings.Join(sortedKeys(errs), ",")),
		)
		return errs.Clone(), nil
	}

	w.addFieldOpen = false
	w.logger.InfoContext(ctx, "form submitted", slog.Int("values", len(data)))

	if err := w.display.Display(ctx, details.Submission{Fields: fields, Data: data}); err != nil {
		return errs.Clone(), fmt.Errorf("widget: details display: %w", err)
	}
	return errs.Clone(), nil
}

// ConfirmSubmit is the preview view's submit action.
func (w *Widget) ConfirmSubmit(ctx context.Context) (model.ErrorMap, error) {
	return w.Submit(ctx)
}

func (w *Widget) requireEditing() error {
	switch w.controller.State() {
	case model.ViewEditing:
		return nil
	case model.ViewSubmitted:
		return ErrSubmitted
	default:
		return ErrNotEditing
	}
}
