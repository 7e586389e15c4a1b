package formbuilder

import (
	"context"

	"github.com/goliatone/go-formbuilder/pkg/details"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/vanilla"
	"github.com/goliatone/go-formbuilder/pkg/seed"
	"github.com/goliatone/go-formbuilder/pkg/widget"
)

// Field is a single input definition held by the widget registry.
type Field = model.Field

// FormData maps field ids to entered values.
type FormData = model.FormData

// ErrorMap maps field ids to validation messages.
type ErrorMap = model.ErrorMap

// Submission is what the details display receives after a valid submit.
type Submission = details.Submission

// RenderOptions aliases render.RenderOptions for callers rendering widgets.
type RenderOptions = render.RenderOptions

// NewWidget builds a widget seeded with the default full name and country
// fields unless widget.WithFields is supplied.
func NewWidget(options ...widget.Option) (*widget.Widget, error) {
	return widget.New(options...)
}

// NewWidgetFromSeed loads a YAML seed document and builds a widget from it.
// A nil loader reads files and URLs. Options are applied after the seeded
// fields.
func NewWidgetFromSeed(ctx context.Context, loader *seed.Loader, src seed.Source, options ...widget.Option) (*widget.Widget, error) {
	fields, err := seed.LoadYAML(ctx, loader, src)
	if err != nil {
		return nil, err
	}
	return widget.New(append([]widget.Option{widget.WithFields(fields)}, options...)...)
}

// RenderHTML renders the current widget view as a standalone HTML document
// with the default stylesheet inlined.
func RenderHTML(ctx context.Context, w *widget.Widget, options RenderOptions) ([]byte, error) {
	renderer, err := vanilla.New(vanilla.WithDefaultStyles())
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, w.Snapshot(), options)
}
