package setup

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/goliatone/go-formbuilder/internal/config"
	"github.com/goliatone/go-formbuilder/internal/server"
	"github.com/goliatone/go-formbuilder/pkg/details"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/widget"
)

// WidgetFactoryFromConfig loads the seed once and returns a factory building
// independent widgets from it.
func WidgetFactoryFromConfig(ctx context.Context, conf *config.Config, logger *slog.Logger) (server.WidgetFactory, error) {
	fields, err := FieldsFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not load fields from config")
	}

	factory := func(display details.Display) (*widget.Widget, error) {
		return widget.New(
			widget.WithFields(model.CloneFields(fields)),
			widget.WithDetailsDisplay(display),
			widget.WithLogger(logger),
			widget.WithRequireAddedFields(conf.RequireAddedFields),
		)
	}

	return factory, nil
}

func NewWidgetFromConfig(ctx context.Context, conf *config.Config, logger *slog.Logger, display details.Display) (*widget.Widget, error) {
	factory, err := WidgetFactoryFromConfig(ctx, conf, logger)
	if err != nil {
		return nil, err
	}

	w, err := factory(display)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return w, nil
}
