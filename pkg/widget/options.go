package widget

import (
	"log/slog"

	"github.com/goliatone/go-formbuilder/pkg/details"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

// Option customises a Widget.
type Option func(*config)

type config struct {
	fields       []model.Field
	validator    validation.Validator
	display      details.Display
	logger       *slog.Logger
	requireAdded bool
}

// WithFields replaces the default seeded fields.
func WithFields(fields []model.Field) Option {
	return func(cfg *config) {
		if fields != nil {
			cfg.fields = model.CloneFields(fields)
		}
	}
}

// WithValidator overrides the field validator.
func WithValidator(v validation.Validator) Option {
	return func(cfg *config) {
		if v != nil {
			cfg.validator = v
		}
	}
}

// WithDetailsDisplay sets the collaborator invoked after a valid submit.
func WithDetailsDisplay(display details.Display) Option {
	return func(cfg *config) {
		if display != nil {
			cfg.display = display
		}
	}
}

// WithLogger sets the logger used for state transitions.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithRequireAddedFields makes fields added at runtime required.
func WithRequireAddedFields(required bool) Option {
	return func(cfg *config) {
		cfg.requireAdded = required
	}
}
