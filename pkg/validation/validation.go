// Package validation checks widget values against the constraints declared on
// the live field registry.
package validation

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Validator produces a fresh ErrorMap for the supplied fields and values. An
// empty map means the data is valid.
type Validator interface {
	Validate(ctx context.Context, fields []model.Field, data model.FormData) model.ErrorMap
}

// Func adapts a function into a Validator.
type Func func(ctx context.Context, fields []model.Field, data model.FormData) model.ErrorMap

// Validate calls the underlying function.
func (fn Func) Validate(ctx context.Context, fields []model.Field, data model.FormData) model.ErrorMap {
	return fn(ctx, fields, data)
}

var (
	engineOnce sync.Once
	engine     *validator.Validate
)

func sharedEngine() *validator.Validate {
	engineOnce.Do(func() {
		engine = validator.New(validator.WithRequiredStructEnabled())
	})
	return engine
}

// FieldValidator derives its rules from each field definition: required
// fields must hold a non-blank value, MaxLength caps the value length and
// select values must be one of the declared options. Only the first failing
// rule is reported per field.
type FieldValidator struct {
	validate *validator.Validate
}

// Ensure FieldValidator implements Validator.
var _ Validator = (*FieldValidator)(nil)

// NewFieldValidator returns a validator backed by go-playground/validator.
func NewFieldValidator() *FieldValidator {
	return &FieldValidator{validate: sharedEngine()}
}

// Validate implements Validator.
func (v *FieldValidator) Validate(_ context.Context, fields []model.Field, data model.FormData) model.ErrorMap {
	errs := make(model.ErrorMap)
	for _, field := range fields {
		if msg := v.check(field, data.Get(field.ID)); msg != "" {
			errs[field.ID] = msg
		}
	}
	return errs
}

func (v *FieldValidator) check(field model.Field, raw string) string {
	value := strings.TrimSpace(raw)

	if field.Required {
		if err := v.validate.Var(value, "required"); err != nil {
			return field.RequiredMessage()
		}
	}
	if value == "" {
		return ""
	}

	if field.MaxLength > 0 {
		if err := v.validate.Var(value, fmt.Sprintf("max=%d", field.MaxLength)); err != nil {
			return fmt.Sprintf("%s must be at most %d characters", labelOf(field), field.MaxLength)
		}
	}

	if sel, ok := field.Variant().(model.SelectVariant); ok && !field.HasOption(value) {
		return fmt.Sprintf("%s must be one of: %s", labelOf(field), strings.Join(sel.Options, ", "))
	}
	return ""
}

func labelOf(field model.Field) string {
	if label := strings.TrimSpace(field.Label); label != "" {
		return label
	}
	return field.ID
}
