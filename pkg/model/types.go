package model

import (
	"errors"
	"fmt"
	"strings"
)

// FieldKind enumerates the supported input kinds.
type FieldKind string

const (
	FieldKindText   FieldKind = "text"
	FieldKindSelect FieldKind = "select"
)

// Valid reports whether the kind is one of the known constants.
func (k FieldKind) Valid() bool {
	switch k {
	case FieldKindText, FieldKindSelect:
		return true
	default:
		return false
	}
}

var (
	errFieldIDMissing      = errors.New("model: field id is required")
	errFieldOptionsMissing = errors.New("model: select field requires options")
)

// Field models a single form input definition. Options are only meaningful for
// select fields. Required and Message drive validation; Placeholder, Help and
// MaxLength are presentation and constraint hints carried over from seeds.
type Field struct {
	ID          string    `json:"id" yaml:"id"`
	Kind        FieldKind `json:"type" yaml:"type"`
	Label       string    `json:"label" yaml:"label"`
	Options     []string  `json:"options,omitempty" yaml:"options,omitempty"`
	Required    bool      `json:"required,omitempty" yaml:"required,omitempty"`
	Message     string    `json:"message,omitempty" yaml:"message,omitempty"`
	Placeholder string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Help        string    `json:"help,omitempty" yaml:"help,omitempty"`
	MaxLength   int       `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
}

// Validate checks the structural invariants of a definition.
func (f Field) Validate() error {
	if strings.TrimSpace(f.ID) == "" {
		return errFieldIDMissing
	}
	if !f.Kind.Valid() {
		return fmt.Errorf("model: field %q has unknown type %q", f.ID, f.Kind)
	}
	if f.Kind == FieldKindSelect && len(f.Options) == 0 {
		return fmt.Errorf("%w (field %q)", errFieldOptionsMissing, f.ID)
	}
	return nil
}

// Clone returns a deep copy of the field.
func (f Field) Clone() Field {
	out := f
	if f.Options != nil {
		out.Options = append([]string(nil), f.Options...)
	}
	return out
}

// HasOption reports whether value is one of the select options.
func (f Field) HasOption(value string) bool {
	for _, option := range f.Options {
		if option == value {
			return true
		}
	}
	return false
}

// RequiredMessage returns the message reported when a required field is empty.
func (f Field) RequiredMessage() string {
	if msg := strings.TrimSpace(f.Message); msg != "" {
		return msg
	}
	label := strings.TrimSpace(f.Label)
	if label == "" {
		label = f.ID
	}
	return label + " is required"
}

// Variant is the closed set of per-kind payloads. Only TextVariant and
// SelectVariant implement it.
type Variant interface {
	isVariant()
}

// TextVariant is a free-form single line input.
type TextVariant struct{}

// SelectVariant is a single choice among Options.
type SelectVariant struct {
	Options []string
}

func (TextVariant) isVariant()   {}
func (SelectVariant) isVariant() {}

// Variant returns the tagged payload for the field kind. Unknown kinds yield
// nil so callers can surface a rendering error.
func (f Field) Variant() Variant {
	switch f.Kind {
	case FieldKindText:
		return TextVariant{}
	case FieldKindSelect:
		return SelectVariant{Options: append([]string(nil), f.Options...)}
	default:
		return nil
	}
}

// CloneFields deep copies a slice of fields.
func CloneFields(fields []Field) []Field {
	if fields == nil {
		return nil
	}
	out := make([]Field, len(fields))
	for i, field := range fields {
		out[i] = field.Clone()
	}
	return out
}
