package widget

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithRequiredAdditions marks fields created through Add as required.
func WithRequiredAdditions(required bool) RegistryOption {
	return func(r *Registry) {
		r.requireAdded = required
	}
}

// Registry is the ordered list of field definitions. Ids handed out by Add
// come from a counter that only moves forward, so an id is never reused
// after its field is removed.
type Registry struct {
	fields       []model.Field
	next         int
	requireAdded bool
}

// NewRegistry seeds a registry. Seeds must be valid and have unique ids.
func NewRegistry(seed []model.Field, options ...RegistryOption) (*Registry, error) {
	r := &Registry{
		fields: make([]model.Field, 0, len(seed)),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	seen := make(map[string]struct{}, len(seed))
	for _, field := range seed {
		if err := field.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[field.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateField, field.ID)
		}
		seen[field.ID] = struct{}{}
		r.fields = append(r.fields, field.Clone())

		if n, err := strconv.Atoi(field.ID); err == nil && n > r.next {
			r.next = n
		}
	}
	if r.next < len(r.fields) {
		r.next = len(r.fields)
	}
	return r, nil
}

// Add appends a text field titled label. A blank label leaves the registry
// untouched and returns ErrEmptyLabel.
func (r *Registry) Add(label string) (model.Field, error) {
	trimmed := strings.TrimSpace(label)
	if trimmed == "" {
		return model.Field{}, ErrEmptyLabel
	}

	field := model.Field{
		ID:       r.allocateID(),
		Kind:     model.FieldKindText,
		Label:    trimmed,
		Required: r.requireAdded,
	}
	r.fields = append(r.fields, field)
	return field.Clone(), nil
}

// Remove deletes the field with the given id. It reports whether a field was
// removed; unknown ids are a no-op.
func (r *Registry) Remove(id string) bool {
	for i, field := range r.fields {
		if field.ID == id {
			r.fields = append(r.fields[:i], r.fields[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns a copy of the field with the given id.
func (r *Registry) Get(id string) (model.Field, bool) {
	for _, field := range r.fields {
		if field.ID == id {
			return field.Clone(), true
		}
	}
	return model.Field{}, false
}

// Fields returns a copy of the ordered definitions.
func (r *Registry) Fields() []model.Field {
	return model.CloneFields(r.fields)
}

// Len returns the number of fields.
func (r *Registry) Len() int {
	return len(r.fields)
}

func (r *Registry) allocateID() string {
	for {
		r.next++
		id := strconv.Itoa(r.next)
		if _, taken := r.Get(id); !taken {
			return id
		}
	}
}
