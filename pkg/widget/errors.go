package widget

import "errors"

var (
	// ErrEmptyLabel is returned when a new field title is blank after trimming.
	ErrEmptyLabel = errors.New("widget: please provide a title for the new field")
	// ErrSubmitted is returned for any mutation once the form was submitted.
	ErrSubmitted = errors.New("widget: form already submitted")
	// ErrNotEditing is returned when the field list or values are changed
	// outside the editing view.
	ErrNotEditing = errors.New("widget: form is not in editing mode")
	// ErrDuplicateField is returned when seeding a registry with repeated ids.
	ErrDuplicateField = errors.New("widget: duplicate field id")
)
