package model

// DefaultFields returns the seeded registry: a required full name text input
// and a required country select.
func DefaultFields() []Field {
	return []Field{
		{
			ID:       "1",
			Kind:     FieldKindText,
			Label:    "Full Name",
			Required: true,
			Message:  "Name is required",
		},
		{
			ID:          "2",
			Kind:        FieldKindSelect,
			Label:       "Country",
			Options:     []string{"USA", "India", "Nepal"},
			Required:    true,
			Message:     "Country is required",
			Placeholder: "Select Country",
		},
	}
}
