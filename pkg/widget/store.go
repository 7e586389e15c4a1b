package widget

import "github.com/goliatone/go-formbuilder/pkg/model"

// Store holds the value entered for each field id. Writes are unconditional
// and entries are kept after their field is removed.
type Store struct {
	values model.FormData
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{values: make(model.FormData)}
}

// Set overwrites the value for id.
func (s *Store) Set(id, value string) {
	s.values[id] = value
}

// Get returns the value for id, or "" when nothing was entered.
func (s *Store) Get(id string) string {
	return s.values.Get(id)
}

// Data returns a copy of every stored value.
func (s *Store) Data() model.FormData {
	return s.values.Clone()
}
