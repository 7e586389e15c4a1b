// Package details provides the collaborators that take over once a widget
// reaches the submitted state and the finalized values must be shown or
// forwarded somewhere else.
package details

import (
	"context"
	"sort"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Submission is the finalized payload handed to a Display. Data holds every
// value entered during the session, including values of fields removed before
// submitting; Fields is the registry at the time of submission.
type Submission struct {
	Fields []model.Field
	Data   model.FormData
}

// Entry pairs a label with its submitted value.
type Entry struct {
	ID    string
	Label string
	Value string
}

// Entries lists the registry fields in order followed by values whose field
// no longer exists, sorted by id.
func (s Submission) Entries() []Entry {
	seen := make(map[string]struct{}, len(s.Fields))
	out := make([]Entry, 0, len(s.Data))
	for _, field := range s.Fields {
		seen[field.ID] = struct{}{}
		out = append(out, Entry{ID: field.ID, Label: field.Label, Value: s.Data.Get(field.ID)})
	}

	var orphans []string
	for id := range s.Data {
		if _, ok := seen[id]; !ok {
			orphans = append(orphans, id)
		}
	}
	sort.Strings(orphans)
	for _, id := range orphans {
		out = append(out, Entry{ID: id, Label: id, Value: s.Data[id]})
	}
	return out
}

// Display receives the submission exactly once per widget instance.
type Display interface {
	Display(ctx context.Context, submission Submission) error
}

// DisplayFunc adapts a function into a Display.
type DisplayFunc func(ctx context.Context, submission Submission) error

// Display calls the underlying function.
func (fn DisplayFunc) Display(ctx context.Context, submission Submission) error {
	return fn(ctx, submission)
}

// Discard is a Display that does nothing.
var Discard Display = DisplayFunc(func(context.Context, Submission) error { return nil })

// Multi fans a submission out to every display in order, stopping at the
// first error. Nil displays are skipped.
func Multi(displays ...Display) Display {
	return DisplayFunc(func(ctx context.Context, submission Submission) error {
		for _, display := range displays {
			if display == nil {
				continue
			}
			if err := display.Display(ctx, submission); err != nil {
				return err
			}
		}
		return nil
	})
}
