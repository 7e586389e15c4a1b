package widget

import "github.com/goliatone/go-formbuilder/pkg/model"

// Controller is the view state machine:
//
//	Editing    --toggle-->        Previewing
//	Previewing --toggle-->        Editing
//	Editing    --submit(valid)--> Submitted
//	Previewing --submit(valid)--> Submitted
//
// An invalid submit keeps the current state. Submitted is terminal.
type Controller struct {
	state model.ViewState
}

// State returns the current view.
func (c *Controller) State() model.ViewState {
	return c.state
}

// TogglePreview flips between Editing and Previewing.
func (c *Controller) TogglePreview() error {
	switch c.state {
	case model.ViewEditing:
		c.state = model.ViewPreviewing
	case model.ViewPreviewing:
		c.state = model.ViewEditing
	default:
		return ErrSubmitted
	}
	return nil
}

// Submit moves to Submitted when valid and reports the resulting state.
func (c *Controller) Submit(valid bool) (model.ViewState, error) {
	if c.state == model.ViewSubmitted {
		return c.state, ErrSubmitted
	}
	if valid {
		c.state = model.ViewSubmitted
	}
	return c.state, nil
}
