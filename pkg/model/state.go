package model

import (
	"fmt"
	"strings"
)

// ViewState is the widget display mode.
type ViewState int

const (
	ViewEditing ViewState = iota
	ViewPreviewing
	ViewSubmitted
)

func (s ViewState) String() string {
	switch s {
	case ViewEditing:
		return "editing"
	case ViewPreviewing:
		return "previewing"
	case ViewSubmitted:
		return "submitted"
	default:
		return fmt.Sprintf("ViewState(%d)", int(s))
	}
}

// MarshalText encodes the state by name.
func (s ViewState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name.
func (s *ViewState) UnmarshalText(text []byte) error {
	parsed, err := ParseViewState(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseViewState converts a state name into a ViewState.
func ParseViewState(raw string) (ViewState, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "editing":
		return ViewEditing, nil
	case "previewing":
		return ViewPreviewing, nil
	case "submitted":
		return ViewSubmitted, nil
	default:
		return ViewEditing, fmt.Errorf("model: unknown view state %q", raw)
	}
}
