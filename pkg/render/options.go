package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request data that renderers can use without
// touching widget state.
type RenderOptions struct {
	// Action is the base URL the rendered controls post back to. Renderers
	// append their own sub paths (for example "/submit").
	Action string
	// Notice is a transient message shown once above the form, used for the
	// blank new field title warning.
	Notice string
	// Hidden carries extra hidden inputs emitted inside every form, such as a
	// CSRF token.
	Hidden map[string]string
	// Theme exposes tokens, CSS variables and asset URLs resolved from a
	// go-theme selection.
	Theme *theme.RendererConfig
}
