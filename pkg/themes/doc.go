// Package themes loads go-theme manifests from YAML, selects a theme and
// variant, and flattens the selection into the renderer configuration the
// HTML renderer consumes (tokens, CSS custom properties, asset URLs).
package themes
