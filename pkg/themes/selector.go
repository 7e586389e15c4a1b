package themes

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

var (
	ErrThemeNotFound   = errors.New("themes: theme not found")
	ErrVariantNotFound = errors.New("themes: variant not found")
)

// Selector resolves theme and variant names against a fixed manifest set.
type Selector struct {
	manifests      map[string]*theme.Manifest
	registry       theme.ThemeProvider
	defaultTheme   string
	defaultVariant string
}

var _ theme.ThemeSelector = (*Selector)(nil)

// NewSelector registers manifests and records the defaults used when Select
// receives empty names. An empty defaultTheme picks the first manifest.
func NewSelector(manifests []*theme.Manifest, defaultTheme, defaultVariant string) (*Selector, error) {
	if len(manifests) == 0 {
		return nil, errors.New("themes: at least one manifest is required")
	}

	registry := theme.NewRegistry()
	s := &Selector{
		manifests:      make(map[string]*theme.Manifest, len(manifests)),
		registry:       registry,
		defaultTheme:   strings.TrimSpace(defaultTheme),
		defaultVariant: strings.TrimSpace(defaultVariant),
	}
	for _, manifest := range manifests {
		if manifest == nil {
			continue
		}
		if _, dup := s.manifests[manifest.Name]; dup {
			return nil, fmt.Errorf("themes: duplicate theme %q", manifest.Name)
		}
		if err := registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("themes: register %q: %w", manifest.Name, err)
		}
		s.manifests[manifest.Name] = manifest
	}

	if s.defaultTheme == "" {
		s.defaultTheme = manifests[0].Name
	}
	if _, ok := s.manifests[s.defaultTheme]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, s.defaultTheme)
	}
	return s, nil
}

// Provider exposes the go-theme registry holding the manifests.
func (s *Selector) Provider() theme.ThemeProvider {
	return s.registry
}

// Names lists the registered themes.
func (s *Selector) Names() []string {
	names := make([]string, 0, len(s.manifests))
	for name := range s.manifests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Select returns the named theme and variant, falling back to the defaults
// for empty names. The base variant is addressed with an empty variant name.
func (s *Selector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = s.defaultTheme
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}

	variant = strings.TrimSpace(variant)
	if variant == "" && name == s.defaultTheme {
		variant = s.defaultVariant
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("%w: %q in theme %q", ErrVariantNotFound, variant, name)
		}
	}

	return &theme.Selection{
		Theme:    name,
		Variant:  variant,
		Manifest: manifest,
	}, nil
}
