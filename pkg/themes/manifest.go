package themes

import (
	"errors"
	"fmt"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"
)

type assetsDocument struct {
	Prefix string            `yaml:"prefix"`
	Files  map[string]string `yaml:"files"`
}

type variantDocument struct {
	Tokens    map[string]string `yaml:"tokens"`
	Templates map[string]string `yaml:"templates"`
	Assets    assetsDocument    `yaml:"assets"`
}

type manifestDocument struct {
	Name      string                     `yaml:"name"`
	Version   string                     `yaml:"version"`
	Tokens    map[string]string          `yaml:"tokens"`
	Templates map[string]string          `yaml:"templates"`
	Assets    assetsDocument             `yaml:"assets"`
	Variants  map[string]variantDocument `yaml:"variants"`
}

type manifestsDocument struct {
	Themes []manifestDocument `yaml:"themes"`
}

// ParseManifests decodes either a single manifest or a document with a
// "themes" list.
func ParseManifests(data []byte) ([]*theme.Manifest, error) {
	var doc manifestsDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("themes: parse manifests: %w", err)
	}
	if len(doc.Themes) == 0 {
		var single manifestDocument
		if err := yaml.Unmarshal(data, &single); err != nil {
			return nil, fmt.Errorf("themes: parse manifest: %w", err)
		}
		if strings.TrimSpace(single.Name) == "" {
			return nil, errors.New("themes: document defines no themes")
		}
		doc.Themes = []manifestDocument{single}
	}

	out := make([]*theme.Manifest, 0, len(doc.Themes))
	for i, entry := range doc.Themes {
		if strings.TrimSpace(entry.Name) == "" {
			return nil, fmt.Errorf("themes: theme %d has no name", i)
		}
		out = append(out, entry.manifest())
	}
	return out, nil
}

// LoadFile reads manifests from disk.
func LoadFile(path string) ([]*theme.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("themes: read %s: %w", path, err)
	}
	return ParseManifests(data)
}

func (d manifestDocument) manifest() *theme.Manifest {
	m := &theme.Manifest{
		Name:      strings.TrimSpace(d.Name),
		Version:   d.Version,
		Tokens:    d.Tokens,
		Templates: d.Templates,
		Assets: theme.Assets{
			Prefix: d.Assets.Prefix,
			Files:  d.Assets.Files,
		},
	}
	if m.Version == "" {
		m.Version = "0.0.0"
	}
	if len(d.Variants) > 0 {
		m.Variants = make(map[string]theme.Variant, len(d.Variants))
		for name, variant := range d.Variants {
			m.Variants[name] = theme.Variant{
				Tokens:    variant.Tokens,
				Templates: variant.Templates,
				Assets: theme.Assets{
					Prefix: variant.Assets.Prefix,
					Files:  variant.Assets.Files,
				},
			}
		}
	}
	return m
}
