package seed

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

type seedDocument struct {
	Fields []model.Field `yaml:"fields"`
}

// ParseYAML decodes a seed document. Both a top level list of fields and a
// mapping with a "fields" key are accepted; JSON input works too. A field
// without a type is a select when it lists options and a text field otherwise.
func ParseYAML(data []byte) ([]model.Field, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("seed: parse yaml: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, errors.New("seed: empty seed document")
	}

	var fields []model.Field
	node := root.Content[0]
	switch node.Kind {
	case yaml.SequenceNode:
		if err := node.Decode(&fields); err != nil {
			return nil, fmt.Errorf("seed: decode fields: %w", err)
		}
	case yaml.MappingNode:
		var doc seedDocument
		if err := node.Decode(&doc); err != nil {
			return nil, fmt.Errorf("seed: decode document: %w", err)
		}
		fields = doc.Fields
	default:
		return nil, errors.New("seed: document must be a list of fields or a mapping with fields")
	}

	return normalizeFields(fields)
}

// LoadYAML loads and parses a seed document.
func LoadYAML(ctx context.Context, loader *Loader, src Source) ([]model.Field, error) {
	if loader == nil {
		loader = NewLoader()
	}
	data, err := loader.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	return ParseYAML(data)
}

func normalizeFields(fields []model.Field) ([]model.Field, error) {
	if len(fields) == 0 {
		return nil, errors.New("seed: document defines no fields")
	}
	seen := make(map[string]struct{}, len(fields))
	out := make([]model.Field, 0, len(fields))
	for i, field := range fields {
		if field.Kind == "" {
			field.Kind = model.FieldKindText
			if len(field.Options) > 0 {
				field.Kind = model.FieldKindSelect
			}
		}
		if err := field.Validate(); err != nil {
			return nil, fmt.Errorf("seed: field %d: %w", i, err)
		}
		if _, dup := seen[field.ID]; dup {
			return nil, fmt.Errorf("seed: duplicate field id %q", field.ID)
		}
		seen[field.ID] = struct{}{}
		out = append(out, field)
	}
	return out, nil
}
