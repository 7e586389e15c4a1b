package seed

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// OpenAPIOption customises how an operation's request body maps onto fields.
type OpenAPIOption func(*openapiConfig)

type openapiConfig struct {
	labeler Labeler
}

// WithLabeler overrides how property names without a title become labels.
func WithLabeler(labeler Labeler) OpenAPIOption {
	return func(cfg *openapiConfig) {
		if labeler != nil {
			cfg.labeler = labeler
		}
	}
}

// ParseOpenAPI derives fields from the request body schema of one operation.
// operationID matches either the operationId or "<method>:<path>"; when empty
// the document must contain exactly one operation with a request body.
//
// Properties become fields keyed by property name, sorted by name. String and
// numeric properties are text fields, enums and booleans are select fields.
// Object, array and read-only properties are skipped.
func ParseOpenAPI(ctx context.Context, data []byte, operationID string, options ...OpenAPIOption) ([]model.Field, error) {
	cfg := openapiConfig{labeler: DefaultLabeler}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if len(data) == 0 {
		return nil, errors.New("seed: openapi document is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("seed: load openapi document: %w", err)
	}

	operation, name, err := findOperation(doc, strings.TrimSpace(operationID))
	if err != nil {
		return nil, err
	}

	schema := requestSchema(operation.RequestBody)
	if schema == nil {
		return nil, fmt.Errorf("seed: operation %q has no request body schema", name)
	}

	fields := fieldsFromSchema(schema, cfg)
	if len(fields) == 0 {
		return nil, fmt.Errorf("seed: operation %q request body has no usable properties", name)
	}
	return normalizeFields(fields)
}

// LoadOpenAPI loads an OpenAPI document and derives fields from one operation.
func LoadOpenAPI(ctx context.Context, loader *Loader, src Source, operationID string, options ...OpenAPIOption) ([]model.Field, error) {
	if loader == nil {
		loader = NewLoader()
	}
	data, err := loader.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	return ParseOpenAPI(ctx, data, operationID, options...)
}

func findOperation(doc *openapi3.T, operationID string) (*openapi3.Operation, string, error) {
	if doc.Paths == nil || doc.Paths.Len() == 0 {
		return nil, "", errors.New("seed: openapi document does not contain any paths")
	}

	paths := doc.Paths.Map()
	keys := make([]string, 0, len(paths))
	for path := range paths {
		keys = append(keys, path)
	}
	sort.Strings(keys)

	var candidates []string
	found := make(map[string]*openapi3.Operation)
	for _, path := range keys {
		item := paths[path]
		if item == nil {
			continue
		}
		operations := item.Operations()
		methods := make([]string, 0, len(operations))
		for method := range operations {
			methods = append(methods, method)
		}
		sort.Strings(methods)

		for _, method := range methods {
			operation := operations[method]
			if operation == nil {
				continue
			}
			key := strings.ToLower(method) + ":" + path
			if operationID != "" && (operation.OperationID == operationID || key == operationID) {
				return operation, operationID, nil
			}
			if requestSchema(operation.RequestBody) != nil {
				name := operation.OperationID
				if name == "" {
					name = key
				}
				candidates = append(candidates, name)
				found[name] = operation
			}
		}
	}

	if operationID != "" {
		return nil, "", fmt.Errorf("seed: operation %q not found", operationID)
	}
	if len(candidates) != 1 {
		return nil, "", fmt.Errorf("seed: %d operations have a request body, choose one of: %s",
			len(candidates), strings.Join(candidates, ", "))
	}
	return found[candidates[0]], candidates[0], nil
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt != nil && mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	types := make([]string, 0, len(content))
	for mediaType := range content {
		types = append(types, mediaType)
	}
	sort.Strings(types)
	for _, mediaType := range types {
		if mt := content[mediaType]; mt != nil && mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func fieldsFromSchema(schema *openapi3.Schema, cfg openapiConfig) []model.Field {
	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]model.Field, 0, len(names))
	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil || ref.Value.ReadOnly {
			continue
		}
		prop := ref.Value

		field := model.Field{
			ID:       name,
			Label:    strings.TrimSpace(prop.Title),
			Required: slices.Contains(schema.Required, name),
			Help:     prop.Description,
		}
		if field.Label == "" {
			field.Label = cfg.labeler(name)
		}

		switch firstSchemaType(prop.Type) {
		case "", openapi3.TypeString, openapi3.TypeInteger, openapi3.TypeNumber:
			if len(prop.Enum) > 0 {
				field.Kind = model.FieldKindSelect
				for _, value := range prop.Enum {
					field.Options = append(field.Options, fmt.Sprint(value))
				}
			} else {
				field.Kind = model.FieldKindText
			}
		case openapi3.TypeBoolean:
			field.Kind = model.FieldKindSelect
			field.Options = []string{"true", "false"}
		default:
			continue
		}

		if prop.MaxLength != nil {
			field.MaxLength = int(*prop.MaxLength)
		}
		fields = append(fields, field)
	}
	return fields
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	for _, value := range types.Slice() {
		if value != openapi3.TypeNull {
			return value
		}
	}
	return ""
}
