package setup

import (
	"context"

	"github.com/pkg/errors"

	"github.com/goliatone/go-formbuilder/internal/config"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/seed"
)

// FieldsFromConfig returns the field definitions every new widget starts
// with: a YAML seed, an OpenAPI operation body or the built-in defaults.
func FieldsFromConfig(ctx context.Context, conf *config.Config) ([]model.Field, error) {
	if conf.Seed.File != "" && conf.Seed.OpenAPI != "" {
		return nil, errors.New("seed file and openapi document are mutually exclusive")
	}

	loader := seed.NewLoader()

	switch {
	case conf.Seed.File != "":
		src, err := seed.ParseSource(conf.Seed.File)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		fields, err := seed.LoadYAML(ctx, loader, src)
		if err != nil {
			return nil, errors.Wrapf(err, "could not load seed '%s'", src)
		}

		return fields, nil

	case conf.Seed.OpenAPI != "":
		src, err := seed.ParseSource(conf.Seed.OpenAPI)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		fields, err := seed.LoadOpenAPI(ctx, loader, src, conf.Seed.Operation)
		if err != nil {
			return nil, errors.Wrapf(err, "could not load openapi seed '%s'", src)
		}

		return fields, nil

	default:
		return model.DefaultFields(), nil
	}
}
