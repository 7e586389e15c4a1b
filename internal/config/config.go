package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

type Config struct {
	Logger    Logger    `envPrefix:"LOGGER_"`
	HTTP      HTTP      `envPrefix:"HTTP_"`
	Instances Instances `envPrefix:"INSTANCES_"`
	Seed      Seed      `envPrefix:"SEED_"`
	Theme     Theme     `envPrefix:"THEME_"`

	RequireAddedFields bool `env:"REQUIRE_ADDED_FIELDS" envDefault:"false"`
}

const Prefix = "FORMBUILDER_"

func Parse() (*Config, error) {
	return ParseEnvironment(nil)
}

// ParseEnvironment parses the given variables instead of the process
// environment when environment is non nil.
func ParseEnvironment(environment map[string]string) (*Config, error) {
	opts := env.Options{
		Prefix: Prefix,
	}
	if environment != nil {
		opts.Environment = environment
	}

	conf, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &conf, nil
}
