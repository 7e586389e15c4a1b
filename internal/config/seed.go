package config

type Seed struct {
	File      string `env:"FILE,expand"`
	OpenAPI   string `env:"OPENAPI,expand"`
	Operation string `env:"OPERATION"`
}
