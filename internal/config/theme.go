package config

type Theme struct {
	File    string `env:"FILE,expand"`
	Name    string `env:"NAME"`
	Variant string `env:"VARIANT"`
}
