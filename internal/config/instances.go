package config

import "time"

type Instances struct {
	TTL time.Duration `env:"TTL" envDefault:"30m"`
	Max int           `env:"MAX" envDefault:"1000"`
}
