package config

type HTTP struct {
	BaseURL string `env:"BASE_URL,expand" envDefault:"/"`
	Address string `env:"ADDRESS,expand" envDefault:":3003"`
}
