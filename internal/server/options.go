package server

import (
	"io/fs"
	"log/slog"
	"time"

	theme "github.com/goliatone/go-theme"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-formbuilder/pkg/details"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/widget"
)

type Options struct {
	Address  string
	BaseURL  string
	Factory  WidgetFactory
	Renderer render.Renderer
	Theme    *theme.RendererConfig
	Display  details.Display
	Assets   fs.FS
	TTL      time.Duration
	Max      int
	Logger   *slog.Logger
	Registry *prometheus.Registry
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		Address: ":3003",
		BaseURL: "",
		Factory: func(display details.Display) (*widget.Widget, error) {
			return widget.New(widget.WithDetailsDisplay(display))
		},
		TTL:    30 * time.Minute,
		Max:    1000,
		Logger: slog.Default(),
	}
	for _, fn := range funcs {
		fn(opts)
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	return opts
}

func WithAddress(addr string) OptionFunc {
	return func(opts *Options) {
		opts.Address = addr
	}
}

func WithBaseURL(baseURL string) OptionFunc {
	return func(opts *Options) {
		opts.BaseURL = baseURL
	}
}

func WithWidgetFactory(factory WidgetFactory) OptionFunc {
	return func(opts *Options) {
		if factory != nil {
			opts.Factory = factory
		}
	}
}

func WithRenderer(renderer render.Renderer) OptionFunc {
	return func(opts *Options) {
		opts.Renderer = renderer
	}
}

func WithTheme(cfg *theme.RendererConfig) OptionFunc {
	return func(opts *Options) {
		opts.Theme = cfg
	}
}

// WithDetailsDisplay receives every successful submission in addition to the
// per instance recorder.
func WithDetailsDisplay(display details.Display) OptionFunc {
	return func(opts *Options) {
		opts.Display = display
	}
}

// WithAssets serves files under /assets/.
func WithAssets(assets fs.FS) OptionFunc {
	return func(opts *Options) {
		opts.Assets = assets
	}
}

func WithInstanceLimits(ttl time.Duration, max int) OptionFunc {
	return func(opts *Options) {
		opts.TTL = ttl
		opts.Max = max
	}
}

func WithLogger(logger *slog.Logger) OptionFunc {
	return func(opts *Options) {
		if logger != nil {
			opts.Logger = logger
		}
	}
}

func WithRegistry(registry *prometheus.Registry) OptionFunc {
	return func(opts *Options) {
		opts.Registry = registry
	}
}
