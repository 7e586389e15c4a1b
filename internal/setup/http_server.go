package setup

import (
	"context"
	"log/slog"
	"strings"

	"github.com/pkg/errors"

	"github.com/goliatone/go-formbuilder/internal/config"
	"github.com/goliatone/go-formbuilder/internal/server"
	"github.com/goliatone/go-formbuilder/pkg/details"
	"github.com/goliatone/go-formbuilder/pkg/renderers/vanilla"
)

func NewHTTPServerFromConfig(ctx context.Context, conf *config.Config, logger *slog.Logger, display details.Display) (*server.Server, error) {
	factory, err := WidgetFactoryFromConfig(ctx, conf, logger)
	if err != nil {
		return nil, errors.Wrap(err, "could not configure widget factory from config")
	}

	themeConfig, err := ThemeFromConfig(conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not configure theme from config")
	}

	stylesheet := strings.TrimRight(conf.HTTP.BaseURL, "/") + "/assets/" + vanilla.StylesheetName

	renderer, err := vanilla.New(vanilla.WithStylesheet(stylesheet))
	if err != nil {
		return nil, errors.Wrap(err, "could not configure renderer")
	}

	options := []server.OptionFunc{
		server.WithAddress(conf.HTTP.Address),
		server.WithBaseURL(conf.HTTP.BaseURL),
		server.WithWidgetFactory(factory),
		server.WithRenderer(renderer),
		server.WithAssets(vanilla.AssetsFS()),
		server.WithInstanceLimits(conf.Instances.TTL, conf.Instances.Max),
		server.WithLogger(logger),
	}
	if themeConfig != nil {
		options = append(options, server.WithTheme(themeConfig))
	}
	if display != nil {
		options = append(options, server.WithDetailsDisplay(display))
	}

	return server.NewServer(options...), nil
}
