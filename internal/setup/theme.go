package setup

import (
	theme "github.com/goliatone/go-theme"
	"github.com/pkg/errors"

	"github.com/goliatone/go-formbuilder/internal/config"
	"github.com/goliatone/go-formbuilder/pkg/themes"
)

// ThemeFromConfig resolves the configured theme. It returns nil when no
// manifest file is configured.
func ThemeFromConfig(conf *config.Config) (*theme.RendererConfig, error) {
	if conf.Theme.File == "" {
		return nil, nil
	}

	manifests, err := themes.LoadFile(conf.Theme.File)
	if err != nil {
		return nil, errors.Wrapf(err, "could not load theme manifests '%s'", conf.Theme.File)
	}

	selector, err := themes.NewSelector(manifests, conf.Theme.Name, conf.Theme.Variant)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	selection, err := selector.Select(conf.Theme.Name, conf.Theme.Variant)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return themes.RendererConfig(selection), nil
}
