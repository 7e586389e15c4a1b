package formbuilder

import (
	"io/fs"

	"github.com/goliatone/go-formbuilder/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in HTML templates so callers can copy
// or override them through vanilla.WithTemplatesFS.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// EmbeddedAssets exposes the default stylesheet for serving over HTTP.
func EmbeddedAssets() fs.FS {
	return vanilla.AssetsFS()
}
