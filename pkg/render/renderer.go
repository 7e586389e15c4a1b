package render

import (
	"context"

	"github.com/goliatone/go-formbuilder/pkg/widget"
)

// Renderer converts a widget snapshot into a byte representation (HTML, plain
// text, etc.). Renderers switch on Snapshot.State to pick the view.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, snapshot widget.Snapshot, options RenderOptions) ([]byte, error)
}
