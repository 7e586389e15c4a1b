package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/internal/setup"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/tui"
	"github.com/goliatone/go-formbuilder/pkg/renderers/vanilla"
)

type renderOptions struct {
	Renderer string
	State    string
	Action   string
	Output   string
	Inline   bool
}

func newRenderCmd(root *rootOptions) *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the seeded form once and print it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			conf, logger, err := loadConfig(root)
			if err != nil {
				return err
			}

			state, err := model.ParseViewState(opts.State)
			if err != nil {
				return errors.WithStack(err)
			}
			if state == model.ViewSubmitted {
				return errors.New("only the editing and previewing views can be rendered")
			}

			vanillaOptions := []vanilla.Option{}
			if opts.Inline {
				vanillaOptions = append(vanillaOptions, vanilla.WithDefaultStyles())
			}
			html, err := vanilla.New(vanillaOptions...)
			if err != nil {
				return errors.WithStack(err)
			}

			registry := render.NewRegistry()
			registry.MustRegister(html)
			registry.MustRegister(tui.New())

			renderer, err := registry.Get(opts.Renderer)
			if err != nil {
				return errors.WithStack(err)
			}

			w, err := setup.NewWidgetFromConfig(ctx, conf, logger, nil)
			if err != nil {
				return errors.WithStack(err)
			}
			if state == model.ViewPreviewing {
				if err := w.TogglePreview(ctx); err != nil {
					return errors.WithStack(err)
				}
			}

			themeConfig, err := setup.ThemeFromConfig(conf)
			if err != nil {
				return errors.WithStack(err)
			}

			output, err := renderer.Render(ctx, w.Snapshot(), render.RenderOptions{
				Action: opts.Action,
				Theme:  themeConfig,
			})
			if err != nil {
				return errors.WithStack(err)
			}

			if opts.Output == "" {
				_, err := cmd.OutOrStdout().Write(output)
				return errors.WithStack(err)
			}

			if err := os.WriteFile(opts.Output, output, 0o644); err != nil {
				return errors.WithStack(err)
			}
			cmd.PrintErrf("Form written to %s\n", opts.Output)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Renderer, "renderer", "vanilla", "renderer to use (vanilla, tui)")
	cmd.Flags().StringVar(&opts.State, "state", "editing", "view to render (editing, previewing)")
	cmd.Flags().StringVar(&opts.Action, "action", "", "base url the rendered controls post to")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.Inline, "inline-styles", true, "inline the default stylesheet")
	return cmd
}
