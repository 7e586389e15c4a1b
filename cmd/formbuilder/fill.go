package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/internal/setup"
	"github.com/goliatone/go-formbuilder/pkg/details"
	"github.com/goliatone/go-formbuilder/pkg/renderers/tui"
)

type fillOptions struct {
	Format string
	Plain  bool
}

func newFillCmd(root *rootOptions) *cobra.Command {
	var opts fillOptions

	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill the form interactively in the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, logger, err := loadConfig(root)
			if err != nil {
				return err
			}

			format, err := details.ParseOutputFormat(opts.Format)
			if err != nil {
				return errors.WithStack(err)
			}

			display := details.NewWriter(cmd.OutOrStdout(),
				details.WithFormat(format),
				details.WithStyled(!opts.Plain),
			)

			w, err := setup.NewWidgetFromConfig(cmd.Context(), conf, logger, display)
			if err != nil {
				return errors.WithStack(err)
			}

			session := tui.New(
				tui.WithPromptDriver(tui.NewSurveyDriver(os.Stderr)),
				tui.WithLogger(logger),
			)

			if err := session.Run(cmd.Context(), w); err != nil {
				if errors.Is(err, tui.ErrAborted) {
					return nil
				}
				return errors.WithStack(err)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Format, "format", string(details.OutputFormatPrettyText), "format of the submitted details (json, form, pretty)")
	cmd.Flags().BoolVar(&opts.Plain, "plain", false, "disable terminal styling of the submitted details")
	return cmd
}
