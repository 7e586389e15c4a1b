package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/internal/setup"
	"github.com/goliatone/go-formbuilder/internal/slogx"
	"github.com/goliatone/go-formbuilder/pkg/details"
)

type serveOptions struct {
	Address string
	Format  string
}

func newServeCmd(root *rootOptions) *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve form widgets over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, logger, err := loadConfig(root)
			if err != nil {
				return err
			}
			if opts.Address != "" {
				conf.HTTP.Address = opts.Address
			}

			format, err := details.ParseOutputFormat(opts.Format)
			if err != nil {
				return errors.WithStack(err)
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer cancel()

			slog.DebugContext(ctx, "using configuration", slog.Any("config", conf))

			display := details.NewWriter(os.Stdout, details.WithFormat(format))

			server, err := setup.NewHTTPServerFromConfig(ctx, conf, logger, display)
			if err != nil {
				return errors.Wrap(err, "could not setup http server")
			}

			slog.InfoContext(ctx, "use ctrl+c to interrupt")

			if err := server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				slog.ErrorContext(ctx, "could not run server", slogx.Error(errors.WithStack(err)))
				return err
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Address, "address", "", "listen address, overrides FORMBUILDER_HTTP_ADDRESS")
	cmd.Flags().StringVar(&opts.Format, "format", string(details.OutputFormatJSON), "format of submissions written to stdout (json, form, pretty)")
	return cmd
}
