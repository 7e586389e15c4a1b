package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/internal/config"
	"github.com/goliatone/go-formbuilder/internal/slogx"
)

type rootOptions struct {
	LogLevel string
}

func newRootCmd() *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:           "formbuilder",
		Short:         "Dynamic form widget: serve it over HTTP, fill it in a terminal or render it to HTML",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "logging level, overrides FORMBUILDER_LOGGER_LEVEL")

	cmd.AddCommand(newServeCmd(&opts))
	cmd.AddCommand(newFillCmd(&opts))
	cmd.AddCommand(newRenderCmd(&opts))
	return cmd
}

func Execute() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// loadConfig parses the environment and builds the process logger.
func loadConfig(opts *rootOptions) (*config.Config, *slog.Logger, error) {
	conf, err := config.Parse()
	if err != nil {
		return nil, nil, errors.Wrap(err, "could not parse config")
	}

	level := conf.Logger.Level
	if opts.LogLevel != "" {
		if err := level.UnmarshalText([]byte(opts.LogLevel)); err != nil {
			return nil, nil, errors.Wrap(err, "could not parse log level")
		}
	}

	logger := slog.New(slogx.ContextHandler{
		Handler: slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level:     level,
			AddSource: true,
		}),
	})
	slog.SetDefault(logger)

	return conf, logger, nil
}
