package main

import (
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/homedata/pkg/logger"
	"github.com/dmitrymomot/homedata/pkg/stylesheet"
)

func newStylesCmd(e *env) *cobra.Command {
	styles := &cobra.Command{
		Use:   "styles",
		Short: "Compile the LESS stylesheets",
	}

	styles.AddCommand(
		&cobra.Command{
			Use:   "build",
			Short: "Compile once",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return newBuilder(e).Build(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "watch",
			Short: "Compile, then recompile on every change until interrupted",
			RunE: func(cmd *cobra.Command, _ []string) error {
				b := newBuilder(e)
				if err := b.Build(cmd.Context()); err != nil {
					e.log.Error("initial stylesheet build failed", logger.Error(err))
				}
				return stylesheet.NewWatcher(b).Run(cmd.Context())
			},
		},
	)
	return styles
}

func newBuilder(e *env) *stylesheet.Builder {
	return stylesheet.NewBuilder(e.cfg.Styles, stylesheet.WithLogger(e.log))
}
