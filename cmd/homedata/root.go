package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/homedata"
	"github.com/dmitrymomot/homedata/pkg/config"
	"github.com/dmitrymomot/homedata/pkg/logger"
	"github.com/dmitrymomot/homedata/pkg/requestid"
)

const serviceName = "homedata"

// env is shared by all subcommands once the root pre-run loaded it.
type env struct {
	cfg homedata.Config
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	e := &env{}
	var envFiles []string

	root := &cobra.Command{
		Use:               serviceName,
		Short:             "Home data web application",
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load[homedata.Config](config.WithEnvFiles(envFiles...))
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			e.cfg, e.log = cfg, log
			logger.SetAsDefault(log)
			return nil
		},
	}
	root.PersistentFlags().StringSliceVar(&envFiles, "env-file", []string{config.DefaultEnvFile}, "dotenv files to load, earlier files win")

	root.AddCommand(newServeCmd(e), newStylesCmd(e))
	return root
}

func newLogger(cfg homedata.Config) (*slog.Logger, error) {
	opts := []logger.Option{
		logger.WithEnvironment(cfg.Env, serviceName),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	}
	if cfg.LogLevel != "" {
		level, err := logger.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("LOG_LEVEL: %w", err)
		}
		opts = append(opts, logger.WithLevel(level))
	}
	return logger.New(opts...), nil
}
