package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/homedata"
	"github.com/dmitrymomot/homedata/pkg/cookie"
	"github.com/dmitrymomot/homedata/pkg/httpserver"
	"github.com/dmitrymomot/homedata/pkg/logger"
	"github.com/dmitrymomot/homedata/pkg/mongo"
	"github.com/dmitrymomot/homedata/pkg/redis"
	"github.com/dmitrymomot/homedata/pkg/session"
	"github.com/dmitrymomot/homedata/routes"
	"github.com/dmitrymomot/homedata/views"
)

func newServeCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), e.cfg, e.log)
		},
	}
}

func serve(ctx context.Context, cfg homedata.Config, log *slog.Logger) error {
	if len(cfg.Cookie.SecretList()) == 0 {
		secret, err := cookie.RandomSecret()
		if err != nil {
			return err
		}
		cfg.Cookie.Secrets = secret
		log.Warn("COOKIE_SECRETS is not set, using a random secret; sessions will not survive a restart")
	}
	cookies, err := cookie.NewFromConfig(cfg.Cookie)
	if err != nil {
		return fmt.Errorf("cookie manager: %w", err)
	}

	db, err := mongo.NewWithDatabase(ctx, cfg.Mongo)
	if err != nil {
		return fmt.Errorf("connect mongodb: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := mongo.Close(closeCtx, db); err != nil {
			log.Error("disconnect mongodb", logger.Error(err))
		}
	}()
	log.Info("connected to mongodb", slog.String("database", cfg.Mongo.Database))

	checks := []httpserver.Check{{Name: "mongodb", Fn: mongo.Healthcheck(db.Client())}}

	var rdb *goredis.Client
	if cfg.Session.Store == session.StoreRedis {
		rdb, err = redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer rdb.Close()
		checks = append(checks, httpserver.Check{Name: "redis", Fn: redis.Healthcheck(rdb)})
	}

	backends := session.Backends{Mongo: db}
	if rdb != nil {
		backends.Redis = rdb
	}
	store, err := session.NewStore(ctx, cfg.Session, backends)
	if err != nil {
		return fmt.Errorf("session store: %w", err)
	}

	sessions, err := session.New(
		session.WithCookieManager(cookies),
		session.WithConfig(cfg.Session),
		session.WithStore(store),
		session.WithLogger(log.With(logger.Component("session"))),
	)
	if err != nil {
		return fmt.Errorf("session manager: %w", err)
	}
	defer sessions.Close()

	renderer := views.New()
	app, err := homedata.New(cfg, homedata.Deps{
		Logger:   log,
		Sessions: sessions,
		Renderer: renderer,
		Routes: routes.New(routes.Deps{
			Renderer: renderer,
			Logger:   log,
			Sessions: sessions,
			Checks:   checks,
		}),
	}, homedata.WithTopLevel())
	if err != nil {
		return err
	}

	srv := httpserver.NewFromConfig(cfg.HTTP,
		httpserver.WithLogger(log),
		httpserver.WithStartHook(func(l *slog.Logger, addr string) {
			l.Info("homedata started", slog.String("addr", addr), slog.String("env", cfg.Env))
		}),
	)
	if err := srv.Run(ctx, app); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
