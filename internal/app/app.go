package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	_ "github.com/lib/pq"
	"github.com/mediarelay/twitter-media-telegram-bot/internal/batcher"
	"github.com/mediarelay/twitter-media-telegram-bot/internal/batcher/batcherimpl"
	"github.com/mediarelay/twitter-media-telegram-bot/internal/command"
	"github.com/mediarelay/twitter-media-telegram-bot/internal/command/commandimpl"
	_ "github.com/mediarelay/twitter-media-telegram-bot/internal/migrations"
	repositories "github.com/mediarelay/twitter-media-telegram-bot/internal/repositories/fx"
	"github.com/mediarelay/twitter-media-telegram-bot/internal/resolver"
	"github.com/mediarelay/twitter-media-telegram-bot/internal/resolver/resolverimpl"
	"github.com/mediarelay/twitter-media-telegram-bot/internal/stats"
	"github.com/mediarelay/twitter-media-telegram-bot/internal/stats/statsimpl"
	"github.com/mediarelay/twitter-media-telegram-bot/internal/telegram"
	"github.com/mediarelay/twitter-media-telegram-bot/internal/telegram/telegramimpl"
	"github.com/mediarelay/twitter-media-telegram-bot/internal/twitter"
	"github.com/mediarelay/twitter-media-telegram-bot/internal/twitter/twitterimpl"
	"github.com/mediarelay/twitter-media-telegram-bot/pkg/config"
	"github.com/mediarelay/twitter-media-telegram-bot/pkg/logger"
	"github.com/pressly/goose/v3"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
	),
	fx.Provide(
		fx.Annotate(
			telegramimpl.New,
			fx.As(new(telegram.Client)),
			fx.As(new(batcher.Channel)),
		),
		fx.Annotate(
			twitterimpl.New,
			fx.As(new(twitter.Client)),
		),
		fx.Annotate(
			resolverimpl.New,
			fx.As(new(resolver.Client)),
		),
		fx.Annotate(
			batcherimpl.New,
			fx.As(new(batcher.Client)),
		),
		fx.Annotate(
			statsimpl.NewAuthorizer,
			fx.As(new(stats.Authorizer)),
		),
		fx.Annotate(
			statsimpl.New,
			fx.As(new(stats.Client)),
			fx.As(fx.Self()),
		),
		fx.Annotate(
			commandimpl.New,
			fx.As(new(command.Client)),
		),
	),
	repositories.Module,
	fx.Invoke(migrate),
	fx.Invoke(run),
)

// migrate applies the goose migrations when the postgres counter backend is
// in use. The file backend needs no schema.
func migrate(cfg *config.Config) error {
	if cfg.Stats.Backend != "postgres" {
		return nil
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return err
	}
	defer db.Close()

	wd, err := os.Getwd()
	if err != nil {
		return err
	}

	return goose.Up(db, filepath.Join(wd, "internal", "migrations"))
}

func run(lc fx.Lifecycle, log logger.Logger, cfg *config.Config,
	cmdClient command.Client, statsService *statsimpl.StatsImpl) {

	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go startHttpServer(log, cfg)

			if err := statsService.ScheduleJobs(ctx); err != nil {
				return err
			}

			go func() {
				if err := cmdClient.HandleUpdates(ctx); err != nil {
					log.Error("Update handler stopped", "error", err)
				}
			}()

			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}

func startHttpServer(log logger.Logger, cfg *config.Config) {
	http.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		healthCheckHandler(w, r, log)
	})

	log.Info(fmt.Sprintf("Starting server on :%d", cfg.App.Port))

	if err := http.ListenAndServe(fmt.Sprintf(":%d", cfg.App.Port), nil); err != nil {
		log.Error("Server failed to start", "error", err)
	}
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request, logger logger.Logger) {
	logger.Debug("Health check request received", "Method", r.Method, "URL", r.URL.String())
	w.Header().Set("Content-Type", "text/plain")
	if _, err := w.Write([]byte("ok")); err != nil {
		logger.Error("Failed to write response", "Error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
