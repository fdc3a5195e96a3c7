package counters

import (
	"fmt"

	"github.com/mediarelay/twitter-media-telegram-bot/pkg/config"
	"github.com/mediarelay/twitter-media-telegram-bot/pkg/logger"
	"github.com/mediarelay/twitter-media-telegram-bot/pkg/pgx"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In
	LC fx.Lifecycle

	Config *config.Config
	Logger logger.Logger
}

// NewRepository selects the persistence backend from config. The postgres
// pool is only opened when that backend is actually requested.
func NewRepository(opts Opts) (Repository, error) {
	switch opts.Config.Stats.Backend {
	case "postgres":
		pool, err := pgx.New(pgx.Opts{LC: opts.LC, Logger: opts.Logger, Config: opts.Config})
		if err != nil {
			return nil, err
		}
		return NewPgxRepository(pool, opts.Logger), nil
	case "file":
		return NewFileRepository(opts.Config.Stats.FilePath, opts.Logger), nil
	default:
		return nil, fmt.Errorf("unknown stats backend %q", opts.Config.Stats.Backend)
	}
}

var Module = fx.Provide(NewRepository)
