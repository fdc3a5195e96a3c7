package twitterimpl

import (
	"net/http"
	"time"

	"github.com/mediarelay/twitter-media-telegram-bot/internal/twitter"
	"github.com/mediarelay/twitter-media-telegram-bot/pkg/config"
	"github.com/mediarelay/twitter-media-telegram-bot/pkg/logger"
	"github.com/mediarelay/twitter-media-telegram-bot/pkg/retry"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

type TwitterImpl struct {
	httpClient *http.Client
	baseURL    string
	retryCfg   retry.Config
	logger     logger.Logger
}

func New(opts Opts) *TwitterImpl {
	return &TwitterImpl{
		httpClient: &http.Client{
			Timeout: time.Duration(opts.Config.Twitter.TimeoutSeconds) * time.Second,
		},
		baseURL: opts.Config.Twitter.BaseURL,
		// One retry on transient upstream failures, none on client errors.
		retryCfg: retry.Config{
			MaxRetries:      1,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     2 * time.Second,
			Multiplier:      2,
		},
		logger: opts.Logger.WithComponent("TwitterClient"),
	}
}

var _ twitter.Client = (*TwitterImpl)(nil)
