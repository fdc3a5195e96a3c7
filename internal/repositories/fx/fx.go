package fx

import (
	"github.com/mediarelay/twitter-media-telegram-bot/internal/repositories/counters"
	"go.uber.org/fx"
)

var Module = fx.Options(
	counters.Module,
)
