package statsimpl

import (
	"strconv"

	"github.com/mediarelay/twitter-media-telegram-bot/internal/stats"
	"github.com/mediarelay/twitter-media-telegram-bot/pkg/config"
)

// DeveloperAuthorizer authorizes exactly the configured developer chat.
type DeveloperAuthorizer struct {
	developerID string
}

func NewAuthorizer(cfg *config.Config) *DeveloperAuthorizer {
	return &DeveloperAuthorizer{
		developerID: strconv.FormatInt(cfg.Telegram.DeveloperID, 10),
	}
}

var _ stats.Authorizer = (*DeveloperAuthorizer)(nil)

func (a *DeveloperAuthorizer) IsAuthorized(identity string) bool {
	return identity != "" && identity == a.developerID
}
