package command

import "context"

type Client interface {
	// HandleUpdates consumes the bot update channel until ctx is cancelled.
	HandleUpdates(ctx context.Context) error
}
