package counters

import (
	"context"

	"github.com/mediarelay/twitter-media-telegram-bot/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=counters.go -destination=mocks/mock.go
type Repository interface {
	// Load returns the persisted counters, or zeroed counters when nothing
	// has been persisted yet.
	Load(ctx context.Context) (domain.UsageCounters, error)
	Save(ctx context.Context, c domain.UsageCounters) error
}
