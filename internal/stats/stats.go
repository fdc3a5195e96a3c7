package stats

import (
	"context"
	"errors"

	"github.com/mediarelay/twitter-media-telegram-bot/internal/domain"
)

// ErrUnauthorized is returned by Reset for any identity other than the
// configured one. No counter is touched in that case.
var ErrUnauthorized = errors.New("identity is not authorized to reset counters")

// Authorizer decides whether an identity may reset the counters.
type Authorizer interface {
	IsAuthorized(identity string) bool
}

//go:generate go run go.uber.org/mock/mockgen -source=stats.go -destination=mocks/mock.go
type Client interface {
	// Record notes one resolution attempt. It is the sole mutator besides
	// Reset and is safe for concurrent use.
	Record(ctx context.Context, outcome domain.Outcome, identity string)

	// RecordDelivered adds to the delivered-media total after a successful
	// delivery.
	RecordDelivered(ctx context.Context, count int)

	Snapshot() domain.UsageCounters
	Reset(ctx context.Context, identity string) error
}
