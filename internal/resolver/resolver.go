package resolver

import (
	"context"
	"fmt"

	"github.com/mediarelay/twitter-media-telegram-bot/internal/domain"
)

// PartialMediaError means quality selection failed for one item. The post is
// delivered as a coherent unit, so one bad item fails the whole resolution.
type PartialMediaError struct {
	Index int
	Err   error
}

func (e *PartialMediaError) Error() string {
	return fmt.Sprintf("media item %d could not be resolved: %v", e.Index, e.Err)
}

func (e *PartialMediaError) Unwrap() error { return e.Err }

//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock.go
type Client interface {
	// Resolve fetches a post and reduces every attachment to its best
	// representation. Fetch failures propagate unchanged. The usage
	// counters are incremented exactly once per call, success or failure,
	// tagged with identity.
	Resolve(ctx context.Context, ref domain.PostRef, identity string) (*domain.ResolvedPost, error)
}
