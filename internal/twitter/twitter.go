package twitter

import (
	"context"
	"errors"

	"github.com/mediarelay/twitter-media-telegram-bot/internal/domain"
)

var (
	// ErrNotFound means the post does not exist or was deleted.
	ErrNotFound = errors.New("post not found")
	// ErrForbidden means the author's account is protected and inaccessible.
	ErrForbidden = errors.New("post is not accessible")
	// ErrNoMedia means the post exists but carries zero attachments.
	ErrNoMedia = errors.New("post has no media")
	// ErrUpstreamUnavailable covers network failures, 5xx responses and
	// upstream payloads we cannot interpret.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

//go:generate go run go.uber.org/mock/mockgen -source=twitter.go -destination=mocks/mock.go
type Client interface {
	// GetPost fetches a post and maps its attachments into media items
	// carrying every representation the upstream advertises. No quality
	// reduction happens here.
	GetPost(ctx context.Context, ref domain.PostRef) (*domain.RawPost, error)
}
