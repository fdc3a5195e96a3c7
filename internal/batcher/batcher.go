package batcher

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/mediarelay/twitter-media-telegram-bot/internal/domain"
)

// ErrChannelRejected means the outbound channel refused a submitted group.
// No further groups of the same post are attempted after it.
var ErrChannelRejected = errors.New("outbound channel rejected the group")

// DownloadError means one item's byte transfer failed after exhausting its
// retry budget. Inside a multi-item group it degrades delivery instead of
// failing it.
type DownloadError struct {
	Index int
	Err   error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download of item %d failed: %v", e.Index, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }

// Destination addresses one outbound conversation.
type Destination struct {
	ChatID  int64
	ReplyTo int
}

// Item is one media payload handed to the channel. Data streams the media
// bytes; the channel consumes and closes it.
type Item struct {
	Index   int
	Kind    domain.MediaKind
	Caption string
	Name    string
	Data    io.ReadCloser
	Size    int64
}

// Channel is the outbound messaging surface. It exposes the batching
// constraints the partitioner has to respect.
type Channel interface {
	MaxGroupSize() int
	SupportsMixedKindGroups() bool
	SendGroup(ctx context.Context, dest Destination, items []Item) error
}

//go:generate go run go.uber.org/mock/mockgen -source=batcher.go -destination=mocks/mock.go
type Client interface {
	// Deliver partitions the post into channel-sized groups, downloads every
	// chosen representation and submits the groups in order. Items whose
	// download fails are dropped from their group and listed in the report.
	Deliver(ctx context.Context, post *domain.ResolvedPost, dest Destination) (*domain.DeliveryReport, error)
}
