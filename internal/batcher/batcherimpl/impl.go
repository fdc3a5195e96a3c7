package batcherimpl

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mediarelay/twitter-media-telegram-bot/internal/batcher"
	"github.com/mediarelay/twitter-media-telegram-bot/internal/domain"
	"github.com/mediarelay/twitter-media-telegram-bot/pkg/logger"
	"github.com/mediarelay/twitter-media-telegram-bot/pkg/retry"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Channel batcher.Channel
	Logger  logger.Logger
}

type BatcherImpl struct {
	channel    batcher.Channel
	httpClient *http.Client
	retryCfg   retry.Config
	logger     logger.Logger
}

func New(opts Opts) *BatcherImpl {
	return &BatcherImpl{
		channel: opts.Channel,
		httpClient: &http.Client{
			// Downloads stream large videos; only the dial is bounded here,
			// the request itself is bounded by the caller's context.
			Transport: &http.Transport{
				ResponseHeaderTimeout: 30 * time.Second,
			},
		},
		// Up to two attempts per item.
		retryCfg: retry.Config{
			MaxRetries:      1,
			InitialInterval: time.Second,
			MaxInterval:     4 * time.Second,
			Multiplier:      2,
		},
		logger: opts.Logger.WithComponent("Batcher"),
	}
}

var _ batcher.Client = (*BatcherImpl)(nil)

func (b *BatcherImpl) Deliver(ctx context.Context, post *domain.ResolvedPost, dest batcher.Destination) (*domain.DeliveryReport, error) {
	groups := batcher.Partition(post.Items, b.channel.MaxGroupSize(), b.channel.SupportsMixedKindGroups())
	report := &domain.DeliveryReport{}

	caption := captionFor(post)

	for gi, group := range groups {
		items := make([]batcher.Item, 0, len(group.Items))
		for _, resolved := range group.Items {
			body, size, err := b.download(ctx, resolved)
			if err != nil {
				// The rest of the group still goes out.
				b.logger.Warn("Dropping item from delivery",
					"ref", post.Ref, "item", resolved.Index, "error", err)
				report.Dropped = append(report.Dropped, domain.DroppedItem{
					Index: resolved.Index,
					Cause: domain.CauseDownloadFailed,
				})
				continue
			}

			item := batcher.Item{
				Index: resolved.Index,
				Kind:  resolved.Kind,
				Name:  fileName(post.Ref, resolved),
				Data:  body,
				Size:  size,
			}
			// The caption rides on the very first delivered item.
			if gi == 0 && len(items) == 0 && report.Delivered == 0 {
				item.Caption = caption
			}
			items = append(items, item)
		}

		if len(items) == 0 {
			continue
		}

		if err := b.channel.SendGroup(ctx, dest, items); err != nil {
			// A channel rejection is fatal: the rejected group and every
			// group after it count as dropped.
			for _, it := range items {
				report.Dropped = append(report.Dropped, domain.DroppedItem{
					Index: it.Index,
					Cause: domain.CauseChannelRejected,
				})
			}
			for _, rest := range groups[gi+1:] {
				for _, it := range rest.Items {
					report.Dropped = append(report.Dropped, domain.DroppedItem{
						Index: it.Index,
						Cause: domain.CauseChannelRejected,
					})
				}
			}
			return report, fmt.Errorf("%w: group %d of %d", batcher.ErrChannelRejected, gi+1, len(groups))
		}
		report.Delivered += len(items)
	}

	b.logger.Info("Delivered post",
		"ref", post.Ref, "delivered", report.Delivered, "dropped", len(report.Dropped))
	return report, nil
}

// fileName builds the upload name the channel shows for a payload. The
// extension matches the representation so type sniffing on the other side
// has something to go on.
func fileName(ref domain.PostRef, item domain.ResolvedItem) string {
	ext := ".mp4"
	if item.Kind == domain.KindImage {
		ext = ".jpg"
	}
	return fmt.Sprintf("%s_%d%s", ref, item.Index, ext)
}

func captionFor(post *domain.ResolvedPost) string {
	if post.Text == "" {
		return ""
	}
	if post.Author != "" {
		return fmt.Sprintf("From @%s:\n\n%s", post.Author, post.Text)
	}
	return post.Text
}
