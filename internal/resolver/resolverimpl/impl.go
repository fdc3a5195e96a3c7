package resolverimpl

import (
	"context"
	"errors"

	"github.com/mediarelay/twitter-media-telegram-bot/internal/domain"
	"github.com/mediarelay/twitter-media-telegram-bot/internal/resolver"
	"github.com/mediarelay/twitter-media-telegram-bot/internal/selector"
	"github.com/mediarelay/twitter-media-telegram-bot/internal/stats"
	"github.com/mediarelay/twitter-media-telegram-bot/internal/twitter"
	"github.com/mediarelay/twitter-media-telegram-bot/pkg/logger"
	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"
)

type Opts struct {
	fx.In

	Twitter twitter.Client
	Stats   stats.Client
	Logger  logger.Logger
}

type ResolverImpl struct {
	twitter twitter.Client
	stats   stats.Client
	logger  logger.Logger
}

func New(opts Opts) *ResolverImpl {
	return &ResolverImpl{
		twitter: opts.Twitter,
		stats:   opts.Stats,
		logger:  opts.Logger.WithComponent("Resolver"),
	}
}

var _ resolver.Client = (*ResolverImpl)(nil)

func (r *ResolverImpl) Resolve(ctx context.Context, ref domain.PostRef, identity string) (*domain.ResolvedPost, error) {
	post, err := r.resolve(ctx, ref)

	outcome := domain.Succeeded()
	if err != nil {
		outcome = domain.Failed(causeOf(err))
		r.logger.Warn("Resolution failed", "ref", ref, "cause", outcome.Cause, "error", err)
	}
	r.stats.Record(ctx, outcome, identity)

	return post, err
}

func (r *ResolverImpl) resolve(ctx context.Context, ref domain.PostRef) (*domain.ResolvedPost, error) {
	raw, err := r.twitter.GetPost(ctx, ref)
	if err != nil {
		return nil, err
	}

	resolved := &domain.ResolvedPost{
		Ref:    raw.Ref,
		Author: raw.Author,
		Text:   raw.Text,
		Items:  make([]domain.ResolvedItem, len(raw.Items)),
	}

	// Items are independent, so selection runs in parallel and joins here
	// before delivery can start.
	g, _ := errgroup.WithContext(ctx)
	for i, item := range raw.Items {
		g.Go(func() error {
			chosen, err := selector.Pick(item)
			if err != nil {
				return &resolver.PartialMediaError{Index: item.Index, Err: err}
			}
			resolved.Items[i] = domain.ResolvedItem{
				Index:  item.Index,
				Kind:   item.Kind,
				Chosen: chosen,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return resolved, nil
}

func causeOf(err error) domain.Cause {
	var partial *resolver.PartialMediaError
	switch {
	case errors.Is(err, twitter.ErrNotFound):
		return domain.CauseNotFound
	case errors.Is(err, twitter.ErrForbidden):
		return domain.CauseForbidden
	case errors.Is(err, twitter.ErrNoMedia):
		return domain.CauseNoMedia
	case errors.Is(err, twitter.ErrUpstreamUnavailable):
		return domain.CauseUpstreamUnavailable
	case errors.As(err, &partial):
		return domain.CausePartialMediaFailure
	default:
		return domain.CauseInternal
	}
}
