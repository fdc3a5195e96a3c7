package statsimpl

import (
	"context"
	"sync"

	"github.com/mediarelay/twitter-media-telegram-bot/internal/domain"
	"github.com/mediarelay/twitter-media-telegram-bot/internal/repositories/counters"
	"github.com/mediarelay/twitter-media-telegram-bot/internal/stats"
	"github.com/mediarelay/twitter-media-telegram-bot/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In
	LC fx.Lifecycle

	Repo       counters.Repository
	Authorizer stats.Authorizer
	Logger     logger.Logger
}

type StatsImpl struct {
	mu       sync.Mutex
	counters domain.UsageCounters
	dirty    bool

	repo       counters.Repository
	authorizer stats.Authorizer
	logger     logger.Logger
}

func New(opts Opts) *StatsImpl {
	s := &StatsImpl{
		counters:   domain.NewUsageCounters(),
		repo:       opts.Repo,
		authorizer: opts.Authorizer,
		logger:     opts.Logger.WithComponent("Stats"),
	}

	opts.LC.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			loaded, err := s.repo.Load(ctx)
			if err != nil {
				return err
			}
			s.mu.Lock()
			s.counters = loaded
			s.mu.Unlock()
			s.logger.Info("Loaded usage counters", "total_requests", loaded.TotalRequests)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return s.Flush(ctx)
		},
	})

	return s
}

// NewForTest builds a stats service without fx lifecycle management.
func NewForTest(repo counters.Repository, authorizer stats.Authorizer, log logger.Logger) *StatsImpl {
	s := &StatsImpl{
		counters:   domain.NewUsageCounters(),
		repo:       repo,
		authorizer: authorizer,
		logger:     log.WithComponent("Stats"),
	}
	if loaded, err := repo.Load(context.Background()); err == nil {
		s.counters = loaded
	}
	return s
}

var _ stats.Client = (*StatsImpl)(nil)

func (s *StatsImpl) Record(ctx context.Context, outcome domain.Outcome, identity string) {
	s.mu.Lock()
	s.counters.TotalRequests++
	if outcome.Success {
		s.counters.Successes++
	} else {
		s.counters.FailuresByCause[outcome.Cause]++
	}
	if identity != "" {
		s.counters.RequestsByIdentity[identity]++
	}
	s.saveLocked(ctx)
	s.mu.Unlock()
}

func (s *StatsImpl) RecordDelivered(ctx context.Context, count int) {
	if count <= 0 {
		return
	}
	s.mu.Lock()
	s.counters.MediaDelivered += count
	s.saveLocked(ctx)
	s.mu.Unlock()
}

func (s *StatsImpl) Snapshot() domain.UsageCounters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counters.Clone()
}

func (s *StatsImpl) Reset(ctx context.Context, identity string) error {
	if s.authorizer == nil || !s.authorizer.IsAuthorized(identity) {
		return stats.ErrUnauthorized
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters = domain.NewUsageCounters()
	if err := s.repo.Save(ctx, s.counters.Clone()); err != nil {
		s.dirty = true
		return err
	}
	s.dirty = false
	return nil
}

// Flush persists the counters if an earlier save failed. Used by the
// periodic flush job and on shutdown.
func (s *StatsImpl) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return nil
	}
	if err := s.repo.Save(ctx, s.counters.Clone()); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

// saveLocked flushes after a mutation. A failed save only marks the state
// dirty so the flush job can catch up; recording never fails the request.
func (s *StatsImpl) saveLocked(ctx context.Context) {
	if err := s.repo.Save(ctx, s.counters.Clone()); err != nil {
		s.dirty = true
		s.logger.Warn("Failed to persist usage counters", "error", err)
		return
	}
	s.dirty = false
}
