package counters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mediarelay/twitter-media-telegram-bot/internal/domain"
	"github.com/mediarelay/twitter-media-telegram-bot/internal/repositories"
	"github.com/mediarelay/twitter-media-telegram-bot/pkg/logger"
)

// counterRowID is the fixed key of the single usage_counters row.
const counterRowID = 1

type PgxRepository struct {
	pool   *pgxpool.Pool
	logger logger.Logger
}

func NewPgxRepository(pool *pgxpool.Pool, logger logger.Logger) *PgxRepository {
	return &PgxRepository{
		pool:   pool,
		logger: logger.WithComponent("CountersPgxRepo"),
	}
}

var _ Repository = (*PgxRepository)(nil)

func (r *PgxRepository) Load(ctx context.Context) (domain.UsageCounters, error) {
	query, args, err := repositories.SqBuilder.
		Select("total_requests", "successes", "media_delivered", "failures_by_cause", "requests_by_identity").
		From("usage_counters").
		Where(sq.Eq{"id": counterRowID}).
		ToSql()
	if err != nil {
		return domain.UsageCounters{}, repositories.ErrBadQuery
	}

	var (
		c          = domain.NewUsageCounters()
		causes     []byte
		identities []byte
	)
	err = r.pool.QueryRow(ctx, query, args...).
		Scan(&c.TotalRequests, &c.Successes, &c.MediaDelivered, &causes, &identities)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.NewUsageCounters(), nil
	}
	if err != nil {
		return domain.UsageCounters{}, fmt.Errorf("loading counters: %w", err)
	}

	if err := json.Unmarshal(causes, &c.FailuresByCause); err != nil {
		return domain.UsageCounters{}, fmt.Errorf("decoding failure counters: %w", err)
	}
	if err := json.Unmarshal(identities, &c.RequestsByIdentity); err != nil {
		return domain.UsageCounters{}, fmt.Errorf("decoding identity counters: %w", err)
	}
	return c, nil
}

func (r *PgxRepository) Save(ctx context.Context, c domain.UsageCounters) error {
	causes, err := json.Marshal(c.FailuresByCause)
	if err != nil {
		return fmt.Errorf("encoding failure counters: %w", err)
	}
	identities, err := json.Marshal(c.RequestsByIdentity)
	if err != nil {
		return fmt.Errorf("encoding identity counters: %w", err)
	}

	query, args, err := repositories.SqBuilder.
		Insert("usage_counters").
		Columns("id", "total_requests", "successes", "media_delivered", "failures_by_cause", "requests_by_identity").
		Values(counterRowID, c.TotalRequests, c.Successes, c.MediaDelivered, causes, identities).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			total_requests = EXCLUDED.total_requests,
			successes = EXCLUDED.successes,
			media_delivered = EXCLUDED.media_delivered,
			failures_by_cause = EXCLUDED.failures_by_cause,
			requests_by_identity = EXCLUDED.requests_by_identity,
			updated_at = now()`).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("saving counters: %w", err)
	}
	return nil
}
