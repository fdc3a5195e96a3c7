package statsimpl

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// ScheduleJobs starts the periodic counter flush and a daily usage summary.
// The flush is a no-op unless an earlier save failed.
func (s *StatsImpl) ScheduleJobs(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create stats scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(time.Minute),
		gocron.NewTask(func() {
			if ctx.Err() != nil {
				return
			}
			flushCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			if err := s.Flush(flushCtx); err != nil {
				s.logger.Warn("Periodic counter flush failed", "error", err)
			}
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule counter flush: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(gocron.NewAtTime(3, 0, 0)),
		),
		gocron.NewTask(func() {
			snapshot := s.Snapshot()
			s.logger.Info("Daily usage summary",
				"total_requests", snapshot.TotalRequests,
				"successes", snapshot.Successes,
				"media_delivered", snapshot.MediaDelivered,
				"failure_kinds", len(snapshot.FailuresByCause),
			)
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule daily summary: %w", err)
	}

	scheduler.Start()

	go func() {
		<-ctx.Done()
		if err := scheduler.Shutdown(); err != nil {
			s.logger.Error("Failed to shut down stats scheduler", "error", err)
		}
	}()

	return nil
}
