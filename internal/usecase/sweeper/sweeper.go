package sweeper

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/crm-backend/internal/domain/repositories"
	"github.com/johnquangdev/crm-backend/pkg/metrics"
)

// Sweeper periodically transitions meetings whose scheduled window has
// elapsed into the completed status. It is intentionally quiet: auto
// completion sends no notifications, and a meeting that fails to update is
// logged and retried on the next tick.
type Sweeper struct {
	meetings repositories.MeetingRepository
	interval time.Duration
	logger   *zap.Logger

	// now is swapped out in tests
	now func() time.Time
}

// NewSweeper creates a new lifecycle sweeper
func NewSweeper(meetings repositories.MeetingRepository, interval time.Duration, logger *zap.Logger) *Sweeper {
	return &Sweeper{
		meetings: meetings,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

// Run blocks, sweeping on every tick until the context is cancelled.
// A sweep fires immediately on startup so a restart doesn't leave stale
// meetings waiting a full interval.
func (s *Sweeper) Run(ctx context.Context) {
	s.logger.Info("sweeper.start", zap.Duration("interval", s.interval))

	s.Sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("sweeper.stop")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep runs a single pass: every live meeting whose start time has passed is
// checked, and those whose full window (start + duration) has elapsed are
// completed. Per-meeting failures are logged and skipped so one bad row
// cannot stall the rest of the batch.
func (s *Sweeper) Sweep(ctx context.Context) {
	runID := uuid.New().String()
	now := s.now()

	metrics.SweeperRuns.Inc()

	due, err := s.meetings.FindDue(ctx, now)
	if err != nil {
		metrics.SweeperErrors.Inc()
		s.logger.Error("sweeper.scan failed", zap.String("run_id", runID), zap.Error(err))
		return
	}

	if len(due) == 0 {
		return
	}

	completed := 0
	for _, meeting := range due {
		// Started but still inside its window: leave it alone.
		if !meeting.EndTime().Before(now) {
			continue
		}

		if err := s.meetings.Complete(ctx, meeting.ID); err != nil {
			metrics.SweeperErrors.Inc()
			s.logger.Error("sweeper.complete failed",
				zap.String("run_id", runID),
				zap.Uint("meeting_id", meeting.ID),
				zap.Error(err),
			)
			continue
		}

		metrics.SweeperCompleted.Inc()
		completed++
	}

	if completed > 0 {
		s.logger.Info("sweeper.run",
			zap.String("run_id", runID),
			zap.Int("due", len(due)),
			zap.Int("completed", completed),
		)
	}
}
