package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// StatsService aggregates a user's tasks into activity statistics.
type StatsService interface {
	// Compute returns the statistics for ownerID as of now.
	Compute(ctx context.Context, ownerID uuid.UUID) (domain.TaskStats, error)
}

// StatsServiceImpl implements StatsService with one aggregate store query per
// call. Nothing is cached.
type StatsServiceImpl struct {
	taskStore store.TaskStore
	logger    *slog.Logger
	now       func() time.Time
}

var _ StatsService = (*StatsServiceImpl)(nil)

// NewStatsService creates a StatsService using the wall clock.
func NewStatsService(taskStore store.TaskStore, logger *slog.Logger) *StatsServiceImpl {
	return NewStatsServiceWithClock(taskStore, logger, time.Now)
}

// NewStatsServiceWithClock creates a StatsService that evaluates the recent
// activity window against now().
func NewStatsServiceWithClock(taskStore store.TaskStore, logger *slog.Logger, now func() time.Time) *StatsServiceImpl {
	if taskStore == nil {
		panic("taskStore cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if now == nil {
		now = time.Now
	}

	return &StatsServiceImpl{
		taskStore: taskStore,
		logger:    logger.With(slog.String("component", "stats_service")),
		now:       now,
	}
}

// Compute implements StatsService.
func (s *StatsServiceImpl) Compute(ctx context.Context, ownerID uuid.UUID) (domain.TaskStats, error) {
	since := s.now().UTC().Add(-domain.RecentActivityWindow)

	counts, err := s.taskStore.CountByOwner(ctx, ownerID, since)
	if err != nil {
		logger.ForUser(ctx, s.logger, ownerID).Error("failed to aggregate tasks",
			slog.String("error", err.Error()))
		return domain.TaskStats{}, NewTaskServiceError("stats", "failed to aggregate tasks", err)
	}

	return domain.NewTaskStats(counts), nil
}
