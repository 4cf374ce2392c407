package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/mocks"
	"github.com/phrazzld/taskboard-api/internal/platform/sqlstore"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStatsService_Compute(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	owner := uuid.New()
	now := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)

	t.Run("passes the trailing seven day window", func(t *testing.T) {
		tasks := new(mocks.TestifyMockTaskStore)
		svc := service.NewStatsServiceWithClock(tasks, nil, func() time.Time { return now })

		tasks.On("CountByOwner", mock.Anything, owner, now.Add(-7*24*time.Hour)).
			Return(domain.TaskCounts{Total: 4, Todo: 1, InProgress: 1, Done: 2, High: 4, HighPriorityOpen: 2, Recent: 3}, nil)

		stats, err := svc.Compute(ctx, owner)

		require.NoError(t, err)
		assert.Equal(t, 4, stats.Created)
		assert.Equal(t, 2, stats.Completed)
		assert.Equal(t, 2, stats.Active)
		assert.Equal(t, 50, stats.CompletionPercentage)
		assert.Equal(t, 3, stats.RecentActivity)
		assert.Equal(t, 2, stats.HighPriorityOpen)
		tasks.AssertExpectations(t)
	})

	t.Run("empty task set", func(t *testing.T) {
		tasks := new(mocks.TestifyMockTaskStore)
		svc := service.NewStatsService(tasks, nil)
		tasks.On("CountByOwner", mock.Anything, owner, mock.Anything).Return(domain.TaskCounts{}, nil)

		stats, err := svc.Compute(ctx, owner)

		require.NoError(t, err)
		assert.Equal(t, domain.TaskStats{}, stats)
	})

	t.Run("store failure", func(t *testing.T) {
		tasks := new(mocks.TestifyMockTaskStore)
		svc := service.NewStatsService(tasks, nil)
		tasks.On("CountByOwner", mock.Anything, owner, mock.Anything).
			Return(domain.TaskCounts{}, errors.New("boom"))

		_, err := svc.Compute(ctx, owner)

		assert.Error(t, err)
	})
}

func TestStatsService_AgainstDatabase(t *testing.T) {
	t.Parallel()
	db := testdb.Open(t)
	ctx := context.Background()
	users := sqlstore.NewUserStore(db, nil)
	tasks := sqlstore.NewTaskStore(db, nil)

	owner := existingUser(t, "owner@example.com", "secret1")
	other := existingUser(t, "other@example.com", "secret1")
	require.NoError(t, users.Create(ctx, owner))
	require.NoError(t, users.Create(ctx, other))

	now := time.Now().UTC()
	add := func(userID uuid.UUID, title string, s domain.TaskStatus, p domain.TaskPriority, age time.Duration) {
		task, err := domain.NewTask(userID, title, "", s, p, nil, nil)
		require.NoError(t, err)
		task.CreatedAt = now.Add(-age)
		task.UpdatedAt = task.CreatedAt
		require.NoError(t, tasks.Create(ctx, task))
	}
	add(owner.ID, "Old done", domain.StatusDone, domain.PriorityHigh, 30*24*time.Hour)
	add(owner.ID, "Fresh high", domain.StatusTodo, domain.PriorityHigh, time.Hour)
	add(owner.ID, "Fresh low", domain.StatusInProgress, domain.PriorityLow, 2*time.Hour)
	add(other.ID, "Not mine", domain.StatusTodo, domain.PriorityHigh, time.Hour)

	svc := service.NewStatsServiceWithClock(tasks, nil, func() time.Time { return now })
	stats, err := svc.Compute(ctx, owner.ID)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Created)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 2, stats.Active)
	assert.Equal(t, 1, stats.HighPriorityOpen)
	assert.Equal(t, 33, stats.CompletionPercentage)
	assert.Equal(t, 2, stats.RecentActivity)
	assert.Equal(t, domain.StatusBreakdown{Todo: 1, InProgress: 1, Done: 1}, stats.ByStatus)
	assert.Equal(t, domain.PriorityBreakdown{Low: 1, High: 2}, stats.ByPriority)
}
