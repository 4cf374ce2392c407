package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
)

// TaskStore defines the interface for task persistence.
// Every read and write is scoped to an owner: a task that exists but belongs
// to someone else is reported exactly like a missing one (ErrTaskNotFound).
type TaskStore interface {
	// Create saves a new task.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves the owner's task with the given ID.
	// Returns ErrTaskNotFound if absent or owned by another user.
	GetByID(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error)

	// List returns the owner's tasks matching filter, in unspecified order.
	List(ctx context.Context, ownerID uuid.UUID, filter domain.TaskFilter) ([]*domain.Task, error)

	// Update persists every mutable field of task, matching on both the
	// task ID and its owner.
	// Returns ErrTaskNotFound if no row matched.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes the owner's task.
	// Returns ErrTaskNotFound if absent or owned by another user.
	Delete(ctx context.Context, ownerID, taskID uuid.UUID) error

	// DeleteByOwner removes every task owned by ownerID and returns how many were removed.
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)

	// CountByOwner aggregates the owner's tasks in a single query.
	// Tasks created at or after since count as recent.
	CountByOwner(ctx context.Context, ownerID uuid.UUID, since time.Time) (domain.TaskCounts, error)

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) TaskStore
}
