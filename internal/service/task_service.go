package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// CreateTaskInput carries the fields of a new task. Empty status and
// priority take their defaults.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      domain.TaskStatus
	Priority    domain.TaskPriority
	DueDate     *time.Time
	Tags        []string
}

// TaskService manages the tasks of a single owner. Every method takes the
// owner's ID and never reads or writes another user's tasks.
type TaskService interface {
	// List returns the owner's tasks matching filter, ordered by sort.
	List(ctx context.Context, ownerID uuid.UUID, filter domain.TaskFilter, sort domain.TaskSort) ([]*domain.Task, error)

	// Get returns one task. Returns ErrTaskNotFound when the task is absent or
	// owned by someone else.
	Get(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error)

	// Create validates and stores a new task.
	Create(ctx context.Context, ownerID uuid.UUID, in CreateTaskInput) (*domain.Task, error)

	// Update merges patch into the task and stores the result.
	Update(ctx context.Context, ownerID, taskID uuid.UUID, patch domain.TaskPatch) (*domain.Task, error)

	// Delete removes the task.
	Delete(ctx context.Context, ownerID, taskID uuid.UUID) error
}

// TaskServiceImpl implements the TaskService interface
type TaskServiceImpl struct {
	taskStore store.TaskStore
	db        *sql.DB
	logger    *slog.Logger
	now       func() time.Time
}

var _ TaskService = (*TaskServiceImpl)(nil)

// NewTaskService creates a new TaskService.
// It panics if taskStore or db is nil.
func NewTaskService(taskStore store.TaskStore, db *sql.DB, logger *slog.Logger) *TaskServiceImpl {
	if taskStore == nil {
		panic("taskStore cannot be nil")
	}
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskServiceImpl{
		taskStore: taskStore,
		db:        db,
		logger:    logger.With(slog.String("component", "task_service")),
		now:       time.Now,
	}
}

// List implements TaskService.
func (s *TaskServiceImpl) List(
	ctx context.Context,
	ownerID uuid.UUID,
	filter domain.TaskFilter,
	sort domain.TaskSort,
) ([]*domain.Task, error) {
	tasks, err := s.taskStore.List(ctx, ownerID, filter.Normalize())
	if err != nil {
		logger.ForUser(ctx, s.logger, ownerID).Error("failed to list tasks",
			slog.String("error", err.Error()))
		return nil, NewTaskServiceError("list", "failed to list tasks", err)
	}

	domain.SortTasks(tasks, sort)
	return tasks, nil
}

// Get implements TaskService.
func (s *TaskServiceImpl) Get(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error) {
	task, err := s.taskStore.GetByID(ctx, ownerID, taskID)
	if err != nil {
		return nil, s.mapStoreError(ctx, "get", err, ownerID, taskID)
	}
	return task, nil
}

// Create implements TaskService.
func (s *TaskServiceImpl) Create(ctx context.Context, ownerID uuid.UUID, in CreateTaskInput) (*domain.Task, error) {
	log := logger.ForUser(ctx, s.logger, ownerID)

	task, err := domain.NewTask(ownerID, in.Title, in.Description, in.Status, in.Priority, in.DueDate, in.Tags)
	if err != nil {
		log.Debug("task rejected by validation", slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		// The token can outlive its account.
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("task owner no longer exists")
			return nil, ErrUserNotFound
		}
		log.Error("failed to create task", slog.String("error", err.Error()))
		return nil, NewTaskServiceError("create", "failed to save task", err)
	}

	log.Info("task created", slog.String("task_id", task.ID.String()))
	return task, nil
}

// Update implements TaskService. The read-merge-write runs in one transaction.
func (s *TaskServiceImpl) Update(
	ctx context.Context,
	ownerID, taskID uuid.UUID,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	var updated *domain.Task
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.taskStore.WithTx(tx)

		current, err := txStore.GetByID(ctx, ownerID, taskID)
		if err != nil {
			return err
		}

		merged, err := current.ApplyPatch(patch, s.now())
		if err != nil {
			return err
		}

		if err := txStore.Update(ctx, merged); err != nil {
			return err
		}
		updated = merged
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return nil, err
		}
		return nil, s.mapStoreError(ctx, "update", err, ownerID, taskID)
	}

	logger.ForUser(ctx, s.logger, ownerID).Info("task updated",
		slog.String("task_id", taskID.String()))
	return updated, nil
}

// Delete implements TaskService.
func (s *TaskServiceImpl) Delete(ctx context.Context, ownerID, taskID uuid.UUID) error {
	if err := s.taskStore.Delete(ctx, ownerID, taskID); err != nil {
		return s.mapStoreError(ctx, "delete", err, ownerID, taskID)
	}

	logger.ForUser(ctx, s.logger, ownerID).Info("task deleted",
		slog.String("task_id", taskID.String()))
	return nil
}

func (s *TaskServiceImpl) mapStoreError(ctx context.Context, op string, err error, ownerID, taskID uuid.UUID) error {
	if errors.Is(err, store.ErrTaskNotFound) {
		return fmt.Errorf("%w: %w", ErrTaskNotFound, err)
	}

	logger.ForUser(ctx, s.logger, ownerID).Error("task store operation failed",
		slog.String("operation", op),
		slog.String("error", err.Error()),
		slog.String("task_id", taskID.String()))
	return NewTaskServiceError(op, "failed to access task", err)
}
