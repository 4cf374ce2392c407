package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// TaskStore implements store.TaskStore on database/sql.
type TaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.TaskStore = (*TaskStore)(nil)

// NewTaskStore creates a TaskStore. db may be a *sql.DB or a *sql.Tx.
// If logger is nil, slog.Default() is used.
func NewTaskStore(db store.DBTX, logger *slog.Logger) *TaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// WithTx implements store.TaskStore.
func (s *TaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &TaskStore{db: tx, logger: s.logger}
}

const taskColumns = `id, user_id, title, description, status, priority, due_date, tags, created_at, updated_at`

// Create implements store.TaskStore.
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.ForUser(ctx, s.logger, task.UserID)

	if err := task.Validate(); err != nil {
		return err
	}

	tags, err := encodeTags(task.Tags)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		task.ID,
		task.UserID,
		task.Title,
		task.Description,
		string(task.Status),
		string(task.Priority),
		nullTime(task.DueDate),
		tags,
		task.CreatedAt.UTC(),
		task.UpdatedAt.UTC(),
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("task owner does not exist", slog.String("task_id", task.ID.String()))
			return fmt.Errorf("%w: owner of task %s", store.ErrUserNotFound, task.ID)
		}
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return store.NewStoreError("task", "create", "insert failed", MapError(err))
	}

	log.Debug("task created",
		slog.String("task_id", task.ID.String()))
	return nil
}

// GetByID implements store.TaskStore.
func (s *TaskStore) GetByID(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	row := s.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1 AND user_id = $2`,
		taskID, ownerID)

	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to load task",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()))
		return nil, store.NewStoreError("task", "get", "query failed", MapError(err))
	}
	return task, nil
}

// List implements store.TaskStore. Invalid enum values in filter are ignored.
func (s *TaskStore) List(
	ctx context.Context,
	ownerID uuid.UUID,
	filter domain.TaskFilter,
) ([]*domain.Task, error) {
	log := logger.ForUser(ctx, s.logger, ownerID)
	filter = filter.Normalize()

	q := newQueryBuilder()
	q.where("user_id = %s", ownerID)
	if filter.Status != "" {
		q.where("status = %s", string(filter.Status))
	}
	if filter.Priority != "" {
		q.where("priority = %s", string(filter.Priority))
	}
	if filter.Search != "" {
		pattern := "%" + escapeLike(strings.ToLower(filter.Search)) + "%"
		p := q.arg(pattern)
		q.conditions = append(q.conditions,
			fmt.Sprintf(`(LOWER(title) LIKE %s ESCAPE '\' OR LOWER(description) LIKE %s ESCAPE '\')`, p, p))
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE `+strings.Join(q.conditions, " AND "),
		q.args...)
	if err != nil {
		log.Error("failed to list tasks",
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, store.NewStoreError("task", "list", "scan failed", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("task", "list", "iteration failed", MapError(err))
	}

	log.Debug("tasks listed",
		slog.Int("count", len(tasks)))
	return tasks, nil
}

// Update implements store.TaskStore.
func (s *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		return err
	}

	tags, err := encodeTags(task.Tags)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE tasks
		SET title = $1, description = $2, status = $3, priority = $4,
		    due_date = $5, tags = $6, updated_at = $7
		WHERE id = $8 AND user_id = $9
	`,
		task.Title,
		task.Description,
		string(task.Status),
		string(task.Priority),
		nullTime(task.DueDate),
		tags,
		task.UpdatedAt.UTC(),
		task.ID,
		task.UserID,
	)
	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return store.NewStoreError("task", "update", "update failed", MapError(err))
	}

	return CheckRowsAffected(result, store.ErrTaskNotFound)
}

// Delete implements store.TaskStore.
func (s *TaskStore) Delete(ctx context.Context, ownerID, taskID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE id = $1 AND user_id = $2`, taskID, ownerID)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()))
		return store.NewStoreError("task", "delete", "delete failed", MapError(err))
	}

	return CheckRowsAffected(result, store.ErrTaskNotFound)
}

// DeleteByOwner implements store.TaskStore.
func (s *TaskStore) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	log := logger.ForUser(ctx, s.logger, ownerID)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE user_id = $1`, ownerID)
	if err != nil {
		log.Error("failed to delete tasks for owner",
			slog.String("error", err.Error()))
		return 0, store.NewStoreError("task", "delete_by_owner", "delete failed", MapError(err))
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	log.Debug("tasks deleted for owner",
		slog.Int64("count", n))
	return n, nil
}

// CountByOwner implements store.TaskStore with a single aggregate query.
func (s *TaskStore) CountByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
	since time.Time,
) (domain.TaskCounts, error) {
	log := logger.ForUser(ctx, s.logger, ownerID)

	var c domain.TaskCounts
	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'todo' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'in-progress' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'done' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN priority = 'low' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN priority = 'medium' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN priority = 'high' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN priority = 'high' AND status <> 'done' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN created_at >= $1 THEN 1 ELSE 0 END), 0)
		FROM tasks
		WHERE user_id = $2
	`, since.UTC(), ownerID).Scan(
		&c.Total,
		&c.Todo,
		&c.InProgress,
		&c.Done,
		&c.Low,
		&c.Medium,
		&c.High,
		&c.HighPriorityOpen,
		&c.Recent,
	)
	if err != nil {
		log.Error("failed to aggregate tasks",
			slog.String("error", err.Error()))
		return domain.TaskCounts{}, store.NewStoreError("task", "count", "aggregate failed", MapError(err))
	}

	return c, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		task     domain.Task
		status   string
		priority string
		dueDate  sql.NullTime
		tags     string
	)
	err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Description,
		&status,
		&priority,
		&dueDate,
		&tags,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	task.Status = domain.TaskStatus(status)
	task.Priority = domain.TaskPriority(priority)
	if dueDate.Valid {
		d := dueDate.Time.UTC()
		task.DueDate = &d
	}
	task.Tags, err = decodeTags(tags)
	if err != nil {
		return nil, err
	}
	task.CreatedAt = task.CreatedAt.UTC()
	task.UpdatedAt = task.UpdatedAt.UTC()
	return &task, nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("failed to encode tags: %w", err)
	}
	return string(b), nil
}

func decodeTags(raw string) ([]string, error) {
	tags := []string{}
	if raw == "" {
		return tags, nil
	}
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags: %w", err)
	}
	if tags == nil {
		tags = []string{}
	}
	return tags, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

// escapeLike escapes LIKE wildcards so user input matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// queryBuilder accumulates AND-ed conditions with sequential placeholders.
type queryBuilder struct {
	conditions []string
	args       []any
}

func newQueryBuilder() *queryBuilder {
	return &queryBuilder{}
}

func (q *queryBuilder) arg(v any) string {
	q.args = append(q.args, v)
	return "$" + strconv.Itoa(len(q.args))
}

func (q *queryBuilder) where(format string, v any) {
	q.conditions = append(q.conditions, fmt.Sprintf(format, q.arg(v)))
}
