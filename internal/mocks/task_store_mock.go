package mocks

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// TestifyMockTaskStore is a mock of store.TaskStore interface for use with testify/mock
type TestifyMockTaskStore struct {
	mock.Mock
}

var _ store.TaskStore = (*TestifyMockTaskStore)(nil)

// Create is a mock implementation of store.TaskStore.Create
func (m *TestifyMockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

// GetByID is a mock implementation of store.TaskStore.GetByID
func (m *TestifyMockTaskStore) GetByID(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error) {
	args := m.Called(ctx, ownerID, taskID)
	if task, ok := args.Get(0).(*domain.Task); ok {
		return task, args.Error(1)
	}
	return nil, args.Error(1)
}

// List is a mock implementation of store.TaskStore.List
func (m *TestifyMockTaskStore) List(
	ctx context.Context,
	ownerID uuid.UUID,
	filter domain.TaskFilter,
) ([]*domain.Task, error) {
	args := m.Called(ctx, ownerID, filter)
	if tasks, ok := args.Get(0).([]*domain.Task); ok {
		return tasks, args.Error(1)
	}
	return nil, args.Error(1)
}

// Update is a mock implementation of store.TaskStore.Update
func (m *TestifyMockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

// Delete is a mock implementation of store.TaskStore.Delete
func (m *TestifyMockTaskStore) Delete(ctx context.Context, ownerID, taskID uuid.UUID) error {
	args := m.Called(ctx, ownerID, taskID)
	return args.Error(0)
}

// DeleteByOwner is a mock implementation of store.TaskStore.DeleteByOwner
func (m *TestifyMockTaskStore) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, ownerID)
	n, _ := args.Get(0).(int64)
	return n, args.Error(1)
}

// CountByOwner is a mock implementation of store.TaskStore.CountByOwner
func (m *TestifyMockTaskStore) CountByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
	since time.Time,
) (domain.TaskCounts, error) {
	args := m.Called(ctx, ownerID, since)
	counts, _ := args.Get(0).(domain.TaskCounts)
	return counts, args.Error(1)
}

// WithTx returns the mock itself unless an expectation for WithTx was registered.
func (m *TestifyMockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	if !hasExpectation(&m.Mock, "WithTx") {
		return m
	}
	args := m.Called(tx)
	if ret, ok := args.Get(0).(store.TaskStore); ok {
		return ret
	}
	return m
}
