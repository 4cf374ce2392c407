package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// TestifyMockUserStore is a testify mock of store.UserStore.
type TestifyMockUserStore struct {
	mock.Mock
}

var _ store.UserStore = (*TestifyMockUserStore)(nil)

func (m *TestifyMockUserStore) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *TestifyMockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return userResult(m.Called(ctx, id))
}

func (m *TestifyMockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return userResult(m.Called(ctx, email))
}

func (m *TestifyMockUserStore) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *TestifyMockUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// WithTx returns m itself unless the test registered a WithTx expectation,
// so expectations on the outer mock keep applying inside a transaction.
func (m *TestifyMockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	if !hasExpectation(&m.Mock, "WithTx") {
		return m
	}
	if s, ok := m.Called(tx).Get(0).(store.UserStore); ok {
		return s
	}
	return m
}

func userResult(args mock.Arguments) (*domain.User, error) {
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func hasExpectation(m *mock.Mock, method string) bool {
	for _, call := range m.ExpectedCalls {
		if call.Method == method {
			return true
		}
	}
	return false
}
