package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
)

// MockJWTService is a canned auth.JWTService. GenerateToken returns Token
// and Err and records the user IDs it issued for; ValidateToken returns
// Claims and ValidateErr.
type MockJWTService struct {
	Token       string
	Err         error
	Claims      *auth.Claims
	ValidateErr error

	mu       sync.Mutex
	issuedTo []uuid.UUID
}

var _ auth.JWTService = (*MockJWTService)(nil)

func (m *MockJWTService) GenerateToken(_ context.Context, userID uuid.UUID) (string, error) {
	m.mu.Lock()
	m.issuedTo = append(m.issuedTo, userID)
	m.mu.Unlock()
	return m.Token, m.Err
}

func (m *MockJWTService) ValidateToken(context.Context, string) (*auth.Claims, error) {
	return m.Claims, m.ValidateErr
}

// IssuedTo returns the user IDs passed to GenerateToken, in call order.
func (m *MockJWTService) IssuedTo() []uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]uuid.UUID(nil), m.issuedTo...)
}
