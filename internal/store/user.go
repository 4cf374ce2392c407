package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
)

// UserStore persists credentials. Emails reach it already normalized, and
// every lookup by email is case-insensitive.
//
// Lookups by ID or email return ErrUserNotFound when nothing matches.
type UserStore interface {
	// Create inserts user; ErrEmailExists when the email is taken.
	Create(ctx context.Context, user *domain.User) error

	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update writes name, email, password hash, role and updated_at.
	// ErrUserNotFound or ErrEmailExists on conflict.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes the user. The schema cascades to owned tasks, but the
	// account service deletes them explicitly in the same transaction.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx binds the store to tx.
	WithTx(tx *sql.Tx) UserStore
}
