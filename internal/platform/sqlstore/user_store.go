package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// UserStore implements store.UserStore on database/sql.
type UserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.UserStore = (*UserStore)(nil)

// NewUserStore creates a UserStore. db may be a *sql.DB or a *sql.Tx.
// If logger is nil, slog.Default() is used.
func NewUserStore(db store.DBTX, logger *slog.Logger) *UserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &UserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// WithTx implements store.UserStore.
func (s *UserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &UserStore{db: tx, logger: s.logger}
}

const userColumns = `id, name, email, hashed_password, role, created_at, updated_at`

// Create implements store.UserStore.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.ForUser(ctx, s.logger, user.ID)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create")
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		user.ID,
		user.Name,
		user.Email,
		user.HashedPassword,
		string(user.Role),
		user.CreatedAt.UTC(),
		user.UpdatedAt.UTC(),
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("email already registered")
			return store.ErrEmailExists
		}
		log.Error("failed to create user",
			slog.String("error", err.Error()))
		return store.NewStoreError("user", "create", "insert failed", MapError(err))
	}

	log.Info("user created")
	return nil
}

// GetByID implements store.UserStore.
func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return s.scanUser(ctx, row, "get_by_id")
}

// GetByEmail implements store.UserStore. The email is case-folded before lookup.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, domain.NormalizeEmail(email))
	return s.scanUser(ctx, row, "get_by_email")
}

func (s *UserStore) scanUser(ctx context.Context, row *sql.Row, op string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var (
		user domain.User
		role string
	)
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.HashedPassword,
		&role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to load user",
			slog.String("operation", op),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("user", op, "query failed", MapError(err))
	}

	user.Role = domain.Role(role)
	user.CreatedAt = user.CreatedAt.UTC()
	user.UpdatedAt = user.UpdatedAt.UTC()
	return &user, nil
}

// Update implements store.UserStore.
func (s *UserStore) Update(ctx context.Context, user *domain.User) error {
	log := logger.ForUser(ctx, s.logger, user.ID)

	if err := user.Validate(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET name = $1, email = $2, hashed_password = $3, role = $4, updated_at = $5
		WHERE id = $6
	`,
		user.Name,
		user.Email,
		user.HashedPassword,
		string(user.Role),
		user.UpdatedAt.UTC(),
		user.ID,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return store.ErrEmailExists
		}
		log.Error("failed to update user",
			slog.String("error", err.Error()))
		return store.NewStoreError("user", "update", "update failed", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrUserNotFound); err != nil {
		return err
	}

	log.Debug("user updated")
	return nil
}

// Delete implements store.UserStore.
func (s *UserStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.ForUser(ctx, s.logger, id)

	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete user",
			slog.String("error", err.Error()))
		return store.NewStoreError("user", "delete", "delete failed", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrUserNotFound); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("%w: %v", store.ErrDeleteFailed, err)
	}

	log.Info("user deleted")
	return nil
}
