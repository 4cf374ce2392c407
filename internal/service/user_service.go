package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// RegisterInput carries the fields of a new account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// ProfileUpdate carries the optional fields of a profile update.
// An empty string means the field was not supplied.
type ProfileUpdate struct {
	Name            string
	Email           string
	CurrentPassword string
	NewPassword     string
}

func (u ProfileUpdate) isEmpty() bool {
	return strings.TrimSpace(u.Name) == "" && strings.TrimSpace(u.Email) == "" &&
		u.CurrentPassword == "" && u.NewPassword == ""
}

// UserService provides credential management: registration, login, profile
// maintenance and account deletion.
type UserService interface {
	// Register creates an account and returns it with a freshly issued token.
	// Returns ErrEmailTaken when the email is already in use.
	Register(ctx context.Context, in RegisterInput) (*domain.User, string, error)

	// Login verifies the credentials and returns the user with a new token.
	// Returns ErrAccountNotFound for an unknown email and ErrIncorrectPassword
	// for a wrong password.
	Login(ctx context.Context, email, password string) (*domain.User, string, error)

	// GetProfile retrieves the user by ID.
	GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// UpdateProfile applies the supplied fields. All validation happens before
	// anything is written. Returns ErrNoChanges when nothing was supplied.
	UpdateProfile(ctx context.Context, userID uuid.UUID, upd ProfileUpdate) (*domain.User, error)

	// ChangePassword replaces the password after verifying the current one.
	ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) (*domain.User, error)

	// DeleteAccount removes the user's tasks and then the user in one
	// transaction.
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	taskStore store.TaskStore
	hasher    auth.PasswordHasher
	tokens    auth.JWTService
	db        *sql.DB
	logger    *slog.Logger
}

var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a new UserService.
// It panics if any store, the hasher, the token service or db is nil.
func NewUserService(
	userStore store.UserStore,
	taskStore store.TaskStore,
	hasher auth.PasswordHasher,
	tokens auth.JWTService,
	db *sql.DB,
	logger *slog.Logger,
) *UserServiceImpl {
	if userStore == nil {
		panic("userStore cannot be nil")
	}
	if taskStore == nil {
		panic("taskStore cannot be nil")
	}
	if hasher == nil {
		panic("hasher cannot be nil")
	}
	if tokens == nil {
		panic("tokens cannot be nil")
	}
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &UserServiceImpl{
		userStore: userStore,
		taskStore: taskStore,
		hasher:    hasher,
		tokens:    tokens,
		db:        db,
		logger:    logger.With(slog.String("component", "user_service")),
	}
}

// Register implements UserService.
func (s *UserServiceImpl) Register(ctx context.Context, in RegisterInput) (*domain.User, string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	verr := &domain.ValidationError{Err: domain.ErrValidation}
	if msg := domain.NameProblem(in.Name); msg != "" {
		verr.Add("name", msg)
	}
	if msg := domain.EmailProblem(in.Email); msg != "" {
		verr.Add("email", msg)
	}
	if msg := domain.PasswordProblem(in.Password); msg != "" {
		verr.Add("password", msg)
	}
	if err := verr.OrNil(); err != nil {
		log.Debug("registration rejected by validation", slog.String("error", err.Error()))
		return nil, "", err
	}

	email := domain.NormalizeEmail(in.Email)
	if err := s.ensureEmailAvailable(ctx, email, uuid.Nil); err != nil {
		return nil, "", err
	}

	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		log.Error("failed to hash password", slog.String("error", err.Error()))
		return nil, "", NewUserServiceError("register", "failed to hash password", err)
	}

	user, err := domain.NewUser(in.Name, email, hashed)
	if err != nil {
		return nil, "", err
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("registration raced with an existing email")
			return nil, "", fmt.Errorf("%w: %w", ErrEmailTaken, err)
		}
		log.Error("failed to save user", slog.String("error", err.Error()))
		return nil, "", NewUserServiceError("register", "failed to save user", err)
	}

	token, err := s.tokens.GenerateToken(ctx, user.ID)
	if err != nil {
		log.Error("failed to generate token",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return nil, "", NewUserServiceError("register", "failed to generate token", err)
	}

	log.Info("user registered", slog.String("user_id", user.ID.String()))
	return user, token, nil
}

// Login implements UserService.
func (s *UserServiceImpl) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	verr := &domain.ValidationError{Err: domain.ErrValidation}
	if strings.TrimSpace(email) == "" {
		verr.Add("email", "Email is required")
	}
	if password == "" {
		verr.Add("password", "Password is required")
	}
	if err := verr.OrNil(); err != nil {
		return nil, "", err
	}

	user, err := s.userStore.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("login attempt for unknown email")
			return nil, "", ErrAccountNotFound
		}
		log.Error("failed to look up user for login", slog.String("error", err.Error()))
		return nil, "", NewUserServiceError("login", "failed to look up user", err)
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			log.Debug("login attempt with incorrect password",
				slog.String("user_id", user.ID.String()))
			return nil, "", ErrIncorrectPassword
		}
		log.Error("failed to compare password", slog.String("error", err.Error()))
		return nil, "", NewUserServiceError("login", "failed to verify password", err)
	}

	token, err := s.tokens.GenerateToken(ctx, user.ID)
	if err != nil {
		log.Error("failed to generate token",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return nil, "", NewUserServiceError("login", "failed to generate token", err)
	}

	log.Info("user logged in", slog.String("user_id", user.ID.String()))
	return user, token, nil
}

// GetProfile implements UserService.
func (s *UserServiceImpl) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		logger.ForUser(ctx, s.logger, userID).Error("failed to retrieve user",
			slog.String("error", err.Error()))
		return nil, NewUserServiceError("get_profile", "failed to retrieve user", err)
	}
	return user, nil
}

// UpdateProfile implements UserService.
func (s *UserServiceImpl) UpdateProfile(
	ctx context.Context,
	userID uuid.UUID,
	upd ProfileUpdate,
) (*domain.User, error) {
	log := logger.ForUser(ctx, s.logger, userID)

	if upd.isEmpty() {
		return nil, ErrNoChanges
	}

	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	verr := &domain.ValidationError{Err: domain.ErrValidation}
	name := strings.TrimSpace(upd.Name)
	if name != "" {
		if msg := domain.NameProblem(name); msg != "" {
			verr.Add("name", msg)
		}
	}
	email := strings.TrimSpace(upd.Email)
	if email != "" {
		if msg := domain.EmailProblem(email); msg != "" {
			verr.Add("email", msg)
		}
		email = domain.NormalizeEmail(email)
	}
	changePassword := upd.CurrentPassword != "" || upd.NewPassword != ""
	if changePassword {
		switch {
		case upd.CurrentPassword == "":
			verr.Add("currentPassword", "Current password is required to set a new password")
		case upd.NewPassword == "":
			verr.Add("newPassword", "New password is required")
		default:
			if msg := domain.PasswordProblem(upd.NewPassword); msg != "" {
				verr.Add("newPassword", "New "+strings.ToLower(msg[:1])+msg[1:])
			}
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if email != "" && email != user.Email {
		if err := s.ensureEmailAvailable(ctx, email, user.ID); err != nil {
			return nil, err
		}
	}

	var hashed string
	if changePassword {
		if hashed, err = s.rehash(ctx, user, upd.CurrentPassword, upd.NewPassword); err != nil {
			return nil, err
		}
	}

	if name != "" {
		user.Name = name
	}
	if email != "" {
		user.Email = email
	}
	if hashed != "" {
		user.HashedPassword = hashed
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.userStore.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, store.ErrEmailExists):
			return nil, fmt.Errorf("%w: %w", ErrEmailTaken, err)
		case errors.Is(err, store.ErrUserNotFound):
			return nil, ErrUserNotFound
		}
		log.Error("failed to update user", slog.String("error", err.Error()))
		return nil, NewUserServiceError("update_profile", "failed to update user", err)
	}

	log.Info("user profile updated", slog.Bool("password_changed", changePassword))
	return user, nil
}

// ChangePassword implements UserService.
func (s *UserServiceImpl) ChangePassword(
	ctx context.Context,
	userID uuid.UUID,
	current, next string,
) (*domain.User, error) {
	verr := &domain.ValidationError{Err: domain.ErrValidation}
	if current == "" {
		verr.Add("currentPassword", "Current password is required")
	}
	if next == "" {
		verr.Add("newPassword", "New password is required")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return s.UpdateProfile(ctx, userID, ProfileUpdate{CurrentPassword: current, NewPassword: next})
}

// DeleteAccount implements UserService.
func (s *UserServiceImpl) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	log := logger.ForUser(ctx, s.logger, userID)

	var removed int64
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := s.userStore.WithTx(tx).GetByID(ctx, userID); err != nil {
			return err
		}

		n, err := s.taskStore.WithTx(tx).DeleteByOwner(ctx, userID)
		if err != nil {
			return err
		}
		removed = n

		return s.userStore.WithTx(tx).Delete(ctx, userID)
	})
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return ErrUserNotFound
		}
		log.Error("account deletion rolled back", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", ErrAccountDeletionFailed, err)
	}

	log.Info("account deleted", slog.Int64("tasks_removed", removed))
	return nil
}

// ensureEmailAvailable returns ErrEmailTaken when email belongs to a user
// other than self.
func (s *UserServiceImpl) ensureEmailAvailable(ctx context.Context, email string, self uuid.UUID) error {
	existing, err := s.userStore.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, store.ErrUserNotFound):
		return nil
	case err != nil:
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to check email availability",
			slog.String("error", err.Error()))
		return NewUserServiceError("check_email", "failed to look up email", err)
	case existing.ID != self:
		return ErrEmailTaken
	}
	return nil
}

// rehash verifies current against the stored hash and returns a fresh hash of next.
func (s *UserServiceImpl) rehash(ctx context.Context, user *domain.User, current, next string) (string, error) {
	if err := s.hasher.Compare(user.HashedPassword, current); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return "", ErrIncorrectPassword
		}
		return "", NewUserServiceError("update_profile", "failed to verify password", err)
	}

	hashed, err := s.hasher.Hash(next)
	if err != nil {
		logger.ForUser(ctx, s.logger, user.ID).Error("failed to hash password",
			slog.String("error", err.Error()))
		return "", NewUserServiceError("update_profile", "failed to hash password", err)
	}
	return hashed, nil
}
