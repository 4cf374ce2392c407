package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/taskboard-api/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
// Callers check for them with errors.Is(); the API layer maps each one to an
// HTTP status code and a client-safe message.
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Unexpected errors are wrapped in service-specific error types
// 3. Callers use errors.Is/errors.As to check for specific error conditions
// 4. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrEmailTaken indicates that another account already uses the email.
	ErrEmailTaken = errors.New("email already in use")

	// ErrAccountNotFound indicates a login attempt for an email with no account.
	// The API layer suggests registering instead.
	ErrAccountNotFound = errors.New("no account found with this email")

	// ErrIncorrectPassword indicates that the supplied password does not match.
	ErrIncorrectPassword = errors.New("incorrect password")

	// ErrNoChanges indicates a profile update that carried no recognized field.
	ErrNoChanges = errors.New("no changes provided")

	// ErrUserNotFound indicates that the authenticated user no longer exists.
	// It is the store sentinel so that either layer's error matches.
	ErrUserNotFound = store.ErrUserNotFound

	// ErrTaskNotFound indicates that the task does not exist or belongs to
	// another user. The two cases are deliberately indistinguishable.
	ErrTaskNotFound = errors.New("task not found")

	// ErrAccountDeletionFailed indicates that the account deletion cascade
	// failed and was rolled back.
	ErrAccountDeletionFailed = errors.New("account deletion failed")
)

// UserServiceError wraps unexpected failures of user service operations.
type UserServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for UserServiceError.
func (e *UserServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("user service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("user service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *UserServiceError) Unwrap() error {
	return e.Err
}

// NewUserServiceError creates a new UserServiceError.
func NewUserServiceError(operation, message string, err error) *UserServiceError {
	return &UserServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// TaskServiceError wraps unexpected failures of task service operations.
type TaskServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}

// NewTaskServiceError creates a new TaskServiceError.
func NewTaskServiceError(operation, message string, err error) *TaskServiceError {
	return &TaskServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
