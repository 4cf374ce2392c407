package store

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by every store implementation. Entity-specific
// errors wrap the generic ones so callers can match at either level.
var (
	ErrNotFound          = errors.New("entity not found")
	ErrDuplicate         = errors.New("entity already exists")
	ErrInvalidEntity     = errors.New("invalid entity")
	ErrDeleteFailed      = errors.New("delete failed")
	ErrTransactionFailed = errors.New("transaction failed")

	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)
	// ErrTaskNotFound also covers tasks owned by a different user.
	ErrTaskNotFound = fmt.Errorf("%w: task", ErrNotFound)
	ErrEmailExists  = fmt.Errorf("%w: email", ErrDuplicate)
)

// IsDuplicateError reports whether err violates a uniqueness rule.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError adds the entity and operation to an unexpected persistence
// failure. The raw driver error stays reachable through Unwrap but is never
// shown to clients.
type StoreError struct {
	Entity    string
	Operation string
	Message   string
	Err       error
}

func (e *StoreError) Error() string {
	prefix := fmt.Sprintf("%s %s: %s", e.Entity, e.Operation, e.Message)
	if e.Err == nil {
		return prefix
	}
	return prefix + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError builds a StoreError.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{Entity: entity, Operation: operation, Message: message, Err: err}
}
