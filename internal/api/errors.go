package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// Suggestions returned with login failures so clients can steer the user.
const (
	SuggestionRegister = "register"
	SuggestionTryAgain = "try_again"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, shared.ErrInvalidBody),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, store.ErrEmailExists),
		errors.Is(err, service.ErrNoChanges):
		return http.StatusBadRequest

	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, service.ErrIncorrectPassword):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, service.ErrAccountNotFound),
		errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Default: internal server error, including failed account deletion
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		var verr *domain.ValidationError
		if errors.As(err, &verr) && len(verr.Fields) == 1 {
			for _, msg := range verr.Fields {
				return msg
			}
		}
		return "Validation failed"

	case errors.Is(err, shared.ErrInvalidBody):
		return "Invalid request format"

	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, store.ErrEmailExists):
		return "Email already in use"

	case errors.Is(err, service.ErrNoChanges):
		return "No changes provided"

	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrMissingToken):
		return "Not authorized, no token"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, domain.ErrUnauthorized):
		return "Not authorized, token failed"

	case errors.Is(err, service.ErrIncorrectPassword):
		return "Incorrect password. Please try again."

	case errors.Is(err, service.ErrAccountNotFound):
		return "Account not found. Please register first."

	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, service.ErrAccountDeletionFailed):
		return "Failed to delete account"

	default:
		return "Server error"
	}
}

// errorData returns the client-facing data attached to an error response:
// the field map of a validation error, or a suggestion for login failures.
func errorData(err error) any {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr) && verr.HasErrors():
		return verr.Fields
	case errors.Is(err, service.ErrAccountNotFound):
		return map[string]string{"suggestion": SuggestionRegister}
	case errors.Is(err, service.ErrIncorrectPassword):
		return map[string]string{"suggestion": SuggestionTryAgain}
	}
	return nil
}

// HandleAPIError writes the envelope for err. The status and message come
// from MapErrorToStatusCode and GetSafeErrorMessage; fallback replaces the
// generic message of a 500 when non-empty. The full error is only logged.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}

	opts := []shared.ResponseOption{}
	if data := errorData(err); data != nil {
		opts = append(opts, shared.WithData(data))
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}
