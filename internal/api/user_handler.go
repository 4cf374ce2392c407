package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/service"
)

// UserHandler handles profile, account and activity statistics requests for
// the authenticated user.
type UserHandler struct {
	users  service.UserService
	stats  service.StatsService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users service.UserService, stats service.StatsService, logger *slog.Logger) *UserHandler {
	if users == nil || stats == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("users and stats cannot be nil for UserHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{
		users:  users,
		stats:  stats,
		logger: logger.With(slog.String("component", "user_handler")),
	}
}

// GetProfile handles GET /users/profile.
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	user, err := h.users.GetProfile(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, "Profile retrieved successfully",
		UserEnvelope{User: userToResponse(user)})
}

// UpdateProfile handles PUT /users/profile.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), userID, service.ProfileUpdate{
		Name:            req.Name,
		Email:           req.Email,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update profile")
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, "Profile updated successfully",
		UserEnvelope{User: userToResponse(user)})
}

// ChangePassword handles PUT /users/change-password.
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.users.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to change password")
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, "Password changed successfully",
		UserEnvelope{User: userToResponse(user)})
}

// DeleteAccount handles DELETE /users/account.
func (h *UserHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	if err := h.users.DeleteAccount(r.Context(), userID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete account")
		return
	}

	logger.ForUser(r.Context(), h.logger, userID).Info("account deleted via API")
	shared.RespondSuccess(w, r, http.StatusOK, "Account deleted successfully", nil)
}

// ActivityStats handles GET /users/activity-stats.
func (h *UserHandler) ActivityStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	stats, err := h.stats.Compute(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to compute activity statistics")
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, "Activity statistics retrieved successfully", stats)
}
