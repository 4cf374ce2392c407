package api

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
)

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest defines the payload for PUT /users/profile.
// Every field is optional; empty means unchanged.
type UpdateProfileRequest struct {
	Name            string `json:"name"            validate:"max=100"`
	Email           string `json:"email"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangePasswordRequest defines the payload for PUT /users/change-password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required"`
}

// UserResponse is the public view of a user. The password hash never appears.
type UserResponse struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// AuthResponse defines the successful response for register and login.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// UserEnvelope wraps a single user in response data.
type UserEnvelope struct {
	User UserResponse `json:"user"`
}

// CreateTaskRequest defines the payload for POST /tasks.
type CreateTaskRequest struct {
	Title       string   `json:"title"       validate:"required"`
	Description string   `json:"description"`
	Status      string   `json:"status"      validate:"omitempty,oneof=todo in-progress done"`
	Priority    string   `json:"priority"    validate:"omitempty,oneof=low medium high"`
	DueDate     DueDate  `json:"dueDate"`
	Tags        []string `json:"tags"        validate:"max=20,dive,max=50"`
}

// UpdateTaskRequest defines the payload for PUT /tasks/{id}. Absent fields
// are left untouched; "dueDate": null clears the due date.
type UpdateTaskRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Status      *string   `json:"status"      validate:"omitnil,oneof=todo in-progress done"`
	Priority    *string   `json:"priority"    validate:"omitnil,oneof=low medium high"`
	DueDate     DueDate   `json:"dueDate"`
	Tags        *[]string `json:"tags"`
}

// Patch converts the request to a domain patch.
func (req UpdateTaskRequest) Patch() domain.TaskPatch {
	patch := domain.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
	}
	if req.Status != nil {
		s := domain.TaskStatus(*req.Status)
		patch.Status = &s
	}
	if req.Priority != nil {
		p := domain.TaskPriority(*req.Priority)
		patch.Priority = &p
	}
	if req.DueDate.Set {
		if req.DueDate.Value == nil {
			patch.ClearDueDate = true
		} else {
			patch.DueDate = req.DueDate.Value
		}
	}
	return patch
}

// TaskResponse is the public view of a task.
type TaskResponse struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"userId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	Tags        []string   `json:"tags"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// TaskEnvelope wraps a single task in response data.
type TaskEnvelope struct {
	Task TaskResponse `json:"task"`
}

// TaskListResponse is the data of GET /tasks.
type TaskListResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Count int            `json:"count"`
}

// DueDate decodes an optional date that may also be explicitly null.
// Set reports whether the field appeared in the JSON at all. Accepted forms
// are RFC 3339 timestamps and plain YYYY-MM-DD dates; "" means no date.
type DueDate struct {
	Set   bool
	Value *time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *DueDate) UnmarshalJSON(b []byte) error {
	d.Set = true
	d.Value = nil
	if bytes.Equal(b, []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return domain.NewValidationError("dueDate", "Due date must be a date string", nil)
	}
	if s == "" {
		return nil
	}

	for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			utc := t.UTC()
			d.Value = &utc
			return nil
		}
	}
	return domain.NewValidationError("dueDate", "Due date must be a valid date", nil)
}

func userToResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func taskToResponse(t *domain.Task) TaskResponse {
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	return TaskResponse{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		DueDate:     t.DueDate,
		Tags:        tags,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskToResponse(t))
	}
	return out
}
