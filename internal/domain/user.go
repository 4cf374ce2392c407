package domain

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

// Password length limits. The upper bound is bcrypt's input limit.
const (
	MinPasswordLength = 6
	MaxPasswordLength = 72
	MaxNameLength     = 100
)

// Role is the single authorization flag carried by a user.
type Role string

// Supported roles.
const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	return r == RoleMember || r == RoleAdmin
}

// emailPattern is intentionally loose: something@something.something with no whitespace.
var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// User represents a registered user of the task tracker.
type User struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	Role           Role      `json:"role"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// NewUser creates a new member User with the given name, email and password hash.
// The email is normalized before validation.
func NewUser(name, email, hashedPassword string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:             uuid.New(),
		Name:           strings.TrimSpace(name),
		Email:          NormalizeEmail(email),
		HashedPassword: hashedPassword,
		Role:           RoleMember,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	verr := &ValidationError{Err: ErrValidation}

	if u.ID == uuid.Nil {
		verr.Add("id", "is required")
	}
	if msg := NameProblem(u.Name); msg != "" {
		verr.Add("name", msg)
	}
	if msg := EmailProblem(u.Email); msg != "" {
		verr.Add("email", msg)
	}
	if u.HashedPassword == "" {
		verr.Add("password", "is required")
	}
	if !u.Role.IsValid() {
		verr.Add("role", "must be one of member, admin")
	}

	return verr.OrNil()
}

// NormalizeEmail trims and case-folds an email so that comparisons are
// case-insensitive everywhere it is stored or looked up.
func NormalizeEmail(email string) string {
	return cases.Fold().String(strings.TrimSpace(email))
}

// NameProblem returns a client-facing message when name is unusable, or "".
func NameProblem(name string) string {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return "Name is required"
	case utf8.RuneCountInString(name) > MaxNameLength:
		return "Name cannot exceed 100 characters"
	}
	return ""
}

// EmailProblem returns a client-facing message when email is unusable, or "".
func EmailProblem(email string) string {
	switch {
	case strings.TrimSpace(email) == "":
		return "Email is required"
	case !emailPattern.MatchString(strings.TrimSpace(email)):
		return "Please enter a valid email"
	}
	return ""
}

// PasswordProblem returns a client-facing message when a plaintext password
// is unusable, or "".
func PasswordProblem(password string) string {
	switch {
	case password == "":
		return "Password is required"
	case len(password) < MinPasswordLength:
		return "Password must be at least 6 characters"
	case len(password) > MaxPasswordLength:
		return "Password cannot exceed 72 bytes"
	}
	return ""
}
