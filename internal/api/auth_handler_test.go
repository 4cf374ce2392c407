package api_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/phrazzld/taskboard-api/internal/api"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthHandler_Register(t *testing.T) {
	t.Parallel()
	a := newTestAPI(t)

	resp, token := a.register("Ada", "Ada@Example.com", "secret1")

	assert.NotEmpty(t, token)
	assert.Equal(t, "Ada", resp.User.Name)
	assert.Equal(t, "ada@example.com", resp.User.Email)
	assert.Equal(t, domain.RoleMember, resp.User.Role)

	claims, err := a.jwt.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)

	t.Run("duplicate email", func(t *testing.T) {
		status, env := a.do(http.MethodPost, "/auth/register", "", map[string]string{
			"name": "Other", "email": "ADA@example.com", "password": "secret1",
		})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.False(t, env.Success)
		assert.Equal(t, "Email already in use", env.Message)
	})

	t.Run("missing fields", func(t *testing.T) {
		status, env := a.do(http.MethodPost, "/auth/register", "", map[string]string{"name": "Nobody"})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Validation failed", env.Message)
		fields := dataMap(t, env)
		assert.Equal(t, "Email is required", fields["email"])
		assert.Equal(t, "Password is required", fields["password"])
	})

	t.Run("short password", func(t *testing.T) {
		status, env := a.do(http.MethodPost, "/auth/register", "", map[string]string{
			"name": "Bob", "email": "bob@example.com", "password": "123",
		})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Password must be at least 6 characters", env.Message)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		status, env := a.do(http.MethodPost, "/auth/register", "", `{"name":`)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Invalid request format", env.Message)
		assert.NotEmpty(t, env.TraceID)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Parallel()
	a := newTestAPI(t)
	registered, _ := a.register("Ada", "ada@example.com", "secret1")

	tests := []struct {
		name       string
		body       map[string]string
		wantStatus int
		wantMsg    string
		suggestion string
	}{
		{
			name:       "success",
			body:       map[string]string{"email": " ADA@example.com ", "password": "secret1"},
			wantStatus: http.StatusOK,
			wantMsg:    "Login successful",
		},
		{
			name:       "unknown email suggests registering",
			body:       map[string]string{"email": "ghost@example.com", "password": "secret1"},
			wantStatus: http.StatusNotFound,
			wantMsg:    "Account not found. Please register first.",
			suggestion: api.SuggestionRegister,
		},
		{
			name:       "unregistered address without a domain dot",
			body:       map[string]string{"email": "ann@localhost", "password": "secret1"},
			wantStatus: http.StatusNotFound,
			wantMsg:    "Account not found. Please register first.",
			suggestion: api.SuggestionRegister,
		},
		{
			name:       "unregistered bare name",
			body:       map[string]string{"email": "nobody", "password": "secret1"},
			wantStatus: http.StatusNotFound,
			wantMsg:    "Account not found. Please register first.",
			suggestion: api.SuggestionRegister,
		},
		{
			name:       "missing email",
			body:       map[string]string{"email": "  ", "password": "secret1"},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Email is required",
		},
		{
			name:       "wrong password suggests retrying",
			body:       map[string]string{"email": "ada@example.com", "password": "wrong-one"},
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Incorrect password. Please try again.",
			suggestion: api.SuggestionTryAgain,
		},
		{
			name:       "missing password",
			body:       map[string]string{"email": "ada@example.com"},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Password is required",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			status, env := a.do(http.MethodPost, "/auth/login", "", tt.body)

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, env.Message)
			if tt.wantStatus == http.StatusOK {
				var resp api.AuthResponse
				decodeData(t, env, &resp)
				assert.Equal(t, registered.User.ID, resp.User.ID)
				assert.NotEmpty(t, resp.Token)
			}
			if tt.suggestion != "" {
				assert.Equal(t, tt.suggestion, dataMap(t, env)["suggestion"])
			}
		})
	}
}

func TestAuthHandler_LoginDoesNotLockOut(t *testing.T) {
	t.Parallel()
	a := newTestAPI(t)
	registered, _ := a.register("Ada", "ada@example.com", "secret1")

	for i := 0; i < 2; i++ {
		status, env := a.do(http.MethodPost, "/auth/login", "",
			map[string]string{"email": "ada@example.com", "password": "wrong-one"})

		assert.Equal(t, http.StatusUnauthorized, status, "attempt %d", i+1)
		assert.Equal(t, "Incorrect password. Please try again.", env.Message)
		assert.Equal(t, api.SuggestionTryAgain, dataMap(t, env)["suggestion"])
	}

	status, env := a.do(http.MethodPost, "/auth/login", "",
		map[string]string{"email": "ada@example.com", "password": "secret1"})

	require.Equal(t, http.StatusOK, status)
	var resp api.AuthResponse
	decodeData(t, env, &resp)
	assert.Equal(t, registered.User.ID, resp.User.ID)
	assert.NotEmpty(t, resp.Token)
}

func TestAuthHandler_Me(t *testing.T) {
	t.Parallel()
	a := newTestAPI(t)
	registered, token := a.register("Ada", "ada@example.com", "secret1")

	status, env := a.do(http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	var resp api.UserEnvelope
	decodeData(t, env, &resp)
	assert.Equal(t, registered.User.ID, resp.User.ID)
	assert.NotContains(t, string(env.Data), "password")

	t.Run("no token", func(t *testing.T) {
		status, env := a.do(http.MethodGet, "/auth/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "Not authorized, no token", env.Message)
	})

	t.Run("garbage token", func(t *testing.T) {
		status, env := a.do(http.MethodGet, "/auth/me", "not-a-jwt", nil)
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "Not authorized, token failed", env.Message)
	})
}
