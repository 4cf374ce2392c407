package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/taskboard-api/internal/api"
	"github.com/phrazzld/taskboard-api/internal/api/middleware"
	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/phrazzld/taskboard-api/internal/platform/sqlstore"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
	"github.com/phrazzld/taskboard-api/internal/testdb"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-at-least-32-characters-long"

// envelope mirrors the JSON response envelope with raw data.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	TraceID string          `json:"traceId"`
}

// testAPI is a full handler stack on a migrated test database.
type testAPI struct {
	t      *testing.T
	router http.Handler
	jwt    auth.JWTService
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	db := testdb.Open(t)
	users := sqlstore.NewUserStore(db, nil)
	tasks := sqlstore.NewTaskStore(db, nil)

	jwtService, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            testSecret,
		TokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)

	userService := service.NewUserService(users, tasks, auth.NewBcryptHasher(4), jwtService, db, nil)
	taskService := service.NewTaskService(tasks, db, nil)
	statsService := service.NewStatsService(tasks, nil)

	r := chi.NewRouter()
	r.Use(middleware.TraceMiddleware(nil))
	r.NotFound(api.NotFound)
	r.MethodNotAllowed(api.MethodNotAllowed)
	api.RegisterRoutes(r, api.Handlers{
		Auth:   api.NewAuthHandler(userService, nil),
		Users:  api.NewUserHandler(userService, statsService, nil),
		Tasks:  api.NewTaskHandler(taskService, nil),
		Health: api.NewHealthHandler(time.Now()),
	}, middleware.NewAuthMiddleware(jwtService, nil).Authenticate)

	return &testAPI{t: t, router: r, jwt: jwtService}
}

// do sends a request with an optional JSON body and bearer token.
func (a *testAPI) do(method, path, token string, body any) (int, envelope) {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, req)

	var env envelope
	if rr.Body.Len() > 0 {
		require.NoError(a.t, json.Unmarshal(rr.Body.Bytes(), &env), "body: %s", rr.Body.String())
	}
	return rr.Code, env
}

// register creates an account and returns its token.
func (a *testAPI) register(name, email, password string) (api.AuthResponse, string) {
	a.t.Helper()
	status, env := a.do(http.MethodPost, "/auth/register", "", map[string]string{
		"name": name, "email": email, "password": password,
	})
	require.Equal(a.t, http.StatusCreated, status, env.Message)

	var resp api.AuthResponse
	decodeData(a.t, env, &resp)
	return resp, resp.Token
}

// createTask posts a task and returns the stored representation.
func (a *testAPI) createTask(token string, body map[string]any) api.TaskResponse {
	a.t.Helper()
	status, env := a.do(http.MethodPost, "/tasks", token, body)
	require.Equal(a.t, http.StatusCreated, status, env.Message)

	var resp api.TaskEnvelope
	decodeData(a.t, env, &resp)
	return resp.Task
}

func decodeData(t *testing.T, env envelope, v any) {
	t.Helper()
	require.NotEmpty(t, env.Data, "envelope has no data")
	require.NoError(t, json.Unmarshal(env.Data, v))
}

func dataMap(t *testing.T, env envelope) map[string]string {
	t.Helper()
	var m map[string]string
	decodeData(t, env, &m)
	return m
}
