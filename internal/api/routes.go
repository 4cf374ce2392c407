package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/taskboard-api/internal/api/shared"
)

// Handlers groups the handlers mounted by RegisterRoutes.
type Handlers struct {
	Auth   *AuthHandler
	Users  *UserHandler
	Tasks  *TaskHandler
	Health *HealthHandler
}

// RegisterRoutes mounts the public and protected endpoints on r. The
// authenticate middleware guards everything except register, login and
// health.
func RegisterRoutes(r chi.Router, h Handlers, authenticate func(http.Handler) http.Handler) {
	r.Get("/health", h.Health.Check)

	r.Post("/auth/register", h.Auth.Register)
	r.Post("/auth/login", h.Auth.Login)

	r.Group(func(r chi.Router) {
		r.Use(authenticate)

		r.Get("/auth/me", h.Auth.Me)

		r.Route("/users", func(r chi.Router) {
			r.Get("/profile", h.Users.GetProfile)
			r.Put("/profile", h.Users.UpdateProfile)
			r.Put("/change-password", h.Users.ChangePassword)
			r.Delete("/account", h.Users.DeleteAccount)
			r.Get("/activity-stats", h.Users.ActivityStats)
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", h.Tasks.ListTasks)
			r.Post("/", h.Tasks.CreateTask)
			r.Get("/{id}", h.Tasks.GetTask)
			r.Put("/{id}", h.Tasks.UpdateTask)
			r.Delete("/{id}", h.Tasks.DeleteTask)
		})
	})
}

// HealthResponse is the body of GET /health. It is written without the
// standard envelope so load balancers can probe it cheaply.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    float64   `json:"uptime"`
}

// HealthHandler reports liveness and process uptime in seconds.
type HealthHandler struct {
	started time.Time
	now     func() time.Time
}

// NewHealthHandler creates a HealthHandler whose uptime counts from started.
func NewHealthHandler(started time.Time) *HealthHandler {
	return &HealthHandler{started: started, now: time.Now}
}

// Check handles GET /health.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		Status:    "OK",
		Timestamp: now.UTC(),
		Uptime:    now.Sub(h.started).Seconds(),
	})
}

// NotFound writes the envelope for unmatched routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithError(w, r, http.StatusNotFound, "Route "+r.URL.Path+" not found")
}

// MethodNotAllowed writes the envelope for a known path with the wrong method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithError(w, r, http.StatusMethodNotAllowed,
		"Method "+r.Method+" not allowed on "+r.URL.Path)
}
