package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/phrazzld/taskboard-api/internal/api"
	apiMiddleware "github.com/phrazzld/taskboard-api/internal/api/middleware"
)

// APIBasePath prefixes every versioned endpoint.
const APIBasePath = "/api/v1"

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.config.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{apiMiddleware.TraceIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.NotFound(api.NotFound)
	r.MethodNotAllowed(api.MethodNotAllowed)

	handlers := api.Handlers{
		Auth:   api.NewAuthHandler(app.userService, app.logger),
		Users:  api.NewUserHandler(app.userService, app.statsService, app.logger),
		Tasks:  api.NewTaskHandler(app.taskService, app.logger),
		Health: api.NewHealthHandler(app.startedAt),
	}
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService, app.logger)

	// Unversioned health check for load balancers
	r.Get("/health", handlers.Health.Check)

	r.Route(APIBasePath, func(r chi.Router) {
		api.RegisterRoutes(r, handlers, authMiddleware.Authenticate)
	})

	return r
}
