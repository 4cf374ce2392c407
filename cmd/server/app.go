package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/phrazzld/taskboard-api/internal/platform/sqlstore"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config    *config.Config
	logger    *slog.Logger
	db        *sql.DB
	startedAt time.Time

	userStore store.UserStore
	taskStore store.TaskStore

	jwtService   auth.JWTService
	hasher       auth.PasswordHasher
	userService  service.UserService
	taskService  service.TaskService
	statsService service.StatsService
}

// newApplication creates a new application instance with all dependencies
// initialized. The database connection must already be established.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	if logger == nil {
		logger = slog.Default()
	}

	app := &application{
		config:    cfg,
		logger:    logger,
		db:        db,
		startedAt: time.Now(),
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	app.hasher = auth.NewBcryptHasher(cfg.Auth.BCryptCost)

	app.userStore = sqlstore.NewUserStore(db, logger)
	app.taskStore = sqlstore.NewTaskStore(db, logger)

	app.userService = service.NewUserService(
		app.userStore,
		app.taskStore,
		app.hasher,
		app.jwtService,
		db,
		logger,
	)
	app.taskService = service.NewTaskService(app.taskStore, db, logger)
	app.statsService = service.NewStatsService(app.taskStore, logger)

	return app, nil
}

// Run serves HTTP until ctx is canceled, then releases resources.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}
	app.logger.Info("application shutdown completed")
}
