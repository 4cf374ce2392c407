package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
)

// setupAppLogger installs the structured JSON logger and logs the
// non-sensitive parts of the configuration.
func setupAppLogger(cfg *config.Config) (*slog.Logger, error) {
	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("database_driver", cfg.Database.Driver),
		slog.Any("allowed_origins", cfg.Server.AllowedOrigins))
	l.Debug("auth configuration",
		slog.Bool("jwt_secret_present", cfg.Auth.JWTSecret != ""),
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes),
		slog.Int("bcrypt_cost", cfg.Auth.BCryptCost))

	return l, nil
}
