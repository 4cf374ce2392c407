package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/phrazzld/taskboard-api/internal/platform/sqlstore"
)

// setupAppDatabase opens the configured connection pool and verifies it.
func setupAppDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sql.DB, error) {
	db, err := sqlstore.Open(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to set up database: %w", err)
	}
	return db, nil
}
