// Package main implements the entry point for the Taskboard API server,
// which manages user accounts and their personal task lists.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// main is the entry point for the taskboard-api server.
// It loads configuration, sets up logging, connects to the database and
// either runs a migration command or serves HTTP until interrupted.
func main() {
	migrateCmd := flag.String("migrate", "",
		"run a migration command (up, down, status, version) and exit")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *migrateCmd); err != nil {
		stop()
		log.Fatalf("taskboard-api: %v", err)
	}
}

// run wires the application together and blocks until ctx is canceled.
func run(ctx context.Context, migrateCmd string) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		return err
	}

	db, err := setupAppDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}

	if migrateCmd != "" {
		defer func() { _ = db.Close() }()
		return handleMigrations(ctx, db, cfg.Database.Driver, migrateCmd, os.Stdout, logger)
	}

	if cfg.Database.AutoMigrate {
		if err := handleMigrations(ctx, db, cfg.Database.Driver, "up", os.Stdout, logger); err != nil {
			_ = db.Close()
			return fmt.Errorf("automatic migration failed: %w", err)
		}
	}

	app, err := newApplication(cfg, logger, db)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	logger.Info("application initialized", slog.Int("port", cfg.Server.Port))
	return app.Run(ctx)
}
