package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"

	"github.com/phrazzld/taskboard-api/internal/platform/sqlstore"
)

// handleMigrations runs one migration command against db. Status and version
// output goes to out.
func handleMigrations(
	ctx context.Context,
	db *sql.DB,
	driver string,
	cmd string,
	out io.Writer,
	logger *slog.Logger,
) error {
	migrator, err := sqlstore.NewMigrator(db, driver, logger)
	if err != nil {
		return err
	}

	logger.Info("executing migrations", slog.String("command", cmd))

	switch cmd {
	case "up":
		return migrator.Up(ctx)
	case "down":
		return migrator.Down(ctx)
	case "version":
		v, err := migrator.Version(ctx)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "version: %d\n", v)
		return err
	case "status":
		statuses, err := migrator.Status(ctx)
		if err != nil {
			return err
		}
		for _, s := range statuses {
			state := "pending"
			if s.Applied {
				state = "applied"
			}
			if _, err := fmt.Fprintf(out, "%05d  %s\n", s.Version, state); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown migration command %q (want up, down, status or version)", cmd)
	}
}
