package testdb

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/phrazzld/taskboard-api/internal/platform/sqlstore"
	"github.com/stretchr/testify/require"
)

// TestTimeout defines a default timeout for test database operations.
const TestTimeout = 5 * time.Second

// pgMu serializes tests that share the single PostgreSQL database.
var pgMu sync.Mutex

// Open returns a migrated, empty database that is closed when the test ends.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	cfg := Config(t)
	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	if cfg.Driver == sqlstore.DriverPostgres {
		pgMu.Lock()
		t.Cleanup(pgMu.Unlock)
	}

	db, err := sqlstore.Open(ctx, cfg, nil)
	require.NoError(t, err, "failed to open test database")

	migrator, err := sqlstore.NewMigrator(db, cfg.Driver, nil)
	require.NoError(t, err, "failed to create migrator")
	require.NoError(t, migrator.Up(ctx), "failed to apply migrations")

	if cfg.Driver == sqlstore.DriverPostgres {
		truncate(t, db)
	}

	t.Cleanup(func() {
		if cfg.Driver == sqlstore.DriverPostgres {
			truncate(t, db)
		}
		if err := db.Close(); err != nil {
			t.Logf("warning: failed to close test database: %v", err)
		}
	})

	return db
}

// Config returns the database configuration Open would use for t.
func Config(t *testing.T) config.DatabaseConfig {
	t.Helper()

	cfg := config.DatabaseConfig{
		MaxOpenConns:           5,
		MaxIdleConns:           2,
		ConnMaxLifetimeMinutes: 5,
		AutoMigrate:            true,
	}
	if url := PostgresURL(); url != "" {
		cfg.Driver = sqlstore.DriverPostgres
		cfg.URL = url
		return cfg
	}

	cfg.Driver = sqlstore.DriverSQLite
	cfg.URL = "file:" + filepath.Join(t.TempDir(), "taskboard.db") + "?_busy_timeout=5000"
	return cfg
}

func truncate(t *testing.T, db *sql.DB) {
	t.Helper()
	for _, table := range []string{"tasks", "users"} {
		_, err := db.Exec("DELETE FROM " + table)
		require.NoError(t, err, "failed to clean table %s", table)
	}
}
