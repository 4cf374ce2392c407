package testdb

import "os"

// EnvTestDatabaseURL names the variable that switches tests to PostgreSQL.
const EnvTestDatabaseURL = "TASKBOARD_TEST_DATABASE_URL"

// PostgresURL returns the PostgreSQL URL for tests, or "" to use SQLite.
func PostgresURL() string {
	return os.Getenv(EnvTestDatabaseURL)
}

// UsingPostgres reports whether tests run against PostgreSQL.
func UsingPostgres() bool {
	return PostgresURL() != ""
}
