package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// PostgreSQL error codes
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
	notNullViolationCode    = "23502"
)

// MapError maps a driver error to a store error, wrapping the original
// for debugging. Errors without a mapping are returned unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	switch {
	case IsUniqueViolation(err):
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	case IsForeignKeyViolation(err):
		return fmt.Errorf("%w: foreign key violation: %v", store.ErrInvalidEntity, err)
	case isCheckViolation(err):
		return fmt.Errorf("%w: check constraint violation: %v", store.ErrInvalidEntity, err)
	case isNotNullViolation(err):
		return fmt.Errorf("%w: not null violation: %v", store.ErrInvalidEntity, err)
	}

	return err
}

// IsUniqueViolation reports whether err is a unique constraint violation
// from either supported driver.
func IsUniqueViolation(err error) bool {
	return pgCode(err) == uniqueViolationCode ||
		sqliteExtended(err) == sqlite3.ErrConstraintUnique ||
		sqliteExtended(err) == sqlite3.ErrConstraintPrimaryKey
}

// IsForeignKeyViolation reports whether err is a foreign key violation
// from either supported driver.
func IsForeignKeyViolation(err error) bool {
	return pgCode(err) == foreignKeyViolationCode ||
		sqliteExtended(err) == sqlite3.ErrConstraintForeignKey
}

func isCheckViolation(err error) bool {
	return pgCode(err) == checkViolationCode ||
		sqliteExtended(err) == sqlite3.ErrConstraintCheck
}

func isNotNullViolation(err error) bool {
	return pgCode(err) == notNullViolationCode ||
		sqliteExtended(err) == sqlite3.ErrConstraintNotNull
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func sqliteExtended(err error) sqlite3.ErrNoExtended {
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode
	}
	return -1
}

// CheckRowsAffected returns notFound when result reports zero affected rows.
func CheckRowsAffected(result sql.Result, notFound error) error {
	if result == nil {
		return fmt.Errorf("nil result provided to CheckRowsAffected")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return notFound
	}
	return nil
}
