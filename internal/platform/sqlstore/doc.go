// Package sqlstore implements the store interfaces on database/sql.
//
// The same statements run on PostgreSQL (pgx stdlib driver) and SQLite
// (mattn/go-sqlite3). Placeholders are written as $N and always numbered in
// order of first appearance, because SQLite assigns parameter slots that way.
// UUIDs are bound as text, tags are stored as a JSON array in a TEXT column.
package sqlstore
