// Package store declares the persistence contracts for users and tasks and
// the sentinel errors implementations must return. The SQL implementations
// live in internal/platform/sqlstore; services only ever see these
// interfaces.
package store
