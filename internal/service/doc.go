// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and stores
// (defined in internal/store) to fulfill application features.
//
// Key components:
//
// 1. UserService: registration, login, profile maintenance and account
// deletion. Passwords are hashed through auth.PasswordHasher and tokens are
// issued through auth.JWTService.
//
// 2. TaskService: owner-scoped task CRUD with filtering and sorting.
//
// 3. StatsService: per-user task statistics computed from a single
// aggregate store query.
//
// Every operation receives the authenticated user ID by value and touches
// only data owned by that user. Services depend on store interfaces, never on
// a specific database implementation, and apply transactional boundaries
// with store.RunInTransaction when an operation spans several writes.
package service
