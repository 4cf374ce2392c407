// Package domain holds the User and Task entities, their validation rules,
// and the pure functions for sorting, filtering and summarizing tasks.
package domain
