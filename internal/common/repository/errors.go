// Package repository provides shared infrastructure for the MongoDB
// repositories: error sentinels and metrics instrumentation.
package repository

import "errors"

// Common repository errors
var (
	// ErrNotFound indicates the requested entity was not found
	// within the caller's tenant.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicateKey indicates a unique constraint violation.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrOptimisticLock indicates a concurrent modification conflict.
	ErrOptimisticLock = errors.New("optimistic lock failed")
)
