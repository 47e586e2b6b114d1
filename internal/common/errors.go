// Package common defines sentinel errors shared across the repository,
// catalog and export layers. Callers should use errors.Is to match them.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Import/export document errors.
	ErrInvalidDocument = errors.New("invalid document")
	ErrUnknownSchema   = errors.New("unknown schema version")

	// Registry errors (package inventory could not be read).
	ErrRegistryUnavailable = errors.New("registry unavailable")
)
