// internal/core/domain/errors.go
package domain

import "errors"

// Sentinel errors shared across services and translated to HTTP status codes
// at the handler boundary.
var (
	// ErrNotFound indicates the referenced entity, user or movement does not exist
	// or is soft-deleted.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates a missing or malformed required field.
	ErrValidation = errors.New("validation failed")

	// ErrConflict indicates a uniqueness violation (duplicate category name,
	// supplier NIT, etc.).
	ErrConflict = errors.New("conflict")

	// ErrInvalidTransition indicates a stock adjustment that violates the
	// increase/decrease bound checks against current stock.
	ErrInvalidTransition = errors.New("invalid stock transition")

	// ErrInvalidValue indicates a negative requested stock on a direct set.
	ErrInvalidValue = errors.New("invalid stock value")

	// ErrConflictingMode indicates increase and decrease were both requested.
	ErrConflictingMode = errors.New("conflicting adjustment mode")

	// ErrInvalidParameter indicates a statistics query parameter outside its
	// allowed set (period, limit, year, metric, kind).
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInvalidMovementType indicates a movement type label outside the
	// vocabulary of the given entity kind.
	ErrInvalidMovementType = errors.New("invalid movement type")

	// ErrInvalidCredentials indicates a failed username/password check.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
