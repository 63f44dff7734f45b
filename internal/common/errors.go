// Package common defines shared constants and sentinel errors used across
// CashLog components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Login-token lifecycle errors (unknown or already consumed token).
	ErrInvalidToken = errors.New("invalid token")

	// Validation errors carry field-level details separately; this sentinel
	// only marks the class of failure.
	ErrorValidation = errors.New("validation error")
)
