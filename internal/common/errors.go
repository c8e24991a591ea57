// Package common defines shared constants and sentinel errors used across
// the wallet server layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal   = errors.New("internal error")
	ErrorValidation = errors.New("validation error")

	// Auth errors. A bad credential and an unknown email map to the same
	// value so the response cannot be used to enumerate accounts.
	ErrorUnauthorized = errors.New("unauthorized")
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token expired")

	// Custody errors.
	ErrMissingSecret = errors.New("account has no custodial secret")
	ErrCorruptKey    = errors.New("stored custodial secret is corrupt")

	// Ledger errors (upstream submission or query failure).
	ErrLedger = errors.New("ledger error")
)
