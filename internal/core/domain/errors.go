package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrTransport indicates a remote call failed at the network level.
	ErrTransport = errors.New("transport failure")

	// ErrParse indicates a malformed remote response or body encoding.
	ErrParse = errors.New("malformed response")

	// ErrTimeout indicates a bounded wait exceeded its ceiling.
	ErrTimeout = errors.New("timed out")

	// ErrState indicates the secret store is unavailable or corrupt.
	ErrState = errors.New("secret store unavailable")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// Authentication Errors.

	// ErrAuth indicates missing, invalid, or denied credentials.
	ErrAuth = errors.New("authentication failed")

	// ErrNoRefreshToken indicates the provider returned no refresh token
	// and none is stored, so the session cannot outlive the access token.
	ErrNoRefreshToken = errors.New("no refresh token available")

	// ErrAuthRequired indicates the engine has no valid credentials yet.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthInProgress indicates a login attempt is already pending.
	// A second attempt is rejected rather than cancelling the first.
	ErrAuthInProgress = errors.New("authorization already in progress")

	// Engine Errors.

	// ErrPollingActive indicates the polling loop is already running.
	ErrPollingActive = errors.New("polling already active")
)
