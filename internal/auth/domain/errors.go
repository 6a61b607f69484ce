package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrStateMismatch means the OAuth callback state did not match the one
	// issued at the start of the flow. The flow must be restarted.
	ErrStateMismatch = errors.New("oauth state parameter mismatch")

	// ErrNoCredential means the user has never completed Google authorization.
	ErrNoCredential = errors.New("no google credential for user")
)

// ExchangeError wraps a failed authorization-code exchange.
type ExchangeError struct {
	Err error
}

func (e *ExchangeError) Error() string {
	return fmt.Sprintf("google code exchange failed: %v", e.Err)
}

func (e *ExchangeError) Unwrap() error { return e.Err }

// RefreshError wraps a failed token refresh. The stored refresh token may
// have been revoked; the caller must re-run the authorization flow.
type RefreshError struct {
	Err error
}

func (e *RefreshError) Error() string {
	return fmt.Sprintf("google token refresh failed: %v", e.Err)
}

func (e *RefreshError) Unwrap() error { return e.Err }
