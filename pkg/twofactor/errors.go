package twofactor

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConfigured indicates no viable credential exists for any of
	// the challenged verification kinds.
	ErrNotConfigured = errors.New("twofactor: no two-factor credential configured")

	// ErrInvalidCode indicates a code failed the 6-digit format check and
	// was never transmitted.
	ErrInvalidCode = errors.New("twofactor: code is not a 6-digit number")

	// ErrStaleEmailCode indicates the configured email code was already
	// consumed by a previous verification.
	ErrStaleEmailCode = errors.New("twofactor: configured email code was already used")

	// ErrCodeRejected indicates the remote API answered the verification
	// request but did not accept the code.
	ErrCodeRejected = errors.New("twofactor: verification code rejected")

	// ErrRateLimited is the sentinel matched by RateLimitedError.
	ErrRateLimited = errors.New("twofactor: rate limited")

	// ErrVerificationFailed indicates a transport or server failure
	// during verification, distinct from a rejected code.
	ErrVerificationFailed = errors.New("twofactor: verification request failed")
)

// RateLimitedError reports an HTTP 429 from a verification endpoint. It
// must not be conflated with a rejected code; callers should back off
// rather than retry immediately.
type RateLimitedError struct {
	Status int
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("twofactor: rate limited (status %d)", e.Status)
}

func (e *RateLimitedError) Unwrap() error {
	return ErrRateLimited
}
