package totp

import "errors"

var (
	ErrMissingSecret             = errors.New("totp: missing secret")
	ErrInvalidSecret             = errors.New("totp: invalid secret")
	ErrFailedToGenerateSecretKey = errors.New("totp: failed to generate secret key")
)
