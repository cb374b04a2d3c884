package cookiestore

import "errors"

var (
	// ErrNotFound indicates the backing store file does not exist.
	ErrNotFound = errors.New("cookiestore: store not found")

	// ErrUserNotFound indicates the store exists but has no entry for the
	// requested account.
	ErrUserNotFound = errors.New("cookiestore: no cookies for account")

	// ErrExpired indicates at least one persisted cookie for the account
	// has expired, making the whole jar unusable.
	ErrExpired = errors.New("cookiestore: persisted cookies expired")

	// ErrRead indicates the store exists but could not be read or parsed.
	ErrRead = errors.New("cookiestore: failed to read store")

	// ErrWrite indicates the store could not be written.
	ErrWrite = errors.New("cookiestore: failed to write store")
)
