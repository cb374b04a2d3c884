package cookiejar

import "errors"

var (
	// ErrMalformedSetCookie indicates a Set-Cookie header without a
	// key=value identity pair.
	ErrMalformedSetCookie = errors.New("cookiejar: malformed Set-Cookie header")
)
