package apiclient

import "errors"

var (
	ErrMissingBaseURL   = errors.New("apiclient: missing base URL")
	ErrMissingUserAgent = errors.New("apiclient: missing user agent")
	ErrRequestFailed    = errors.New("apiclient: request failed")
)
