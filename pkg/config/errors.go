package config

import "errors"

var (
	// ErrNilPointer indicates a nil target was passed to Load.
	ErrNilPointer = errors.New("config: nil pointer passed to Load")

	// ErrParsingConfig indicates environment parsing failed.
	ErrParsingConfig = errors.New("config: failed to parse environment")
)
