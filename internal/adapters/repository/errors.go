package repository

import "errors"

// Sentinel kinds for match store errors.
var (
	ErrUnavailable   = errors.New("match store unavailable")
	ErrMalformed     = errors.New("match store malformed")
	ErrUnknownDriver = errors.New("unknown match store driver")
)
