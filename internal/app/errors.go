package service

import "errors"

// Sentinel error kinds returned by the service.
var (
	// ErrInvalidInput reports a request that is missing a team code.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotStarted is returned when a request arrives before Start.
	ErrNotStarted = errors.New("service not started")
)
