package config

import "errors"

var (
	// ErrLoadConfig marks a config file or environment that could not be read
	// or decoded.
	ErrLoadConfig = errors.New("load config failed")
	// ErrInvalidConfig marks settings that decoded but fail validation.
	ErrInvalidConfig = errors.New("invalid config")
)
