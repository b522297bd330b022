package config

import (
	"errors"
)

// Sentinel kinds for configuration errors.
var (
	// ErrInvalidConfig marks a configuration the process cannot serve with.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrLoadConfig marks a failure reading or decoding a config source.
	ErrLoadConfig = errors.New("load config failed")
)
