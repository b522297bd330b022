package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNoPool     = errors.New("no connection pool configured")
	ErrNotStarted = errors.New("service not started")
)
