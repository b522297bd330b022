package db

import "errors"

// Sentinel kinds for pool errors.
var (
	// ErrInit marks a pool that could not be established at startup.
	ErrInit = errors.New("pool initialization failed")

	// ErrPoolClosed marks an acquisition attempted after shutdown began.
	ErrPoolClosed = errors.New("pool is closed")

	// ErrAcquireTimeout marks an acquisition that waited out the
	// configured timeout while the pool was saturated.
	ErrAcquireTimeout = errors.New("connection acquire timed out")

	// ErrCloseTimeout marks a shutdown whose grace period elapsed with
	// connections still checked out.
	ErrCloseTimeout = errors.New("pool close timed out")

	// ErrQuery marks a failed execution on a checked-out connection.
	ErrQuery = errors.New("query execution failed")
)
