// Package probe fires synthetic digit drawings at a running gateway and
// verifies the responses carry well-formed prediction fragments.
package probe

import (
	"sync/atomic"
	"time"
)

// Config controls one probe run.
type Config struct {
	// BaseURL is the gateway under test, e.g. "http://localhost:8087".
	BaseURL string

	// Requests is the number of synthetic drawings to submit.
	Requests int

	// Workers is the number of concurrent submitters.
	Workers int

	// Timeout bounds each HTTP request.
	Timeout time.Duration

	// Verbose enables per-request logging.
	Verbose bool
}

// Stats accumulates probe counters across workers.
type Stats struct {
	StartTime time.Time

	Submitted atomic.Int64
	Succeeded atomic.Int64
	Failed    atomic.Int64
}
