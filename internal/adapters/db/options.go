// Package db manages the bounded set of PostgreSQL connections shared by
// all in-flight requests.
package db

import (
	"time"

	"github.com/trazo-ml/trazo/pkg/logger"
)

// Option applies a configuration option to the Pool.
type Option func(*Pool)

// WithURL sets the connection string, e.g.
// "postgres://localhost:5432/digits".
func WithURL(url string) Option {
	return func(p *Pool) {
		if url != "" {
			p.url = url
		}
	}
}

// WithCredentials sets the database user and password, overriding any
// carried in the URL.
func WithCredentials(user, password string) Option {
	return func(p *Pool) {
		p.user = user
		p.password = password
	}
}

// WithMinConns sets the minimum number of idle connections kept open.
func WithMinConns(n int) Option {
	return func(p *Pool) {
		if n > 0 {
			p.minConns = int32(n)
		}
	}
}

// WithMaxConns sets the hard upper bound on open connections.
func WithMaxConns(n int) Option {
	return func(p *Pool) {
		if n > 0 {
			p.maxConns = int32(n)
		}
	}
}

// WithAcquireTimeout bounds how long Acquire waits on a saturated pool.
func WithAcquireTimeout(d time.Duration) Option {
	return func(p *Pool) {
		if d > 0 {
			p.acquireTimeout = d
		}
	}
}

// WithLogger sets a custom logger for the pool.
func WithLogger(log logger.Logger) Option {
	return func(p *Pool) {
		if log != nil {
			p.log = log
		}
	}
}
