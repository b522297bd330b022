package db

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trazo-ml/trazo/pkg/logger"
	"github.com/trazo-ml/trazo/pkg/metrics"
)

// Default pool bounds.
const (
	defaultMinConns       = 1
	defaultMaxConns       = 4
	defaultAcquireTimeout = 5 * time.Second
	initPingTimeout       = 10 * time.Second
)

// Pool owns the bounded set of database connections. It is created once
// at startup and closed exactly once at shutdown; every request borrows
// one connection through Acquire and gives it back through Conn.Release
// or Conn.Discard.
type Pool struct {
	url            string
	user           string
	password       string
	minConns       int32
	maxConns       int32
	acquireTimeout time.Duration
	log            logger.Logger

	pool   *pgxpool.Pool
	closed atomic.Bool
}

// Stat is a point-in-time snapshot of pool accounting.
type Stat struct {
	TotalConns    int32
	IdleConns     int32
	AcquiredConns int32
}

// New establishes the pool and verifies the database is reachable. A
// failure here is startup-fatal: the process must not serve without a
// working pool.
func New(ctx context.Context, opts ...Option) (*Pool, error) {
	p := &Pool{
		minConns:       defaultMinConns,
		maxConns:       defaultMaxConns,
		acquireTimeout: defaultAcquireTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.log == nil {
		p.log = logger.Get()
	}

	cfg, err := pgxpool.ParseConfig(p.url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInit, err)
	}
	if p.user != "" {
		cfg.ConnConfig.User = p.user
	}
	if p.password != "" {
		cfg.ConnConfig.Password = p.password
	}
	cfg.MinConns = p.minConns
	cfg.MaxConns = p.maxConns

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInit, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, initPingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: %v", ErrInit, err)
	}

	p.pool = pool
	p.log.Info(ctx, "connection pool established",
		logger.Int("minConns", int(p.minConns)),
		logger.Int("maxConns", int(p.maxConns)),
	)
	return p, nil
}

// Acquire checks out one connection, waiting up to the configured
// acquire timeout while the pool is saturated. The caller owns the
// returned connection exclusively until Release or Discard.
func (p *Pool) Acquire(ctx context.Context) (*Conn, error) {
	if p.closed.Load() {
		return nil, ErrPoolClosed
	}

	actx, cancel := context.WithTimeout(ctx, p.acquireTimeout)
	defer cancel()

	start := time.Now()
	conn, err := p.pool.Acquire(actx)
	metrics.RecordPoolAcquireLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		return nil, p.classifyAcquireError(ctx, err)
	}
	return &Conn{conn: conn, log: p.log}, nil
}

// classifyAcquireError separates pool saturation from every other
// acquisition failure. A deadline error counts as a saturation timeout
// only while the caller's own context is still live; a caller whose
// context died first gets the plain wrapped error.
func (p *Pool) classifyAcquireError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		metrics.RecordPoolAcquireTimeout()
		return fmt.Errorf("%w after %s", ErrAcquireTimeout, p.acquireTimeout)
	}
	return fmt.Errorf("acquire: %w", err)
}

// Ping verifies the backing database is reachable.
func (p *Pool) Ping(ctx context.Context) error {
	if p.closed.Load() {
		return ErrPoolClosed
	}
	if err := p.pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Stat reports current connection accounting for health and metrics.
func (p *Pool) Stat() Stat {
	s := p.pool.Stat()
	return Stat{
		TotalConns:    s.TotalConns(),
		IdleConns:     s.IdleConns(),
		AcquiredConns: s.AcquiredConns(),
	}
}

// Close stops accepting new acquisitions and waits up to grace for
// outstanding connections to come back. Connections still checked out
// after the grace period are abandoned to process exit; the caller is
// expected to treat ErrCloseTimeout as a non-zero exit.
func (p *Pool) Close(grace time.Duration) error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	p.log.Info(context.Background(), "draining connection pool",
		logger.Duration("grace", grace),
	)
	return closeWithGrace(p.pool.Close, grace)
}

// closeWithGrace runs closeFn and bounds the wait for it to finish.
func closeWithGrace(closeFn func(), grace time.Duration) error {
	done := make(chan struct{})
	go func() {
		closeFn()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-time.After(grace):
		return fmt.Errorf("%w after %s", ErrCloseTimeout, grace)
	}
}
