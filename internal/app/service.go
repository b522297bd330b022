// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	db "github.com/trazo-ml/trazo/internal/adapters/db"
	"github.com/trazo-ml/trazo/internal/domain/inference"
	"github.com/trazo-ml/trazo/internal/domain/pixel"
	"github.com/trazo-ml/trazo/pkg/logger"
	"github.com/trazo-ml/trazo/pkg/metrics"
)

// Pool is the slice of the connection pool the service depends on.
// *db.Pool satisfies it through poolAdapter; tests substitute fakes.
type Pool interface {
	Acquire(ctx context.Context) (Session, error)
	Ping(ctx context.Context) error
}

// Session is one checked-out connection. Exactly one of Release or
// Discard must settle it; both are idempotent.
type Session interface {
	Query(ctx context.Context, sql string, args ...any) ([][]any, error)
	Release()
	Discard(ctx context.Context)
}

// poolAdapter adapts *db.Pool to the Pool interface.
type poolAdapter struct {
	pool *db.Pool
}

func (a *poolAdapter) Acquire(ctx context.Context) (Session, error) {
	conn, err := a.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

func (a *poolAdapter) Ping(ctx context.Context) error {
	return a.pool.Ping(ctx)
}

// Service executes inference requests against the hosted model.
type Service struct {
	mu sync.RWMutex

	pool          Pool
	query         *inference.Query
	modelFunction string

	started bool

	log logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithDatabase sets the connection pool backing the service.
func WithDatabase(pool *db.Pool) Option {
	return func(s *Service) {
		if pool != nil {
			s.pool = &poolAdapter{pool: pool}
		}
	}
}

// WithPool sets an arbitrary Pool implementation. Intended for tests.
func WithPool(pool Pool) Option {
	return func(s *Service) {
		if pool != nil {
			s.pool = pool
		}
	}
}

// WithModelFunction sets the scoring function invoked by the inference
// query.
func WithModelFunction(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.modelFunction = name
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start builds the inference query template and marks the service ready.
// The template is assembled exactly once; request handling only binds
// values against it.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.pool == nil {
		return ErrNoPool
	}
	if s.log == nil {
		s.log = logger.Get()
	}

	var opts []inference.Option
	if s.modelFunction != "" {
		opts = append(opts, inference.WithFunction(s.modelFunction))
	}
	s.query = inference.NewQuery(opts...)

	s.started = true
	s.log.Info(ctx, "inference service started",
		logger.Int("slots", pixel.VectorLen),
	)
	return nil
}

// Stop marks the service stopped. The pool has its own lifecycle and is
// closed by the process owner, not here.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = false
}

// Predict runs the scoring query for one validated pixel vector. The
// connection is settled exactly once on every path: released after a
// clean run, discarded after a query failure so the pool replaces it.
// The work is detached from the caller's cancellation: a client gone
// mid-flight does not abort the query, and the connection still comes
// back.
func (s *Service) Predict(ctx context.Context, v pixel.Vector) (inference.Result, error) {
	s.mu.RLock()
	query, started := s.query, s.started
	s.mu.RUnlock()
	if !started {
		return inference.Result{}, ErrNotStarted
	}

	ctx = context.WithoutCancel(ctx)
	start := time.Now()

	sess, err := s.pool.Acquire(ctx)
	if err != nil {
		metrics.RecordPredictionError()
		return inference.Result{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer sess.Release()

	rows, err := sess.Query(ctx, query.SQL(), query.Bind(v))
	if err != nil {
		sess.Discard(ctx)
		metrics.RecordPredictionError()
		return inference.Result{}, fmt.Errorf("execute inference: %w", err)
	}

	metrics.RecordPrediction()
	metrics.RecordPredictionLatency(float64(time.Since(start).Milliseconds()))
	return inference.Result{Rows: rows}, nil
}

// Ping reports whether the backing database is reachable.
func (s *Service) Ping(ctx context.Context) error {
	s.mu.RLock()
	pool := s.pool
	s.mu.RUnlock()
	if pool == nil {
		return ErrNoPool
	}
	return pool.Ping(ctx)
}
