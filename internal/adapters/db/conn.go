package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trazo-ml/trazo/pkg/logger"
	"github.com/trazo-ml/trazo/pkg/metrics"
)

// Conn is a connection checked out of the Pool, owned by exactly one
// request at a time. Exactly one of Release or Discard must run before
// the request terminates; both are idempotent so callers can defer
// Release unconditionally and still Discard on a fatal query error.
type Conn struct {
	conn *pgxpool.Conn
	log  logger.Logger
	done bool
}

// Query executes sql on this connection and materializes every row's
// column values. Failures wrap ErrQuery; on failure the caller should
// Discard rather than Release.
func (c *Conn) Query(ctx context.Context, sql string, args ...any) ([][]any, error) {
	rows, err := c.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	defer rows.Close()

	var out [][]any
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrQuery, err)
		}
		out = append(out, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	return out, nil
}

// Release returns the connection to the idle set. Safe to call after
// Discard; the second settle is a no-op.
func (c *Conn) Release() {
	if c.done {
		return
	}
	c.done = true
	c.conn.Release()
}

// Discard removes the connection from the pool and closes it, letting
// the pool establish a replacement up to its maximum. Used when a query
// failed in a way that may have poisoned the session.
func (c *Conn) Discard(ctx context.Context) {
	if c.done {
		return
	}
	c.done = true
	metrics.RecordPoolConnDiscarded()
	raw := c.conn.Hijack()
	if err := raw.Close(ctx); err != nil {
		c.log.Warn(ctx, "discarded connection close failed", logger.Error(err))
	}
}
