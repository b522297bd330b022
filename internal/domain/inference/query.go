// Package inference builds the parameterized scoring query and encodes
// its result set for the wire.
package inference

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/trazo-ml/trazo/internal/domain/pixel"
)

const defaultFunction = "mnist_predict"

// Query is the prebuilt inference call. The SQL text is assembled once at
// construction and never changes across requests; only the bound values
// differ per request.
type Query struct {
	function string
	sql      string
	slots    []string
}

// Option applies a configuration option to the Query.
type Option func(*Query)

// WithFunction sets the scoring function invoked by the query. The name
// may be schema-qualified, e.g. "models.mnist_predict".
func WithFunction(name string) Option {
	return func(q *Query) {
		if name != "" {
			q.function = name
		}
	}
}

// NewQuery assembles the inference call with one named slot per pixel,
// PX1 through PX784, in slot order. Slot i carries pixel index i-1; the
// scoring function relies on that correspondence for every prediction.
func NewQuery(opts ...Option) *Query {
	q := &Query{function: defaultFunction}
	for _, opt := range opts {
		opt(q)
	}

	q.slots = make([]string, pixel.VectorLen)
	var b strings.Builder
	b.WriteString("SELECT * FROM ")
	b.WriteString(q.function)
	b.WriteString("(")
	for i := 0; i < pixel.VectorLen; i++ {
		q.slots[i] = fmt.Sprintf("PX%d", i+1)
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("@")
		b.WriteString(q.slots[i])
	}
	b.WriteString(")")
	q.sql = b.String()
	return q
}

// SQL returns the constant query text.
func (q *Query) SQL() string {
	return q.sql
}

// Bind maps the vector onto the named slots: PX1 gets v[0], PX784 gets
// v[783]. The vector is assumed validated; Bind itself never fails.
func (q *Query) Bind(v pixel.Vector) pgx.NamedArgs {
	args := make(pgx.NamedArgs, len(q.slots))
	for i, slot := range q.slots {
		args[slot] = v[i]
	}
	return args
}
