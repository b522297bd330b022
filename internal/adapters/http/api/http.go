// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/trazo-ml/trazo/internal/domain/inference"
	"github.com/trazo-ml/trazo/internal/domain/pixel"
	"github.com/trazo-ml/trazo/pkg/metrics"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Predict scores one validated pixel vector against the hosted model.
	Predict(ctx context.Context, v pixel.Vector) (inference.Result, error)

	// Ping reports whether the backing database is reachable.
	Ping(ctx context.Context) error
}

// Server wires HTTP routes for the inference gateway.
type Server struct {
	dispatchHandler *DispatchHandler
	healthHandler   *HealthHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		dispatchHandler: NewDispatchHandler(deps),
		healthHandler:   NewHealthHandler(deps),
	}
}

// Register attaches all HTTP routes to mux. The root route carries the
// whole dispatch state machine: assets, canvas page, and pixel payloads
// all arrive as path shapes under "/".
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
	mux.HandleFunc("/", RequestIDMiddleware(MetricsMiddleware(s.dispatchHandler.HandleRoot, "dispatch")))
}
