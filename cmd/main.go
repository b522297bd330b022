package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	db "github.com/trazo-ml/trazo/internal/adapters/db"
	"github.com/trazo-ml/trazo/internal/adapters/http/api"
	service "github.com/trazo-ml/trazo/internal/app"
	"github.com/trazo-ml/trazo/internal/config"
	"github.com/trazo-ml/trazo/pkg/logger"
	"github.com/trazo-ml/trazo/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout         = 10 * time.Second
	writeTimeout        = 30 * time.Second
	idleTimeout         = 60 * time.Second
	readHeaderTimeout   = 5 * time.Second
	shutdownTimeout     = 30 * time.Second
	poolMetricsInterval = 10 * time.Second
)

func main() {
	os.Exit(run())
}

func run() int {
	// Disable default Go metrics collection; the pool gauges and HTTP
	// metrics on the custom registry are the ones that matter here.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Initialize logging
	if err := logger.Init(); err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return 1
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			os.Stderr.WriteString("failed to sync logger: " + err.Error() + "\n")
		}
	}()

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return 1
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Establish the connection pool before binding the listening port:
	// an unreachable database means the process must not serve.
	pool, err := db.New(ctx,
		db.WithURL(cfg.DBURL),
		db.WithCredentials(cfg.DBUser, cfg.DBPassword),
		db.WithMinConns(cfg.PoolMinConns),
		db.WithMaxConns(cfg.PoolMaxConns),
		db.WithAcquireTimeout(time.Duration(cfg.AcquireTimeoutMS)*time.Millisecond),
		db.WithLogger(log),
	)
	if err != nil {
		log.Error(ctx, "connection pool init failed", logger.Error(err))
		return 1
	}

	svc := service.New(
		service.WithDatabase(pool),
		service.WithModelFunction(cfg.ModelFunction),
		service.WithLogger(log),
	)
	if err := svc.Start(ctx); err != nil {
		log.Error(ctx, "failed to start service", logger.Error(err))
		return 1
	}
	defer svc.Stop()

	// Keep the pool gauges fresh.
	go startPoolMetricsUpdater(ctx, pool)

	// HTTP mux and routes.
	mux := http.NewServeMux()
	api.NewServer(svc).Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start the HTTP server
	serveErr := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	}()

	// Wait for shutdown signal or a server failure
	select {
	case err := <-serveErr:
		log.Error(ctx, "HTTP server failed", logger.Error(err))
		_ = pool.Close(time.Duration(cfg.ShutdownGraceMS) * time.Millisecond)
		return 1
	case <-ctx.Done():
	}
	log.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	// Drain the pool last: in-flight requests have released by now or
	// get cut off by the grace period.
	grace := time.Duration(cfg.ShutdownGraceMS) * time.Millisecond
	if err := pool.Close(grace); err != nil {
		log.Error(ctx, "pool close failed", logger.Error(err))
		return 1
	}

	log.Info(ctx, "server stopped")
	return 0
}

// startPoolMetricsUpdater refreshes the pool accounting gauges until the
// root context is canceled.
func startPoolMetricsUpdater(ctx context.Context, pool *db.Pool) {
	ticker := time.NewTicker(poolMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s := pool.Stat()
			metrics.UpdatePoolConns(int(s.TotalConns), int(s.IdleConns), int(s.AcquiredConns))
		}
	}
}
