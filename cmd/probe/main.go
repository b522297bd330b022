package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/trazo-ml/trazo/internal/probe"
	"github.com/trazo-ml/trazo/pkg/logger"
)

// Default configuration constants.
const (
	defaultRequests   = 100
	defaultTimeout    = 30 * time.Second
	defaultRunTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:8087", "Base URL of the gateway")
		requests = flag.Int("requests", defaultRequests, "Number of synthetic drawings to submit")
		workers  = flag.Int("workers", runtime.NumCPU(), "Number of concurrent workers")
		timeout  = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose  = flag.Bool("verbose", false, "Log every prediction")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	cfg := &probe.Config{
		BaseURL:  *baseURL,
		Requests: *requests,
		Workers:  *workers,
		Timeout:  *timeout,
		Verbose:  *verbose,
	}

	if err := probe.Run(ctx, cfg); err != nil {
		logger.Get().Error(ctx, "probe failed", logger.Error(err))
		os.Exit(1)
	}
}
