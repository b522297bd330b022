package probe

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/trazo-ml/trazo/pkg/logger"
)

// Run executes the complete probe: health check, generation, concurrent
// submission, and a final verdict.
func Run(ctx context.Context, cfg *Config) error {
	stats := &Stats{StartTime: time.Now()}
	log := logger.Get()

	log.Info(ctx, "starting trazo probe",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("requests", cfg.Requests),
		logger.Int("workers", cfg.Workers),
		logger.Duration("timeout", cfg.Timeout),
	)

	client := newHTTPClient(cfg.Timeout)
	if err := client.checkHealth(cfg.BaseURL); err != nil {
		return err
	}

	drawings := generateDrawings(ctx, cfg)

	work := make(chan Drawing)
	var wg sync.WaitGroup
	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for d := range work {
				stats.Submitted.Add(1)
				prediction, err := client.predict(cfg.BaseURL, d.Vector)
				if err != nil {
					stats.Failed.Add(1)
					log.Warn(ctx, "probe request failed",
						logger.String("traceID", d.TraceID),
						logger.Error(err),
					)
					continue
				}
				stats.Succeeded.Add(1)
				if cfg.Verbose {
					log.Info(ctx, "prediction received",
						logger.String("traceID", d.TraceID),
						logger.String("prediction", prediction),
					)
				}
			}
		}()
	}

	for _, d := range drawings {
		select {
		case <-ctx.Done():
			close(work)
			wg.Wait()
			return ctx.Err()
		case work <- d:
		}
	}
	close(work)
	wg.Wait()

	elapsed := time.Since(stats.StartTime)
	log.Info(ctx, "probe finished",
		logger.Int("submitted", int(stats.Submitted.Load())),
		logger.Int("succeeded", int(stats.Succeeded.Load())),
		logger.Int("failed", int(stats.Failed.Load())),
		logger.Duration("elapsed", elapsed),
	)

	if failed := stats.Failed.Load(); failed > 0 {
		return fmt.Errorf("%d of %d requests failed", failed, stats.Submitted.Load())
	}
	return nil
}
