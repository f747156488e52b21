package app

import (
	"context"
	"log"
	"time"
)

type jobExpirer interface {
	ExpireOverdue(ctx context.Context) (int, error)
}

// RunJobExpiry closes active jobs older than the configured maximum duration,
// once at start and then on every tick until ctx is done.
func RunJobExpiry(ctx context.Context, jobs jobExpirer, interval time.Duration, logger *log.Logger) {
	if jobs == nil || interval <= 0 {
		return
	}
	if logger == nil {
		logger = log.Default()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	expireOnce(ctx, jobs, logger)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			expireOnce(ctx, jobs, logger)
		}
	}
}

func expireOnce(ctx context.Context, jobs jobExpirer, logger *log.Logger) {
	n, err := jobs.ExpireOverdue(ctx)
	if err != nil {
		logger.Printf("[Jobs] expiry run failed | error=%v", err)
		return
	}
	if n > 0 {
		logger.Printf("[Jobs] expired overdue jobs | count=%d", n)
	}
}
