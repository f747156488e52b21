package usecase

import (
	"context"
	"time"
)

// Cache is the subset of the Redis cache the usecases rely on. A nil Cache
// disables caching.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteByPattern(ctx context.Context, pattern string) error
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
}

// waitForCache is what a request does when another one holds the rebuild lock:
// back off briefly and look again.
func waitForCache(ctx context.Context, c Cache, key string, out any) bool {
	jitter := time.Duration(time.Now().UnixNano()%201) * time.Millisecond
	t := time.NewTimer(300*time.Millisecond + jitter)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
	}
	hit, err := c.GetJSON(ctx, key, out)
	return err == nil && hit
}
