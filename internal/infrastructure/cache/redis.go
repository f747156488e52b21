package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net"
	"strings"
	"sync/atomic"
	"time"

	"jobboard/internal/config"

	"github.com/redis/go-redis/v9"
)

const (
	defaultTTL     = 600 * time.Second
	defaultLockTTL = 30 * time.Second

	// scanBatch bounds both SCAN COUNT and the keys per UNLINK.
	scanBatch = 200
)

var ErrUnavailable = errors.New("cache: redis unavailable")

// Redis is a JSON cache keyed under a fixed prefix. A nil or unconnected
// value is a valid cache that never hits.
type Redis struct {
	client *redis.Client
	logger *log.Logger
	ttl    time.Duration
	prefix string

	warned atomic.Bool
}

func NewRedis(cfg config.RedisConfig, logger *log.Logger) *Redis {
	r := Disabled(logger)
	if cfg.TTL > 0 {
		r.ttl = cfg.TTL
	}
	r.prefix = cfg.Prefix

	client := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		r.warnOnce(err)
		_ = client.Close()
		return r
	}

	r.client = client
	r.logf("[Cache] Redis connected addr=%s db=%d prefix=%q", client.Options().Addr, cfg.DB, cfg.Prefix)
	return r
}

// Disabled returns a cache that never stores anything.
func Disabled(logger *log.Logger) *Redis {
	return &Redis{logger: logger, ttl: defaultTTL}
}

func (r *Redis) off() bool {
	return r == nil || r.client == nil
}

func (r *Redis) key(k string) string {
	return r.prefix + k
}

func (r *Redis) logf(format string, args ...any) {
	if r != nil && r.logger != nil {
		r.logger.Printf(format, args...)
	}
}

func (r *Redis) warnOnce(err error) {
	if r != nil && r.warned.CompareAndSwap(false, true) {
		r.logf("[Cache] Redis unavailable, bypassing cache: %v", err)
	}
}

// failed records a command error; redis.Nil is a miss, not a failure.
func (r *Redis) failed(err error) error {
	if err == nil || errors.Is(err, redis.Nil) {
		return nil
	}
	r.warnOnce(err)
	return err
}

func (r *Redis) Ping(ctx context.Context) error {
	if r.off() {
		return ErrUnavailable
	}
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	if r.off() {
		return nil
	}
	return r.client.Close()
}

func (r *Redis) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	if r.off() {
		return false, nil
	}
	b, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		return false, r.failed(err)
	}
	if len(b) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Redis) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if r.off() {
		return nil
	}
	if ttl <= 0 {
		ttl = r.ttl
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.failed(r.client.Set(ctx, r.key(key), b, ttl).Err())
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if r.off() {
		return nil
	}
	return r.failed(r.client.Del(ctx, r.key(key)).Err())
}

// DeleteByPattern walks the keyspace with SCAN and unlinks matches in batches.
func (r *Redis) DeleteByPattern(ctx context.Context, pattern string) error {
	if r.off() {
		return nil
	}
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil
	}

	iter := r.client.Scan(ctx, 0, r.key(pattern), scanBatch).Iterator()
	batch := make([]string, 0, scanBatch)
	removed := 0
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := r.client.Unlink(ctx, batch...).Err(); err != nil {
			return r.failed(err)
		}
		removed += len(batch)
		batch = batch[:0]
		return nil
	}

	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == scanBatch {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := iter.Err(); err != nil {
		return r.failed(err)
	}
	if err := flush(); err != nil {
		return err
	}
	if removed > 0 {
		r.logf("[Cache] invalidated %d keys pattern=%s", removed, pattern)
	}
	return nil
}

// SetIfNotExists reports ErrUnavailable when the cache is off so callers skip
// the rebuild-lock wait instead of treating it as a held lock.
func (r *Redis) SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error) {
	if r.off() {
		return false, ErrUnavailable
	}
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	ok, err := r.client.SetNX(ctx, r.key(key), value, ttl).Result()
	if err != nil {
		return false, r.failed(err)
	}
	return ok, nil
}
