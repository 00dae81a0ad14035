package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
)

// Reference is a small TTL cache for the read-only catalog data (services,
// barbers) that every booking form needs. Redis is optional: with no
// address configured every lookup is a miss and callers hit the backend.
type Reference struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewReference(addr, password string, ttl time.Duration, logger *slog.Logger) *Reference {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Reference{ttl: ttl, logger: logger}
	if addr != "" {
		r.rdb = redis.NewClient(&redis.Options{Addr: addr, Password: password})
	}
	return r
}

// Get unmarshals the cached value under key into out. Any failure (disabled
// cache, connection problem, stale encoding) is just a miss.
func (r *Reference) Get(ctx context.Context, key string, out any) bool {
	if r.rdb == nil {
		return false
	}
	data, err := r.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.logger.Debug("reference cache read failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false
	}
	return true
}

// Set stores value under key for the configured TTL. Failures are logged
// and swallowed; the cache never breaks a page.
func (r *Reference) Set(ctx context.Context, key string, value any) {
	if r.rdb == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := r.rdb.Set(ctx, key, data, r.ttl).Err(); err != nil {
		r.logger.Debug("reference cache write failed", "key", key, "error", err)
	}
}

// Invalidate drops a key (used after staff creation changes the barber
// list).
func (r *Reference) Invalidate(ctx context.Context, key string) {
	if r.rdb == nil {
		return
	}
	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		r.logger.Debug("reference cache invalidate failed", "key", key, "error", err)
	}
}

// Close releases the underlying connection pool.
func (r *Reference) Close() error {
	if r.rdb == nil {
		return nil
	}
	return r.rdb.Close()
}
