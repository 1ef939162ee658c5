package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented cache with TTL expiry
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Stop()
}

// CacheStats tracks cache effectiveness
type CacheStats struct {
	Hits      int64
	Misses    int64
	Evictions int64
}
