package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

const defaultTTL = 30 * time.Minute

// MemoryCache implements an in-memory cache with periodic expiry cleanup
type MemoryCache struct {
	mu     sync.RWMutex
	items  map[string]*cacheItem
	stats  CacheStats
	stopCh chan struct{}
	wg     sync.WaitGroup
}

type cacheItem struct {
	value  []byte
	expiry time.Time
}

// Ensure MemoryCache implements Cache interface
var _ Cache = (*MemoryCache)(nil)

// NewMemoryCache creates a new in-memory cache
func NewMemoryCache() *MemoryCache {
	mc := &MemoryCache{
		items:  make(map[string]*cacheItem),
		stopCh: make(chan struct{}),
	}

	mc.wg.Add(1)
	go mc.cleanupExpired()

	return mc
}

// Get retrieves a value from the cache
func (mc *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool) {
	mc.mu.RLock()
	item, exists := mc.items[key]
	mc.mu.RUnlock()

	if !exists {
		atomic.AddInt64(&mc.stats.Misses, 1)
		return nil, false
	}

	if time.Now().After(item.expiry) {
		_ = mc.Delete(ctx, key)
		atomic.AddInt64(&mc.stats.Misses, 1)
		return nil, false
	}

	atomic.AddInt64(&mc.stats.Hits, 1)
	return item.value, true
}

// Set stores a value in the cache with a TTL
func (mc *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = defaultTTL
	}

	mc.mu.Lock()
	mc.items[key] = &cacheItem{
		value:  value,
		expiry: time.Now().Add(ttl),
	}
	mc.mu.Unlock()
	return nil
}

// Delete removes a value from the cache
func (mc *MemoryCache) Delete(ctx context.Context, key string) error {
	mc.mu.Lock()
	if _, exists := mc.items[key]; exists {
		delete(mc.items, key)
		atomic.AddInt64(&mc.stats.Evictions, 1)
	}
	mc.mu.Unlock()
	return nil
}

// Stats returns a copy of the current cache statistics
func (mc *MemoryCache) Stats() CacheStats {
	return CacheStats{
		Hits:      atomic.LoadInt64(&mc.stats.Hits),
		Misses:    atomic.LoadInt64(&mc.stats.Misses),
		Evictions: atomic.LoadInt64(&mc.stats.Evictions),
	}
}

// Stop terminates the cleanup goroutine
func (mc *MemoryCache) Stop() {
	close(mc.stopCh)
	mc.wg.Wait()
}

func (mc *MemoryCache) cleanupExpired() {
	defer mc.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-mc.stopCh:
			return
		case <-ticker.C:
			now := time.Now()
			mc.mu.Lock()
			for key, item := range mc.items {
				if now.After(item.expiry) {
					delete(mc.items, key)
					atomic.AddInt64(&mc.stats.Evictions, 1)
				}
			}
			mc.mu.Unlock()
		}
	}
}
