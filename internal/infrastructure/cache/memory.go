package cache

import (
	"context"
	"sync"
	"time"

	"github.com/riderbuilder/backend/internal/domain"
)

// cacheItem is a single cached rider with its expiration
type cacheItem struct {
	rider      domain.Rider
	expiration time.Time
}

// MemoryRiderCache is a thread-safe in-memory rider cache with TTL support.
// Riders are stored and returned by value, so callers can never mutate a
// cached record through a returned pointer.
type MemoryRiderCache struct {
	data  map[string]cacheItem
	mutex sync.RWMutex
}

// NewMemoryRiderCache creates a new in-memory rider cache
func NewMemoryRiderCache() *MemoryRiderCache {
	c := &MemoryRiderCache{
		data: make(map[string]cacheItem),
	}

	// Background sweep removes expired entries every 10 minutes
	go c.cleanupExpired()

	return c
}

// Get retrieves a cached rider, or ErrCacheMiss when absent or expired
func (c *MemoryRiderCache) Get(ctx context.Context, key string) (*domain.Rider, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.data[key]
	if !exists {
		return nil, domain.ErrCacheMiss
	}

	if time.Now().After(item.expiration) {
		return nil, domain.ErrCacheMiss
	}

	rider := item.rider
	return &rider, nil
}

// Set stores a rider with the given TTL
func (c *MemoryRiderCache) Set(ctx context.Context, key string, rider *domain.Rider, ttl time.Duration) error {
	if rider == nil {
		return domain.ErrInvalidRequest
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = cacheItem{
		rider:      *rider,
		expiration: time.Now().Add(ttl),
	}

	return nil
}

// Delete removes a cached rider
func (c *MemoryRiderCache) Delete(ctx context.Context, key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
	return nil
}

// Size returns the current number of cached riders (for debugging/monitoring)
func (c *MemoryRiderCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}

// Clear removes all cached riders
func (c *MemoryRiderCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.data = make(map[string]cacheItem)
}

// cleanupExpired removes expired entries periodically
func (c *MemoryRiderCache) cleanupExpired() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mutex.Lock()
		now := time.Now()
		for key, item := range c.data {
			if now.After(item.expiration) {
				delete(c.data, key)
			}
		}
		c.mutex.Unlock()
	}
}
