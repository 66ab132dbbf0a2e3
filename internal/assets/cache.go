package assets

import (
	"context"
	"sync"
)

// ResourceCache is an in-memory cache of fetched resources keyed by locator.
type ResourceCache struct {
	data map[string][]byte
	mu   sync.RWMutex

	// Stats
	hits   int
	misses int
}

// NewResourceCache creates an empty cache.
func NewResourceCache() *ResourceCache {
	return &ResourceCache{
		data: make(map[string][]byte),
	}
}

// Get retrieves a resource from the cache.
func (c *ResourceCache) Get(locator string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[locator]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores a resource.
func (c *ResourceCache) Set(locator string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[locator] = data
}

// Clear drops every resource and resets the stats.
func (c *ResourceCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Len returns the number of cached resources.
func (c *ResourceCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// Stats returns cache statistics.
func (c *ResourceCache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}

// CachingFetcher serves repeated fetches of a locator from a ResourceCache.
// Failed fetches are not cached.
type CachingFetcher struct {
	next  Fetcher
	cache *ResourceCache
}

// NewCachingFetcher wraps next with cache.
func NewCachingFetcher(next Fetcher, cache *ResourceCache) *CachingFetcher {
	return &CachingFetcher{next: next, cache: cache}
}

// Fetch implements Fetcher.
func (f *CachingFetcher) Fetch(ctx context.Context, locator string) ([]byte, error) {
	if data, ok := f.cache.Get(locator); ok {
		return data, nil
	}
	data, err := f.next.Fetch(ctx, locator)
	if err != nil {
		return nil, err
	}
	f.cache.Set(locator, data)
	return data, nil
}

// Cache returns the underlying cache.
func (f *CachingFetcher) Cache() *ResourceCache {
	return f.cache
}
