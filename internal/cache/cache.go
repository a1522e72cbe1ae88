package cache

import "sync"

// Cache is a generic thread-safe LRU cache with soft limit.
// When the cache exceeds softLimit, the least recently used entries are
// evicted and handed to the eviction callback.
//
// Cache must not be copied after creation (has mutex).
type Cache[K comparable, V any] struct {
	mu        sync.Mutex
	entries   map[K]*cacheEntry[V]
	softLimit int
	tick      int64 // Monotonic access counter
	onEvict   func(K, V)
}

// cacheEntry holds a cached value with its access time.
type cacheEntry[V any] struct {
	value V
	atime int64
}

// New creates a new cache with the given soft limit.
// A softLimit of 0 means unlimited.
func New[K comparable, V any](softLimit int) *Cache[K, V] {
	return &Cache[K, V]{
		entries:   make(map[K]*cacheEntry[V]),
		softLimit: softLimit,
	}
}

// OnEvict registers f to be called for every value removed by eviction
// or Clear. f runs with the cache lock held and must not call back into
// the cache.
func (c *Cache[K, V]) OnEvict(f func(K, V)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onEvict = f
}

// Get retrieves a value from the cache.
// Returns (value, true) if found, (zero, false) otherwise.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.tick++
	entry.atime = c.tick
	return entry.value, true
}

// GetOrCreate returns the cached value for key or stores the result of
// create. create is called under the lock, so concurrent callers never
// create the same key twice. A create error is returned and nothing is
// stored.
func (c *Cache[K, V]) GetOrCreate(key K, create func() (V, error)) (V, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tick++
	if entry, ok := c.entries[key]; ok {
		entry.atime = c.tick
		return entry.value, nil
	}

	value, err := create()
	if err != nil {
		var zero V
		return zero, err
	}
	c.entries[key] = &cacheEntry[V]{value: value, atime: c.tick}

	if c.softLimit > 0 && len(c.entries) > c.softLimit {
		c.evictOldest()
	}
	return value, nil
}

// Clear removes all entries from the cache.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.onEvict != nil {
		for k, e := range c.entries {
			c.onEvict(k, e.value)
		}
	}
	c.entries = make(map[K]*cacheEntry[V])
	c.tick = 0
}

// Len returns the number of entries in the cache.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// evictOldest removes least recently used entries until the cache holds
// three quarters of softLimit. Caller must hold c.mu.
func (c *Cache[K, V]) evictOldest() {
	target := max(c.softLimit*3/4, 1)
	for len(c.entries) > target {
		var (
			oldestKey K
			oldest    *cacheEntry[V]
		)
		for k, e := range c.entries {
			if oldest == nil || e.atime < oldest.atime {
				oldestKey, oldest = k, e
			}
		}
		delete(c.entries, oldestKey)
		if c.onEvict != nil {
			c.onEvict(oldestKey, oldest.value)
		}
	}
}
