package feed

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// cacheKey derives a request key from a set of feed URLs. The set is
// sorted and deduplicated first, so [A, B] and [B, A] resolve to the same
// key and do not trigger redundant refetching.
func cacheKey(urls []string) string {
	sorted := make([]string, len(urls))
	copy(sorted, urls)
	sort.Strings(sorted)

	uniq := sorted[:0]
	for i, u := range sorted {
		if i == 0 || u != sorted[i-1] {
			uniq = append(uniq, u)
		}
	}
	return strings.Join(uniq, "\n")
}

// ttlCache is a mutex-guarded in-memory cache with a fixed time-to-live.
// A zero TTL disables it entirely.
type ttlCache[T any] struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]cacheEntry[T]
	now     func() time.Time
}

type cacheEntry[T any] struct {
	value     T
	expiresAt time.Time
}

func newTTLCache[T any](ttl time.Duration) *ttlCache[T] {
	return &ttlCache[T]{
		ttl:     ttl,
		entries: make(map[string]cacheEntry[T]),
		now:     time.Now,
	}
}

func (c *ttlCache[T]) get(key string) (T, bool) {
	var zero T
	if c.ttl <= 0 {
		return zero, false
	}

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return zero, false
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return zero, false
	}
	return entry.value, true
}

func (c *ttlCache[T]) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *ttlCache[T]) put(key string, value T) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.entries[key] = cacheEntry[T]{value: value, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
}
