package rates

import (
	"context"
	"sync"
	"time"
)

// MemoryCache is an in-process RegionCache with per-entry TTL. Entries
// are keyed by (session id, postcode) and live as long as the checkout
// session is expected to.
type MemoryCache struct {
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	regionID  string
	expiresAt time.Time
}

// NewMemoryCache creates an in-memory region cache. A non-positive ttl
// disables expiry.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
	}
}

func cacheKey(sessionID, postcode string) string {
	return sessionID + "|" + postcode
}

// Get returns the cached region id for the session's postcode.
func (c *MemoryCache) Get(_ context.Context, sessionID, postcode string) (string, bool) {
	c.mu.RLock()
	entry, ok := c.entries[cacheKey(sessionID, postcode)]
	c.mu.RUnlock()

	if !ok {
		return "", false
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, cacheKey(sessionID, postcode))
		c.mu.Unlock()
		return "", false
	}
	return entry.regionID, true
}

// Put stores a resolved region id for the session's postcode.
func (c *MemoryCache) Put(_ context.Context, sessionID, postcode, regionID string) {
	entry := memoryEntry{regionID: regionID}
	if c.ttl > 0 {
		entry.expiresAt = time.Now().Add(c.ttl)
	}

	c.mu.Lock()
	c.entries[cacheKey(sessionID, postcode)] = entry
	c.mu.Unlock()
}

var _ RegionCache = (*MemoryCache)(nil)
