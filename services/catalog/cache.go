package catalog

import (
	"strings"
	"sync"
	"time"

	"reelfind/models"
)

// browseCacheKey is the reserved key for the query-less landing feed. The
// NUL prefix keeps it out of the namespace reachable by user input.
const browseCacheKey = "\x00browse"

type cacheEntry struct {
	results   []models.ContentItem
	createdAt time.Time
}

// sessionCache maps normalized query keys to ranked result lists for the
// lifetime of the process. It is unbounded on purpose: entries are small
// and the session is the eviction boundary. The one exception is the
// browse entry, which is evicted when the calendar day rolls over so the
// landing feed refreshes daily.
type sessionCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	now     func() time.Time
}

func newSessionCache() *sessionCache {
	return &sessionCache{
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// normalizeCacheKey trims and case-folds a query. The empty query maps to
// the reserved browse key.
func normalizeCacheKey(query string) string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return browseCacheKey
	}
	return q
}

func (c *sessionCache) get(key string) ([]models.ContentItem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return entry.results, true
}

func (c *sessionCache) put(key string, results []models.ContentItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{results: results, createdAt: c.now()}
}

// evictStaleBrowse removes the browse entry when its creation date is on
// an earlier calendar day than now. Search entries are never touched.
// Returns true when an eviction happened.
func (c *sessionCache) evictStaleBrowse() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[browseCacheKey]
	if !ok {
		return false
	}
	cy, cm, cd := entry.createdAt.Date()
	ny, nm, nd := c.now().Date()
	if cy == ny && cm == nm && cd == nd {
		return false
	}
	delete(c.entries, browseCacheKey)
	return true
}

func (c *sessionCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
