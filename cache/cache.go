// Package cache is an in-memory cache for extraction results, keyed on
// the content being extracted rather than a fetched URL (there is
// nothing to fetch).
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"sync"
	"time"

	"github.com/Furafrafrfr/readability/models"
)

// entry holds a cached response with its creation timestamp.
type entry struct {
	response  *models.ExtractResponse
	createdAt time.Time
}

// Cache is a simple in-memory cache for extraction responses.
// It is safe for concurrent use.
type Cache struct {
	mu         sync.RWMutex
	store      map[string]*entry
	maxEntries int
	ttl        time.Duration
}

// New creates a new Cache with the given maximum number of entries and
// entry lifetime. A background goroutine runs every 5 minutes to evict
// entries older than ttl.
func New(maxEntries int, ttl time.Duration) *Cache {
	c := &Cache{
		store:      make(map[string]*entry),
		maxEntries: maxEntries,
		ttl:        ttl,
	}

	go c.cleanupLoop()
	return c
}

// Key generates a cache key from the document content and the options
// that affect extraction output.
func Key(html, outputFormat string, keepClasses bool, charThreshold int) string {
	h := sha256.New()
	h.Write([]byte(html))
	h.Write([]byte("|"))
	h.Write([]byte(outputFormat))
	if keepClasses {
		h.Write([]byte("|keep"))
	}
	h.Write([]byte("|"))
	h.Write([]byte(strconv.Itoa(charThreshold)))
	return hex.EncodeToString(h.Sum(nil))
}

// Get retrieves a cached response if present and not yet expired.
// Returns the response and whether it was a cache hit.
func (c *Cache) Get(key string) (*models.ExtractResponse, bool) {
	c.mu.RLock()
	e, ok := c.store[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if c.ttl > 0 && time.Since(e.createdAt) > c.ttl {
		return nil, false
	}

	return e.response, true
}

// Set stores a response in the cache. If the cache is at capacity, a
// random entry is evicted to make room (map iteration is random in Go).
func (c *Cache) Set(key string, resp *models.ExtractResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.store) >= c.maxEntries {
		for k := range c.store {
			delete(c.store, k)
			break
		}
	}

	c.store[key] = &entry{
		response:  resp,
		createdAt: time.Now(),
	}
}

// Len reports the current number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

// cleanupLoop evicts entries older than ttl every 5 minutes.
func (c *Cache) cleanupLoop() {
	if c.ttl <= 0 {
		return
	}
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-c.ttl)
		c.mu.Lock()
		for k, e := range c.store {
			if e.createdAt.Before(cutoff) {
				delete(c.store, k)
			}
		}
		c.mu.Unlock()
	}
}
