package analyzer

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/seoscope/seoscope/pkg/domain"
)

// ContentHash fingerprints an analysis input. Content and metadata are
// hashed together so any change to either produces a new key.
func ContentHash(content string, md domain.SEOMetadata) string {
	meta, _ := json.Marshal(md) // struct of strings, cannot fail
	h := sha256.New()
	_, _ = io.WriteString(h, content)
	h.Write([]byte{0}) // separator prevents boundary collisions
	h.Write(meta)
	return hex.EncodeToString(h.Sum(nil))[:32]
}

type cacheEntry struct {
	hash    string
	result  *domain.AnalysisResult
	created time.Time
	expires time.Time
}

// Cache keeps one analysis result per key with TTL and a size bound.
// A key holds a single entry; writing a result for a new content hash
// replaces the previous one.
type Cache struct {
	ttl        time.Duration
	maxEntries int

	mu      sync.RWMutex
	entries map[string]cacheEntry
	nowFn   func() time.Time // injectable for tests
}

// NewCache creates a cache with the given ttl and entry limit. Zero or
// negative values fall back to sane defaults.
func NewCache(ttl time.Duration, maxEntries int) *Cache {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	if maxEntries <= 0 {
		maxEntries = 1000
	}
	return &Cache{
		ttl:        ttl,
		maxEntries: maxEntries,
		entries:    map[string]cacheEntry{},
		nowFn:      time.Now,
	}
}

// Get returns the cached result for key if the stored content hash matches
// and the entry has not expired.
func (c *Cache) Get(key, hash string) (*domain.AnalysisResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || e.hash != hash || c.nowFn().After(e.expires) {
		return nil, false
	}
	return e.result, true
}

// Set stores a result under key, replacing any previous entry for that key
func (c *Cache) Set(key, hash string, result *domain.AnalysisResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.nowFn()
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evictLocked(now)
	}
	c.entries[key] = cacheEntry{hash: hash, result: result, created: now, expires: now.Add(c.ttl)}
}

// Invalidate drops the entry for key
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Len reports the number of stored entries
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// evictLocked drops expired entries, then the oldest if still at capacity.
// Caller holds the write lock.
func (c *Cache) evictLocked(now time.Time) {
	for k, e := range c.entries {
		if now.After(e.expires) {
			delete(c.entries, k)
		}
	}
	if len(c.entries) < c.maxEntries {
		return
	}
	oldestKey := ""
	var oldest time.Time
	for k, e := range c.entries {
		if oldestKey == "" || e.created.Before(oldest) {
			oldestKey, oldest = k, e.created
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}
