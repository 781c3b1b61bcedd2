package api

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultCacheSize = 1024

// ResultCache is a thread-safe LRU cache of assessment results for stored
// planets, keyed by kind, mode and planet name.
type ResultCache struct {
	lru *lru.Cache[string, any]
}

// NewResultCache creates a cache with the given maximum number of entries.
// If maxSize <= 0, it defaults to 1024.
func NewResultCache(maxSize int) (*ResultCache, error) {
	if maxSize <= 0 {
		maxSize = defaultCacheSize
	}
	c, err := lru.New[string, any](maxSize)
	if err != nil {
		return nil, fmt.Errorf("create result cache: %w", err)
	}
	return &ResultCache{lru: c}, nil
}

func cacheKey(kind, mode, name string) string {
	return kind + ":" + mode + ":" + name
}

// Get retrieves a cached result.
func (c *ResultCache) Get(kind, mode, name string) (any, bool) {
	return c.lru.Get(cacheKey(kind, mode, name))
}

// Put adds a result, evicting the least recently used entry if full.
func (c *ResultCache) Put(kind, mode, name string, v any) {
	c.lru.Add(cacheKey(kind, mode, name), v)
}

// Purge drops every entry. Called after any corpus write.
func (c *ResultCache) Purge() {
	c.lru.Purge()
}

// Len returns the number of cached entries.
func (c *ResultCache) Len() int {
	return c.lru.Len()
}
