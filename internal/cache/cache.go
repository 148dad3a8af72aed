package cache

import (
	"sync"
)

// Cache interface for storing and retrieving SDK clients and credential
// providers across the account/region fan-out.
type Cache interface {
	Set(key CacheKey, value interface{})
	Get(key CacheKey) (interface{}, bool)
}

// memoryCache implements the Cache interface using sync.Map.
type memoryCache struct {
	store sync.Map
}

type CacheKey struct {
	PK string
	SK string
}

func (ck CacheKey) String() string {
	return ck.PK + "||" + ck.SK
}

// NewCache creates a new instance of a Cache using memoryCache.
func NewCache() Cache {
	return &memoryCache{}
}

// Set stores a key-value pair in the cache.
func (c *memoryCache) Set(key CacheKey, value interface{}) {
	c.store.Store(key.String(), value)
}

// Get retrieves a value from the cache based on its key.
func (c *memoryCache) Get(key CacheKey) (interface{}, bool) {
	value, exists := c.store.Load(key.String())
	if !exists {
		return nil, false
	}
	return value, true
}
