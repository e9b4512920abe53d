// Package cache persists search and load results between runs.
package cache

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/anisan-cli/mirai/filesystem"
	"github.com/anisan-cli/mirai/where"
	"github.com/metafates/gache"
	"github.com/samber/mo"
)

type entries[T any] struct {
	Entries map[string]T `json:"entries"`
}

// Cache is a file-backed map that expires as a whole after its lifetime.
type Cache[T any] struct {
	internal *gache.Cache[*entries[T]]
	mu       sync.RWMutex
}

// New returns a cache stored as name.json under the results directory.
func New[T any](name string, lifetime time.Duration) *Cache[T] {
	return &Cache[T]{
		internal: gache.New[*entries[T]](&gache.Options{
			Path:       filepath.Join(where.Results(), name+".json"),
			Lifetime:   lifetime,
			FileSystem: &filesystem.GacheFs{},
		}),
	}
}

// Key joins normalized parts into a cache key.
func Key(parts ...string) string {
	for i, part := range parts {
		parts[i] = strings.ToLower(strings.Join(strings.Fields(part), " "))
	}
	return strings.Join(parts, "|")
}

// Get returns the value stored under key.
func (c *Cache[T]) Get(key string) mo.Option[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, expired, err := c.internal.Get()
	if err != nil || expired || data == nil {
		return mo.None[T]()
	}

	if value, ok := data.Entries[key]; ok {
		return mo.Some(value)
	}
	return mo.None[T]()
}

// Set stores value under key, starting over when the cache expired.
func (c *Cache[T]) Set(key string, value T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, expired, err := c.internal.Get()
	if err != nil {
		return err
	}

	if expired || data == nil || data.Entries == nil {
		data = &entries[T]{Entries: make(map[string]T)}
	}

	data.Entries[key] = value
	return c.internal.Set(data)
}

// Delete removes key.
func (c *Cache[T]) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, expired, err := c.internal.Get()
	if err != nil || expired || data == nil {
		return err
	}

	delete(data.Entries, key)
	return c.internal.Set(data)
}
