package connection

import (
	"context"
	"maps"
	"os"
	"sync"

	"github.com/pentops/log.go/log"
	"golang.org/x/sync/singleflight"
)

// Cache resolves connection names to properties and keeps the result.
// Concurrent loads of the same name share one resolution; at most one
// successful resolution is stored per name and failures are not cached.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Properties
	group   singleflight.Group
	lookup  func(string) (string, bool)
}

// NewCache returns an empty cache resolving variables from the
// environment.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]Properties),
		lookup:  os.LookupEnv,
	}
}

// WithLookup sets the function resolving ${VAR} references.
func (c *Cache) WithLookup(lookup func(string) (string, bool)) *Cache {
	c.lookup = lookup
	return c
}

// Load returns the properties of the named connection. The name is either
// a force:// URL or a ${VAR} reference to one; an empty name means
// DefaultName. The returned map is a copy.
func (c *Cache) Load(ctx context.Context, name string) (Properties, error) {
	if name == "" {
		name = DefaultName
	}
	if props, ok := c.get(name); ok {
		log.Debug(ctx, "connection loaded from cache")
		return maps.Clone(props), nil
	}
	v, err, _ := c.group.Do(name, func() (interface{}, error) {
		if props, ok := c.get(name); ok {
			return props, nil
		}
		raw, err := Expand(name, c.lookup)
		if err != nil {
			return nil, err
		}
		props, err := ParseURL(raw)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[name] = props
		c.mu.Unlock()
		log.WithFields(ctx, props.Redacted()).Debug("connection resolved")
		return props, nil
	})
	if err != nil {
		return nil, err
	}
	return maps.Clone(v.(Properties)), nil
}

func (c *Cache) get(name string) (Properties, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	props, ok := c.entries[name]
	return props, ok
}

// Len returns the number of cached connections.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear empties the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
}
