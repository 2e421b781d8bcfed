package client

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/vidyasagar/fsurf/internal/listing"
	"github.com/vidyasagar/fsurf/internal/navigation"
)

const (
	DefaultCacheSize = 64
	DefaultCacheTTL  = 30 * time.Second
)

// Cache keeps recent listings in front of a Provider so stepping back and
// forward through the breadcrumb does not wait on the network. Failed
// fetches are never cached.
type Cache struct {
	next  navigation.Provider
	items *expirable.LRU[string, *listing.Listing]
}

var _ navigation.Provider = (*Cache)(nil)

// NewCache wraps next. Non-positive size or ttl fall back to the defaults.
func NewCache(next navigation.Provider, size int, ttl time.Duration) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{
		next:  next,
		items: expirable.NewLRU[string, *listing.Listing](size, nil, ttl),
	}
}

// Fetch returns the cached listing for path or fetches it.
func (c *Cache) Fetch(ctx context.Context, path string) (*listing.Listing, error) {
	if l, ok := c.items.Get(path); ok {
		return l, nil
	}
	return c.Refresh(ctx, path)
}

// Refresh skips the cache, fetches path and stores the result.
func (c *Cache) Refresh(ctx context.Context, path string) (*listing.Listing, error) {
	l, err := c.next.Fetch(ctx, path)
	if err != nil {
		return nil, err
	}
	c.items.Add(path, l)
	return l, nil
}

// Purge drops every cached listing. Call it when the folder query changes.
func (c *Cache) Purge() {
	c.items.Purge()
}

// Len reports the number of cached listings.
func (c *Cache) Len() int {
	return c.items.Len()
}
