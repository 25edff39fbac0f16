package repo

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// CachedResolver memoizes successful path resolutions for the
// lifetime of one import run, so sibling items under the same folder
// do not re-walk the node index. Misses are never cached: an absent
// path is an out-of-order signal the caller must see every time.
type CachedResolver struct {
	resolver Resolver

	mu       sync.RWMutex
	resolved map[string]NodeRef
	sf       singleflight.Group
}

// NewCachedResolver wraps a resolver with a per-run path cache.
func NewCachedResolver(resolver Resolver) *CachedResolver {
	return &CachedResolver{
		resolver: resolver,
		resolved: make(map[string]NodeRef),
	}
}

// ResolvePath resolves through the cache. Creating resolutions bypass
// the cache check (they mutate the index), but their result is
// recorded for subsequent non-creating lookups.
func (c *CachedResolver) ResolvePath(ctx context.Context, root NodeRef, elements []string, createMissing bool) (*NodeRef, error) {
	key := root.String() + "|" + strings.Join(elements, "/")

	// Fast path
	if !createMissing {
		c.mu.RLock()
		ref, hit := c.resolved[key]
		c.mu.RUnlock()
		if hit {
			return &ref, nil
		}
	}

	// Slow path: singleflight collapses concurrent walks of the same path.
	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Double-check after acquiring the singleflight slot
		if !createMissing {
			c.mu.RLock()
			ref, hit := c.resolved[key]
			c.mu.RUnlock()
			if hit {
				return &ref, nil
			}
		}

		ref, err := c.resolver.ResolvePath(ctx, root, elements, createMissing)
		if err != nil {
			return nil, err
		}
		if ref != nil {
			c.mu.Lock()
			c.resolved[key] = *ref
			c.mu.Unlock()
		}
		return ref, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*NodeRef), nil
}
