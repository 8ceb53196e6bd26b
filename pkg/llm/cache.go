package llm

import (
	"sync"

	"github.com/patrickmn/go-cache"
)

// BuildFunc constructs a handle for a selection. Typically the backend
// factory's NewHandle.
type BuildFunc func(Selection) (*Handle, error)

// HandleCache holds one loaded handle per backend selection for the process
// lifetime, so repeated turns with the same selection reuse loaded state.
// Construction failures are not cached: the same selection retries on the
// next turn and other selections are unaffected.
type HandleCache struct {
	mu    sync.Mutex // serializes the create path
	cache *cache.Cache
	build BuildFunc
}

func NewHandleCache(build BuildFunc) *HandleCache {
	return &HandleCache{
		cache: cache.New(cache.NoExpiration, 0),
		build: build,
	}
}

// GetOrCreate returns the cached handle for sel, constructing and caching
// it on first use.
func (c *HandleCache) GetOrCreate(sel Selection) (*Handle, error) {
	key := sel.Key()
	if x, found := c.cache.Get(key); found {
		return x.(*Handle), nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if x, found := c.cache.Get(key); found {
		return x.(*Handle), nil
	}

	handle, err := c.build(sel)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, handle, cache.NoExpiration)
	return handle, nil
}
