package web

import "sync"

type cacheEntry struct {
	hash uint64
	data []byte
}

// cache is a small ring of recently encoded frames keyed by
// hash, so that frames the display keeps flipping between are
// not compressed again.
type cache struct {
	cache []cacheEntry
	idx   int
	sync.RWMutex
}

func newCache(size int) *cache {
	return &cache{
		cache: make([]cacheEntry, size),
	}
}

// get returns the encoded frame stored for the given hash.
func (c *cache) get(hash uint64) ([]byte, bool) {
	c.RLock()
	defer c.RUnlock()

	for _, e := range c.cache {
		if e.data != nil && e.hash == hash {
			return e.data, true
		}
	}

	return nil, false
}

// add stores an encoded frame, evicting the oldest entry.
func (c *cache) add(hash uint64, data []byte) {
	c.Lock()
	c.cache[c.idx] = cacheEntry{hash: hash, data: data}
	c.idx = (c.idx + 1) % len(c.cache)
	c.Unlock()
}
