package drawing

import (
	"sync"
)

// Cache provides thread-safe caching of decoded drawings keyed by file path.
//
// Once a drawing is loaded, subsequent Load calls for the same path return the
// cached copy without disk I/O. Drawings are immutable after decoding, so the
// same *Drawing may be shared between goroutines.
//
// When maxEntries is positive the cache holds at most that many drawings;
// inserting beyond the bound evicts the oldest entry.
//
//	cache := drawing.NewCache(64)
//	d, err := cache.Load("/path/to/plan.json")
//	if err != nil {
//	    return err
//	}
//	cache.Evict("/path/to/plan.json") // Optional: free memory
type Cache struct {
	mu         sync.RWMutex
	drawings   map[string]*Drawing
	order      []string
	maxEntries int
}

// NewCache creates an empty cache. maxEntries <= 0 means unbounded.
func NewCache(maxEntries int) *Cache {
	return &Cache{
		drawings:   make(map[string]*Drawing),
		maxEntries: maxEntries,
	}
}

// Load retrieves a drawing from the cache or decodes it from disk.
//
// The drawing is cached using the exact path string provided. Different paths
// to the same file (relative vs absolute) result in separate entries.
func (c *Cache) Load(path string) (*Drawing, error) {
	c.mu.RLock()
	if d, ok := c.drawings[path]; ok {
		c.mu.RUnlock()
		return d, nil
	}
	c.mu.RUnlock()

	d, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	c.Put(path, d)
	return d, nil
}

// Put stores d under key, replacing any previous entry.
func (c *Cache) Put(key string, d *Drawing) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.drawings[key]; !exists {
		c.order = append(c.order, key)
	}
	c.drawings[key] = d

	for c.maxEntries > 0 && len(c.order) > c.maxEntries {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.drawings, oldest)
	}
}

// Evict removes a drawing by key. Missing keys are ignored.
func (c *Cache) Evict(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.drawings[key]; !ok {
		return
	}
	delete(c.drawings, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Clear removes every cached drawing.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.drawings = make(map[string]*Drawing)
	c.order = nil
	c.mu.Unlock()
}

// Len returns the number of cached drawings.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.drawings)
}
