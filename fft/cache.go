package fft

import (
	"log/slog"
	"sync"
)

type planSize struct {
	width, height int
}

// Cache hands out plans by size. Plans returned by Get are owned by the
// caller until they are handed back with Put, so a Cache is safe for
// concurrent use while each plan is used by one goroutine at a time.
type Cache struct {
	mu    sync.Mutex
	pools map[planSize]*sync.Pool
}

// Default is the process-wide plan cache.
var Default = NewCache()

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{pools: make(map[planSize]*sync.Pool)}
}

// Get returns a plan for width x height buffers, building one if none is
// available.
func (c *Cache) Get(width, height int) (*Plan, error) {
	if p, ok := c.pool(planSize{width, height}).Get().(*Plan); ok {
		return p, nil
	}
	slog.Debug("fft: building plan", "width", width, "height", height)
	return NewPlan(width, height)
}

// Put returns p to the cache for reuse.
func (c *Cache) Put(p *Plan) {
	if p == nil {
		return
	}
	c.pool(planSize{p.width, p.height}).Put(p)
}

func (c *Cache) pool(size planSize) *sync.Pool {
	c.mu.Lock()
	defer c.mu.Unlock()
	pool, ok := c.pools[size]
	if !ok {
		pool = &sync.Pool{}
		c.pools[size] = pool
	}
	return pool
}
