package plan

import (
	"context"
	"sync"
	"sync/atomic"
)

// MemoryCache keeps plans for the lifetime of the process. With a positive
// max size, half the entries are dropped when the cache is full.
type MemoryCache struct {
	plans   map[Key]*Plan
	mu      sync.RWMutex
	maxSize int
	hits    atomic.Int64
	misses  atomic.Int64
}

func NewMemoryCache(maxSize int) *MemoryCache {
	return &MemoryCache{
		plans:   make(map[Key]*Plan),
		maxSize: maxSize,
	}
}

func (c *MemoryCache) Get(_ context.Context, key Key) (*Plan, bool) {
	c.mu.RLock()
	p, exists := c.plans[key]
	c.mu.RUnlock()

	if exists {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}

	return p, exists
}

func (c *MemoryCache) AddOrReplace(_ context.Context, p *Plan) {
	if p == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.plans[p.Key()]; !exists && c.maxSize > 0 && len(c.plans) >= c.maxSize {
		c.evictHalf()
	}
	c.plans[p.Key()] = p
}

// evictHalf removes half the entries (must be called with lock held)
func (c *MemoryCache) evictHalf() {
	target := len(c.plans) / 2
	if target == 0 {
		target = 1
	}
	count := 0
	for key := range c.plans {
		delete(c.plans, key)
		count++
		if count >= target {
			break
		}
	}
}

// Invalidate removes the plan for key.
func (c *MemoryCache) Invalidate(key Key) {
	c.mu.Lock()
	delete(c.plans, key)
	c.mu.Unlock()
}

// Clear removes all plans.
func (c *MemoryCache) Clear() {
	c.mu.Lock()
	c.plans = make(map[Key]*Plan)
	c.mu.Unlock()
}

func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.plans)
}

type Stats struct {
	Size   int
	Hits   int64
	Misses int64
}

func (c *MemoryCache) Stats() Stats {
	return Stats{
		Size:   c.Len(),
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
	}
}
