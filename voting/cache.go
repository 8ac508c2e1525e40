package voting

import (
	"context"
	"sync"
)

// ResultCache holds final results only. Votes can no longer change once a session is closed,
// so entries never need invalidation.
type ResultCache interface {
	Get(ctx context.Context, sessionID int64) (*Result, bool, error)
	// Add stores r unless the session already has a cached result, and returns the cached value.
	Add(ctx context.Context, r *Result) (*Result, error)
}

type MemoryResultCache struct {
	mu      sync.RWMutex
	results map[int64]Result
}

func NewMemoryResultCache() *MemoryResultCache {
	return &MemoryResultCache{results: make(map[int64]Result)}
}

func (c *MemoryResultCache) Get(_ context.Context, sessionID int64) (*Result, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	r, ok := c.results[sessionID]
	if !ok {
		return nil, false, nil
	}
	return &r, true, nil
}

func (c *MemoryResultCache) Add(_ context.Context, r *Result) (*Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.results[r.SessionID]; ok {
		return &existing, nil
	}
	c.results[r.SessionID] = *r
	out := *r
	return &out, nil
}
