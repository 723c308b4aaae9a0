package cache

import (
	"context"
	"sync"

	"github.com/xaenox/concept-analysis/internal/models"
)

// MemoryCache keeps results in a process-wide map. There is no eviction and
// no size bound; entries live for the lifetime of the process.
type MemoryCache struct {
	mu      sync.RWMutex
	results map[string]*models.AnalysisResult
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		results: make(map[string]*models.AnalysisResult),
	}
}

func (c *MemoryCache) Get(ctx context.Context, key string) (*models.AnalysisResult, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if result, exists := c.results[key]; exists {
		return result, nil
	}
	return nil, nil
}

func (c *MemoryCache) Put(ctx context.Context, key string, result *models.AnalysisResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.results[key] = result
	return nil
}

// Len reports the number of cached results.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.results)
}

func (c *MemoryCache) Close() error {
	// Nothing to close for the in-memory cache
	return nil
}
