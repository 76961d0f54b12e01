package cache

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sirupsen/logrus"

	"github.com/janani-ai/janani-server/internal/domain"
)

// MemoryCache is an in-process LRU with per-entry TTL. It is the default
// backend when no Redis URL is configured.
type MemoryCache struct {
	logger *logrus.Logger
	lru    *lru.LRU[string, *domain.TriageResult]
}

// NewMemoryCache creates a bounded in-memory result cache. Entries expire
// after config.DefaultTTL and the oldest entry is evicted once MaxEntries
// is reached.
func NewMemoryCache(logger *logrus.Logger, config domain.CacheConfig) *MemoryCache {
	maxEntries := config.MaxEntries
	if maxEntries <= 0 {
		maxEntries = 1000
	}

	return &MemoryCache{
		logger: logger,
		lru:    lru.NewLRU[string, *domain.TriageResult](maxEntries, nil, config.DefaultTTL),
	}
}

// Get returns the cached result for key, if present and not expired.
func (c *MemoryCache) Get(ctx context.Context, key string) (*domain.TriageResult, bool) {
	result, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}

	c.logger.WithFields(logrus.Fields{
		"cache_key": key,
		"backend":   "memory",
	}).Debug("Triage cache hit")

	return result, true
}

// Set stores a result under key.
func (c *MemoryCache) Set(ctx context.Context, key string, result *domain.TriageResult) {
	c.lru.Add(key, result)
}

// Len returns the number of live entries.
func (c *MemoryCache) Len() int {
	return c.lru.Len()
}
