package memory

import (
	"context"
	"sync"
	"time"

	"github.com/kirillkom/ats-resume-analyzer/internal/core/domain"
)

type entry struct {
	result    *domain.AnalysisResult
	expiresAt time.Time
}

// Cache is a process-local result cache with per-entry TTL. Entries
// expire lazily on read; they are never updated in place. Concurrent
// first-time computations for the same fingerprint may race, which is
// harmless: last write wins and both results are identical but for
// their timestamp.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

func New() *Cache {
	return &Cache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (c *Cache) Get(_ context.Context, fingerprint string) (*domain.AnalysisResult, bool) {
	c.mu.RLock()
	e, ok := c.entries[fingerprint]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		c.mu.Lock()
		// Re-check under the write lock: a fresh entry may have
		// replaced the expired one.
		if current, ok := c.entries[fingerprint]; ok && c.now().After(current.expiresAt) {
			delete(c.entries, fingerprint)
		}
		c.mu.Unlock()
		return nil, false
	}
	return e.result, true
}

func (c *Cache) Set(_ context.Context, fingerprint string, result *domain.AnalysisResult, ttl time.Duration) {
	if result == nil || ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.entries[fingerprint] = entry{
		result:    result,
		expiresAt: c.now().Add(ttl),
	}
	c.mu.Unlock()
}
