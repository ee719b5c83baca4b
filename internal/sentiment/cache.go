package sentiment

import (
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pscheid92/moodlens/internal/domain"
	"github.com/pscheid92/moodlens/internal/metrics"
)

// CachedScorer wraps a TextScorer with an in-memory TTL cache keyed by the
// exact input text. Scoring is deterministic, so cached results are always
// identical to recomputed ones; the cache only saves work for chat traffic
// that repeats the same short messages.
type CachedScorer struct {
	scorer TextScorer

	mu      sync.RWMutex
	entries map[string]*cacheEntry
	ttl     time.Duration
	clock   clockwork.Clock
}

type cacheEntry struct {
	score     domain.Score
	expiresAt time.Time
}

// NewCachedScorer creates a caching wrapper with the specified TTL.
func NewCachedScorer(scorer TextScorer, ttl time.Duration, clock clockwork.Clock) *CachedScorer {
	return &CachedScorer{
		scorer:  scorer,
		entries: make(map[string]*cacheEntry),
		ttl:     ttl,
		clock:   clock,
	}
}

// Score returns the cached result for text, computing and storing it on miss.
func (c *CachedScorer) Score(text string) domain.Score {
	c.mu.RLock()
	entry, ok := c.entries[text]
	if ok && !c.clock.Now().After(entry.expiresAt) {
		c.mu.RUnlock()
		metrics.ScoreCacheHits.Inc()
		return entry.score
	}
	c.mu.RUnlock()

	metrics.ScoreCacheMisses.Inc()
	score := c.scorer.Score(text)

	c.mu.Lock()
	c.entries[text] = &cacheEntry{score: score, expiresAt: c.clock.Now().Add(c.ttl)}
	c.mu.Unlock()

	return score
}

// Size returns the current number of entries (including expired).
func (c *CachedScorer) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear removes all entries from the cache.
func (c *CachedScorer) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// EvictExpired removes all expired entries and returns the count evicted.
// This prevents unbounded cache growth over time.
func (c *CachedScorer) EvictExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	evicted := 0
	for text, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, text)
			evicted++
		}
	}
	return evicted
}

// StartEvictionTimer starts a background goroutine that periodically evicts
// expired entries. Returns a stop function that cleans up the goroutine.
func (c *CachedScorer) StartEvictionTimer(interval time.Duration) func() {
	ticker := c.clock.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.Chan():
				evicted := c.EvictExpired()
				if evicted > 0 {
					slog.Debug("Evicted expired score cache entries",
						"count", evicted,
						"remaining", c.Size(),
					)
					metrics.ScoreCacheEvictions.Add(float64(evicted))
				}
				metrics.ScoreCacheSize.Set(float64(c.Size()))

			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	return func() {
		close(done)
	}
}
