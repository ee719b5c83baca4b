package sentiment

import (
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pscheid92/moodlens/internal/domain"
	"github.com/stretchr/testify/assert"
)

// countingScorer counts how many times the underlying scorer runs.
type countingScorer struct {
	mu    sync.Mutex
	inner TextScorer
	calls int
}

func (c *countingScorer) Score(text string) domain.Score {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	return c.inner.Score(text)
}

func (c *countingScorer) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func TestCachedScorer_HitSkipsRecomputation(t *testing.T) {
	clock := clockwork.NewFakeClock()
	counting := &countingScorer{inner: NewDefaultScorer()}
	cached := NewCachedScorer(counting, 10*time.Second, clock)

	first := cached.Score("this is great")
	second := cached.Score("this is great")

	assert.Equal(t, first, second)
	assert.Equal(t, 1, counting.callCount())
	assert.Equal(t, 1, cached.Size())
}

func TestCachedScorer_ExpiryRecomputes(t *testing.T) {
	clock := clockwork.NewFakeClock()
	counting := &countingScorer{inner: NewDefaultScorer()}
	cached := NewCachedScorer(counting, 10*time.Second, clock)

	first := cached.Score("this is great")
	clock.Advance(11 * time.Second)
	second := cached.Score("this is great")

	// Deterministic scoring: expiry changes nothing but the work done.
	assert.Equal(t, first, second)
	assert.Equal(t, 2, counting.callCount())
}

func TestCachedScorer_EvictExpired(t *testing.T) {
	clock := clockwork.NewFakeClock()
	cached := NewCachedScorer(NewDefaultScorer(), 10*time.Second, clock)

	cached.Score("one")
	cached.Score("two")
	clock.Advance(11 * time.Second)
	cached.Score("three")

	assert.Equal(t, 2, cached.EvictExpired())
	assert.Equal(t, 1, cached.Size())
}

func TestCachedScorer_Clear(t *testing.T) {
	clock := clockwork.NewFakeClock()
	cached := NewCachedScorer(NewDefaultScorer(), 10*time.Second, clock)

	cached.Score("one")
	cached.Score("two")
	cached.Clear()

	assert.Equal(t, 0, cached.Size())
}

func TestCachedScorer_EvictionTimer(t *testing.T) {
	clock := clockwork.NewFakeClock()
	cached := NewCachedScorer(NewDefaultScorer(), 10*time.Second, clock)
	stop := cached.StartEvictionTimer(time.Minute)
	defer stop()

	cached.Score("one")
	clock.Advance(11 * time.Second)

	// Let the ticker fire at the one-minute mark.
	clock.Advance(time.Minute)
	assert.Eventually(t, func() bool { return cached.Size() == 0 }, time.Second, 5*time.Millisecond)
}
