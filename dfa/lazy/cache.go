package lazy

import (
	"sync"

	"github.com/coregx/fsa/codec"
	"github.com/coregx/fsa/internal/conv"
)

// Cache provides thread-safe storage for decoded states with bounded memory.
//
// The cache maps a record offset to its decoded State.
//
// Thread safety: All methods are safe for concurrent access via RWMutex.
//
// Memory management:
//   - States are never evicted individually (no LRU overhead)
//   - When the cache is full, it is cleared entirely and filling resumes
//   - Clearing keeps allocated memory to avoid re-allocation
type Cache[V codec.Symbol] struct {
	// mu protects all fields below
	mu sync.RWMutex

	states map[int64]*State[V]

	// maxStates is the capacity limit
	maxStates uint32

	// clearCount tracks how many times the cache has been cleared
	clearCount int

	// Statistics for cache performance tuning
	hits   uint64
	misses uint64
}

// NewCache creates a new state cache with the given maximum capacity
func NewCache[V codec.Symbol](maxStates uint32) *Cache[V] {
	return &Cache[V]{
		states:    make(map[int64]*State[V], min(maxStates, 1024)),
		maxStates: maxStates,
	}
}

// Get retrieves a state by its offset.
// Returns (state, true) if found, (nil, false) if not in cache.
func (c *Cache[V]) Get(off int64) (*State[V], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	state, ok := c.states[off]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return state, ok
}

// Insert adds a decoded state, clearing the cache first if it is full.
// If another goroutine inserted the same offset first, that state is
// returned instead.
func (c *Cache[V]) Insert(state *State[V]) *State[V] {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.states[state.offset]; ok {
		return existing
	}
	if conv.IntToUint32(len(c.states)) >= c.maxStates {
		clear(c.states)
		c.clearCount++
	}
	c.states[state.offset] = state
	return state
}

// Size returns the current number of states in the cache
func (c *Cache[V]) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.states)
}

// ClearCount returns how many times the cache was cleared because it was
// full.
func (c *Cache[V]) ClearCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.clearCount
}

// Stats returns cache hit/miss statistics.
// Returns (hits, misses, hitRate).
//
// Hit rate = hits / (hits + misses)
func (c *Cache[V]) Stats() (hits, misses uint64, hitRate float64) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	hits = c.hits
	misses = c.misses
	total := hits + misses
	if total > 0 {
		hitRate = float64(hits) / float64(total)
	}
	return hits, misses, hitRate
}

// Clear removes all states from the cache and resets statistics.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.states)
	c.clearCount = 0
	c.hits = 0
	c.misses = 0
}
