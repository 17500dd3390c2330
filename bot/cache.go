package main

import "sync"

// CachedSignal discriminates which analyzer output an entry holds, so
// flood-fill and density results for the same candidate never collide.
type CachedSignal uint8

const (
	SignalFloodFill CachedSignal = iota
	SignalDensity
)

// EvalCacheKey addresses the exact tier: one signal of one candidate
// against one grid snapshot. The version ties the entry to the board
// generation it was computed for; keys from an older turn can never
// match a lookup in a newer one.
type EvalCacheKey struct {
	Version uint64
	Anchor  Point
	Shape   uint64
	Signal  CachedSignal
}

type coarseKey struct {
	Version uint64
	Hash    uint64
	Signal  CachedSignal
}

type inflightCall struct {
	wg    sync.WaitGroup
	value float64
}

// EvalCache memoizes the two expensive analyzer signals. It is owned
// by the engine and passed into scoring explicitly; there is no
// process-wide instance.
//
// Two tiers: the exact tier keyed by (version, anchor, shape, signal),
// and a coarse tier keyed by (version, neighborhood hash, signal) that
// lets neighborhood-local signals be reused across candidates whose
// surroundings match. Both tiers are bounded with oldest-inserted
// eviction.
//
// The single evaluation goroutine is the only expected user, but the
// cache tolerates concurrent access: lookups and stores are guarded by
// a mutex, and an in-flight table guarantees each key is computed at
// most once even when several goroutines race on a miss.
type EvalCache struct {
	mu         sync.Mutex
	maxEntries int
	version    uint64

	exact       map[EvalCacheKey]float64
	exactOrder  []EvalCacheKey
	coarse      map[coarseKey]float64
	coarseOrder []coarseKey

	inflightExact  map[EvalCacheKey]*inflightCall
	inflightCoarse map[coarseKey]*inflightCall

	hits       uint64
	coarseHits uint64
	misses     uint64
}

const defaultCacheEntries = 1 << 16

func NewEvalCache(maxEntries int) *EvalCache {
	if maxEntries <= 0 {
		maxEntries = defaultCacheEntries
	}
	return &EvalCache{
		maxEntries:     maxEntries,
		exact:          make(map[EvalCacheKey]float64),
		coarse:         make(map[coarseKey]float64),
		inflightExact:  make(map[EvalCacheKey]*inflightCall),
		inflightCoarse: make(map[coarseKey]*inflightCall),
	}
}

func (c *EvalCache) Version() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

// NextVersion marks the start of a new turn: the board has been
// replaced, so every existing entry is stale. Entries are left to age
// out through bounded eviction unless the cache has outgrown its
// bound, in which case it is cleared outright.
func (c *EvalCache) NextVersion() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.version++
	if len(c.exact)+len(c.coarse) > c.maxEntries {
		c.exact = make(map[EvalCacheKey]float64)
		c.exactOrder = c.exactOrder[:0]
		c.coarse = make(map[coarseKey]float64)
		c.coarseOrder = c.coarseOrder[:0]
	}
	return c.version
}

// GetOrCompute returns the cached value for key, or invokes compute,
// stores the result, and returns it. The caller builds the key with
// the current version, so a stale entry can never be served.
func (c *EvalCache) GetOrCompute(key EvalCacheKey, compute func() float64) float64 {
	c.mu.Lock()
	if v, ok := c.exact[key]; ok {
		c.hits++
		c.mu.Unlock()
		return v
	}
	if call, ok := c.inflightExact[key]; ok {
		c.mu.Unlock()
		call.wg.Wait()
		return call.value
	}
	call := &inflightCall{}
	call.wg.Add(1)
	c.inflightExact[key] = call
	c.misses++
	c.mu.Unlock()

	call.value = compute()

	c.mu.Lock()
	c.storeExact(key, call.value)
	delete(c.inflightExact, key)
	c.mu.Unlock()
	call.wg.Done()
	return call.value
}

// GetOrComputeCoarse is the coarse-tier analogue keyed by a
// neighborhood hash. Only signals that depend solely on the hashed
// window may go through this tier.
func (c *EvalCache) GetOrComputeCoarse(hash uint64, signal CachedSignal, compute func() float64) float64 {
	key := coarseKey{Version: c.Version(), Hash: hash, Signal: signal}
	c.mu.Lock()
	if v, ok := c.coarse[key]; ok {
		c.coarseHits++
		c.mu.Unlock()
		return v
	}
	if call, ok := c.inflightCoarse[key]; ok {
		c.mu.Unlock()
		call.wg.Wait()
		return call.value
	}
	call := &inflightCall{}
	call.wg.Add(1)
	c.inflightCoarse[key] = call
	c.misses++
	c.mu.Unlock()

	call.value = compute()

	c.mu.Lock()
	c.storeCoarse(key, call.value)
	delete(c.inflightCoarse, key)
	c.mu.Unlock()
	call.wg.Done()
	return call.value
}

func (c *EvalCache) storeExact(key EvalCacheKey, value float64) {
	if _, ok := c.exact[key]; !ok {
		for len(c.exact) >= c.maxEntries && len(c.exactOrder) > 0 {
			oldest := c.exactOrder[0]
			c.exactOrder = c.exactOrder[1:]
			delete(c.exact, oldest)
		}
		c.exactOrder = append(c.exactOrder, key)
	}
	c.exact[key] = value
}

func (c *EvalCache) storeCoarse(key coarseKey, value float64) {
	if _, ok := c.coarse[key]; !ok {
		for len(c.coarse) >= c.maxEntries && len(c.coarseOrder) > 0 {
			oldest := c.coarseOrder[0]
			c.coarseOrder = c.coarseOrder[1:]
			delete(c.coarse, oldest)
		}
		c.coarseOrder = append(c.coarseOrder, key)
	}
	c.coarse[key] = value
}

func (c *EvalCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.exact) + len(c.coarse)
}

func (c *EvalCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.exact = make(map[EvalCacheKey]float64)
	c.exactOrder = nil
	c.coarse = make(map[coarseKey]float64)
	c.coarseOrder = nil
	c.hits = 0
	c.coarseHits = 0
	c.misses = 0
}

type CacheStats struct {
	Entries    int    `json:"entries"`
	Capacity   int    `json:"capacity"`
	Hits       uint64 `json:"hits"`
	CoarseHits uint64 `json:"coarse_hits"`
	Misses     uint64 `json:"misses"`
	Version    uint64 `json:"version"`
}

func (c *EvalCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{
		Entries:    len(c.exact) + len(c.coarse),
		Capacity:   c.maxEntries,
		Hits:       c.hits,
		CoarseHits: c.coarseHits,
		Misses:     c.misses,
		Version:    c.version,
	}
}
