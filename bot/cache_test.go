package main

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestEvalCacheComputesOnce(t *testing.T) {
	cache := NewEvalCache(16)
	key := EvalCacheKey{Version: cache.Version(), Anchor: Point{X: 3, Y: 4}, Shape: 42, Signal: SignalFloodFill}

	calls := 0
	compute := func() float64 {
		calls++
		return 7.5
	}
	for i := 0; i < 5; i++ {
		if got := cache.GetOrCompute(key, compute); got != 7.5 {
			t.Fatalf("lookup %d: got %v want 7.5", i, got)
		}
	}
	if calls != 1 {
		t.Fatalf("compute ran %d times, want 1", calls)
	}

	stats := cache.Stats()
	if stats.Misses != 1 || stats.Hits != 4 {
		t.Fatalf("stats: %d misses / %d hits, want 1 / 4", stats.Misses, stats.Hits)
	}
}

func TestEvalCacheSignalsDoNotCollide(t *testing.T) {
	cache := NewEvalCache(16)
	base := EvalCacheKey{Version: cache.Version(), Anchor: Point{X: 1, Y: 1}, Shape: 9}

	flood := base
	flood.Signal = SignalFloodFill
	density := base
	density.Signal = SignalDensity

	cache.GetOrCompute(flood, func() float64 { return 100 })
	if got := cache.GetOrCompute(density, func() float64 { return 2 }); got != 2 {
		t.Fatalf("density entry shadowed by flood fill: got %v", got)
	}
}

func TestEvalCacheVersionIsolation(t *testing.T) {
	cache := NewEvalCache(16)
	anchor := Point{X: 2, Y: 2}

	calls := 0
	compute := func() float64 {
		calls++
		return float64(calls)
	}

	k1 := EvalCacheKey{Version: cache.Version(), Anchor: anchor, Shape: 5, Signal: SignalDensity}
	cache.GetOrCompute(k1, compute)

	// New turn: same candidate identity, new version, stale entry must
	// not be served.
	k2 := k1
	k2.Version = cache.NextVersion()
	if got := cache.GetOrCompute(k2, compute); got != 2 {
		t.Fatalf("stale entry served across versions: got %v", got)
	}
	if calls != 2 {
		t.Fatalf("compute ran %d times, want 2", calls)
	}
}

func TestEvalCacheComputesAtMostOnceUnderRace(t *testing.T) {
	cache := NewEvalCache(64)
	key := EvalCacheKey{Version: cache.Version(), Anchor: Point{X: 0, Y: 0}, Shape: 1, Signal: SignalFloodFill}

	var calls int64
	var start, done sync.WaitGroup
	start.Add(1)
	for i := 0; i < 16; i++ {
		done.Add(1)
		go func() {
			defer done.Done()
			start.Wait()
			got := cache.GetOrCompute(key, func() float64 {
				atomic.AddInt64(&calls, 1)
				return 3.25
			})
			if got != 3.25 {
				t.Errorf("got %v want 3.25", got)
			}
		}()
	}
	start.Done()
	done.Wait()

	if n := atomic.LoadInt64(&calls); n != 1 {
		t.Fatalf("compute ran %d times under contention, want 1", n)
	}
}

func TestEvalCacheEvictsOldestFirst(t *testing.T) {
	cache := NewEvalCache(4)
	version := cache.Version()
	keyAt := func(x int) EvalCacheKey {
		return EvalCacheKey{Version: version, Anchor: Point{X: x}, Shape: 1, Signal: SignalFloodFill}
	}

	for x := 0; x < 5; x++ {
		x := x
		cache.GetOrCompute(keyAt(x), func() float64 { return float64(x) })
	}
	if got := cache.Len(); got != 4 {
		t.Fatalf("entries after overflow: got %d want 4", got)
	}

	// The first-inserted key was evicted and recomputes; the most
	// recent one is still resident.
	recomputed := false
	cache.GetOrCompute(keyAt(0), func() float64 {
		recomputed = true
		return 0
	})
	if !recomputed {
		t.Fatalf("oldest entry survived eviction")
	}
	cache.GetOrCompute(keyAt(4), func() float64 {
		t.Fatalf("newest entry was evicted")
		return 0
	})
}

func TestEvalCacheNextVersionClearsWhenOverBound(t *testing.T) {
	cache := NewEvalCache(2)
	version := cache.Version()
	cache.GetOrCompute(EvalCacheKey{Version: version, Anchor: Point{X: 0}, Signal: SignalFloodFill}, func() float64 { return 1 })
	cache.GetOrCompute(EvalCacheKey{Version: version, Anchor: Point{X: 1}, Signal: SignalFloodFill}, func() float64 { return 2 })
	cache.GetOrComputeCoarse(99, SignalDensity, func() float64 { return 3 })

	if got := cache.Len(); got <= 2 {
		t.Fatalf("setup: expected cache over bound, got %d entries", got)
	}
	cache.NextVersion()
	if got := cache.Len(); got != 0 {
		t.Fatalf("cache not cleared on turn rollover: %d entries", got)
	}
}

func TestEvalCacheCoarseTier(t *testing.T) {
	cache := NewEvalCache(16)

	calls := 0
	compute := func() float64 {
		calls++
		return 4.8
	}
	first := cache.GetOrComputeCoarse(0xabc, SignalDensity, compute)
	second := cache.GetOrComputeCoarse(0xabc, SignalDensity, compute)
	if first != 4.8 || second != 4.8 {
		t.Fatalf("coarse values: %v / %v, want 4.8", first, second)
	}
	if calls != 1 {
		t.Fatalf("coarse compute ran %d times, want 1", calls)
	}
	if stats := cache.Stats(); stats.CoarseHits != 1 {
		t.Fatalf("coarse hits: got %d want 1", stats.CoarseHits)
	}

	// A different hash is a different neighborhood.
	cache.GetOrComputeCoarse(0xdef, SignalDensity, compute)
	if calls != 2 {
		t.Fatalf("distinct neighborhoods shared an entry")
	}
}

func TestEvalCacheClear(t *testing.T) {
	cache := NewEvalCache(16)
	cache.GetOrCompute(EvalCacheKey{Anchor: Point{X: 1}}, func() float64 { return 1 })
	cache.GetOrComputeCoarse(7, SignalDensity, func() float64 { return 2 })
	cache.Clear()
	if got := cache.Len(); got != 0 {
		t.Fatalf("entries after clear: got %d want 0", got)
	}
	stats := cache.Stats()
	if stats.Hits != 0 || stats.Misses != 0 || stats.CoarseHits != 0 {
		t.Fatalf("counters not reset: %+v", stats)
	}
}
