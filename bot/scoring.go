package main

import (
	"sort"
	"time"
)

// ScoreBreakdown holds the raw heuristic signals for one candidate and
// the weighted total. It is ephemeral: recomputed or cache-served per
// turn, never stored across turns.
type ScoreBreakdown struct {
	CellsAdded   int     `json:"cells_added"`
	FloodFill    float64 `json:"flood_fill"`
	WeakPosition float64 `json:"weak_position"`
	Density      float64 `json:"density"`
	EdgeControl  float64 `json:"edge_control"`
	Contact      int     `json:"contact"`
	Total        float64 `json:"total"`
}

// StrategyWeights is one playing style: a fixed vector of multipliers
// over the raw signals. Profiles differ only here; the signal
// computations never change per strategy.
type StrategyWeights struct {
	CellsAdded   float64 `json:"cells_added"`
	FloodFill    float64 `json:"flood_fill"`
	WeakPosition float64 `json:"weak_position"`
	Density      float64 `json:"density"`
	EdgeControl  float64 `json:"edge_control"`
	Contact      float64 `json:"contact"`
}

type Strategy string

const (
	StrategyAggressiveExpansion Strategy = "aggressive-expansion"
	StrategyOpportunistic       Strategy = "opportunistic"
	StrategyDefensive           Strategy = "defensive"
	StrategyStrategicBlocking   Strategy = "strategic-blocking"
	StrategyBalanced            Strategy = "balanced"
	StrategyTerritorial         Strategy = "territorial"
)

// Adding a profile is adding a row here, nothing else.
var strategyTable = map[Strategy]StrategyWeights{
	StrategyAggressiveExpansion: {CellsAdded: 10.0, FloodFill: 2.0},
	StrategyOpportunistic:       {CellsAdded: 5.0, WeakPosition: 2.5},
	StrategyDefensive:           {Density: 2.0, Contact: 2.0, EdgeControl: 1.5},
	StrategyStrategicBlocking:   {CellsAdded: 3.0, WeakPosition: 1.8, Contact: 3.0},
	StrategyBalanced:            {CellsAdded: 10.0, FloodFill: 1.5, WeakPosition: 2.0, Density: 1.2, EdgeControl: 0.5},
	StrategyTerritorial:         {CellsAdded: 8.0, FloodFill: 1.5, Contact: 1.5, EdgeControl: 0.8},
}

func WeightsFor(s Strategy) (StrategyWeights, bool) {
	w, ok := strategyTable[s]
	return w, ok
}

func Strategies() []Strategy {
	names := make([]Strategy, 0, len(strategyTable))
	for s := range strategyTable {
		names = append(names, s)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

func (w StrategyWeights) Apply(b ScoreBreakdown) float64 {
	return float64(b.CellsAdded)*w.CellsAdded +
		b.FloodFill*w.FloodFill +
		b.WeakPosition*w.WeakPosition +
		b.Density*w.Density +
		b.EdgeControl*w.EdgeControl +
		float64(b.Contact)*w.Contact
}

type ScoreSettings struct {
	Weights  StrategyWeights
	Cache    *EvalCache
	Deadline time.Time
	Stats    *ScoreStats
}

type ScoreStats struct {
	Candidates  int           `json:"candidates"`
	FullyScored int           `json:"fully_scored"`
	Pruned      int           `json:"pruned"`
	CutShort    bool          `json:"cut_short"`
	Elapsed     time.Duration `json:"-"`
}

type ScoredPlacement struct {
	Placement Placement
	Breakdown ScoreBreakdown
	order     int
}

// RankPlacements scores every candidate and returns them sorted by
// total descending, ties broken by discovery order. The cheap signals
// are computed for all candidates up front; the expensive flood-fill
// and density signals are only computed for candidates whose
// optimistic upper bound could still beat the best total seen, and
// only until the deadline. Pruning is strict: a candidate able to tie
// the best is always fully scored, so the selected placement does not
// depend on evaluation order.
func RankPlacements(g Grid, player Player, candidates []Placement, settings ScoreSettings) []ScoredPlacement {
	start := time.Now()
	scored := make([]ScoredPlacement, len(candidates))
	for i, pl := range candidates {
		b := ScoreBreakdown{
			CellsAdded:   CellsAdded(g, player, pl),
			WeakPosition: WeakPositionBonus(g, player, pl),
			EdgeControl:  EdgeControlBonus(g, pl),
			// Always exactly 1 for a generated candidate (legality
			// requires a single territory contact), so under current
			// rules contact-weighted profiles get a constant offset
			// from this signal rather than a discriminator.
			Contact: ContactCount(g, player, pl),
		}
		b.Total = settings.Weights.Apply(b)
		scored[i] = ScoredPlacement{Placement: pl, Breakdown: b, order: i}
	}

	// Largest values the unevaluated signals could contribute. The
	// flood-fill bound is the whole board reachable; the density bound
	// is a full distance-2 diamond around every footprint cell.
	maxFloodSignal := 0.0
	maxDensitySignal := 0.0
	if settings.Weights.FloodFill > 0 {
		maxFloodSignal = float64(g.Width()*g.Height()) * floodFillScale
	}
	if settings.Weights.Density > 0 {
		maxDensitySignal = 12 * densityScale
	}
	maxExtra := settings.Weights.FloodFill*maxFloodSignal + settings.Weights.Density*maxDensitySignal

	byCheap := make([]int, len(scored))
	for i := range byCheap {
		byCheap[i] = i
	}
	sort.SliceStable(byCheap, func(a, b int) bool {
		return scored[byCheap[a]].Breakdown.Total > scored[byCheap[b]].Breakdown.Total
	})

	best := 0.0
	haveBest := false
	fully := 0
	pruned := 0
	cutShort := false
	for _, idx := range byCheap {
		if !settings.Deadline.IsZero() && time.Now().After(settings.Deadline) {
			cutShort = true
			break
		}
		item := &scored[idx]
		if haveBest && item.Breakdown.Total+maxExtra < best {
			pruned++
			continue
		}
		if settings.Weights.FloodFill != 0 {
			item.Breakdown.FloodFill = cachedFloodFill(g, player, item.Placement, settings.Cache)
		}
		if settings.Weights.Density != 0 {
			item.Breakdown.Density = cachedDensity(g, player, item.Placement, settings.Cache)
		}
		item.Breakdown.Total = settings.Weights.Apply(item.Breakdown)
		fully++
		if !haveBest || item.Breakdown.Total > best {
			best = item.Breakdown.Total
			haveBest = true
		}
	}

	sort.SliceStable(scored, func(a, b int) bool {
		if scored[a].Breakdown.Total != scored[b].Breakdown.Total {
			return scored[a].Breakdown.Total > scored[b].Breakdown.Total
		}
		return scored[a].order < scored[b].order
	})

	if settings.Stats != nil {
		settings.Stats.Candidates = len(candidates)
		settings.Stats.FullyScored = fully
		settings.Stats.Pruned = pruned
		settings.Stats.CutShort = cutShort
		settings.Stats.Elapsed = time.Since(start)
	}
	return scored
}

// cachedFloodFill serves the flood-fill estimate through the exact
// cache tier; the simulation depends on the whole grid, so only an
// exact (version, anchor, shape) match may be reused.
func cachedFloodFill(g Grid, player Player, pl Placement, cache *EvalCache) float64 {
	compute := func() float64 {
		return float64(FloodFillEstimate(g, player, pl)) * floodFillScale
	}
	if cache == nil {
		return compute()
	}
	key := EvalCacheKey{
		Version: cache.Version(),
		Anchor:  pl.Anchor,
		Shape:   pl.Shape.Hash(),
		Signal:  SignalFloodFill,
	}
	return cache.GetOrCompute(key, compute)
}

// cachedDensity layers both tiers: an exact hit is cheapest, and on a
// miss the coarse neighborhood tier lets a candidate reuse the value
// computed for another anchor with identical local surroundings,
// which density depends on exclusively.
func cachedDensity(g Grid, player Player, pl Placement, cache *EvalCache) float64 {
	if cache == nil {
		return DensityBonus(g, player, pl)
	}
	key := EvalCacheKey{
		Version: cache.Version(),
		Anchor:  pl.Anchor,
		Shape:   pl.Shape.Hash(),
		Signal:  SignalDensity,
	}
	return cache.GetOrCompute(key, func() float64 {
		return cache.GetOrComputeCoarse(NeighborhoodHash(g, player, pl), SignalDensity, func() float64 {
			return DensityBonus(g, player, pl)
		})
	})
}
