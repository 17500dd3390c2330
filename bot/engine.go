package main

import (
	"time"
)

// GameState is one turn's snapshot as handed over by the parser:
// structural well-formedness is its problem, placement legality is
// ours.
type GameState struct {
	Player Player
	Grid   Grid
	Piece  Shape
}

// Decision is the engine's answer for one turn. BoardHash fingerprints
// the grid the decision was made against, so a trace entry can be
// matched back to the exact position even after the version counter
// has moved on.
type Decision struct {
	Move      Point          `json:"move"`
	HasMove   bool           `json:"has_move"`
	Breakdown ScoreBreakdown `json:"breakdown"`
	Stats     ScoreStats     `json:"stats"`
	Version   uint64         `json:"version"`
	BoardHash uint64         `json:"board_hash"`
	Elapsed   time.Duration  `json:"-"`
}

// Engine runs the full decision pipeline for one player: candidate
// generation, heuristic analysis through the cache, scoring under the
// active strategy profile, and selection. It owns the cache; the
// version counter is bumped once per Decide call, which is what
// invalidates entries from earlier turns.
type Engine struct {
	strategy Strategy
	weights  StrategyWeights
	cache    *EvalCache
}

func NewEngine(cfg Config) *Engine {
	strategy := Strategy(cfg.Strategy)
	weights, ok := WeightsFor(strategy)
	if !ok {
		strategy = StrategyBalanced
		weights, _ = WeightsFor(StrategyBalanced)
	}
	return &Engine{
		strategy: strategy,
		weights:  weights,
		cache:    NewEvalCache(cfg.CacheMaxEntries),
	}
}

func (e *Engine) Strategy() Strategy {
	return e.strategy
}

func (e *Engine) CacheStats() CacheStats {
	return e.cache.Stats()
}

// Decide evaluates one turn. It never fails: an unplayable turn is a
// normal outcome reported through HasMove.
func (e *Engine) Decide(state GameState) Decision {
	start := time.Now()
	cfg := GetConfig()
	version := e.cache.NextVersion()

	decision := Decision{Version: version, BoardHash: GridHash(state.Grid)}
	candidates := GenerateCandidates(state.Grid, state.Player, state.Piece)
	if len(candidates) == 0 {
		decision.Elapsed = time.Since(start)
		return decision
	}

	settings := ScoreSettings{
		Weights: e.weights,
		Cache:   e.cache,
		Stats:   &decision.Stats,
	}
	if cfg.TimeBudgetMs > 0 {
		settings.Deadline = start.Add(time.Duration(cfg.TimeBudgetMs) * time.Millisecond)
	}
	ranked := RankPlacements(state.Grid, state.Player, candidates, settings)
	if best, ok := SelectMove(ranked); ok {
		decision.Move = best.Placement.Anchor
		decision.HasMove = true
		decision.Breakdown = best.Breakdown
	}
	decision.Elapsed = time.Since(start)
	return decision
}
