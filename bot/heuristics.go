package main

// Signal scales. The flood-fill estimate and the per-cell bonuses are
// tuned against each other; profile weights in scoring.go multiply on
// top of these.
const (
	floodFillScale      = 2.5
	weakPositionHigh    = 3.0
	weakPositionMedium  = 1.5
	weakNeighborsHigh   = 2
	weakNeighborsMedium = 4
	densityRadius       = 2
	densityScale        = 0.8
	cornerBonus         = 2.0
	edgeBonus           = 1.0
)

// CellsAdded counts the placement's cells that are not already owned,
// i.e. the immediate expansion value of the move.
func CellsAdded(g Grid, player Player, pl Placement) int {
	added := 0
	for _, c := range pl.Cells() {
		if g.InBounds(c.X, c.Y) && !g.At(c.X, c.Y).OwnedBy(player) {
			added++
		}
	}
	return added
}

// WeakPositionBonus rewards placements next to sparsely supported
// opponent territory. For each placed cell the 4-connected opponent
// neighbor count is tiered: under two neighbors is a strong
// exploitation target, under four a moderate one.
func WeakPositionBonus(g Grid, player Player, pl Placement) float64 {
	opponent := player.Opponent()
	bonus := 0.0
	for _, c := range pl.Cells() {
		neighbors := countAdjacentOwned(g, opponent, c)
		switch {
		case neighbors < weakNeighborsHigh:
			bonus += weakPositionHigh
		case neighbors < weakNeighborsMedium:
			bonus += weakPositionMedium
		}
	}
	return bonus
}

// DensityBonus measures how consolidated the placement is: own cells
// within Manhattan distance 2 of each placed cell, averaged over the
// footprint. Dense shapes are harder to cut off.
func DensityBonus(g Grid, player Player, pl Placement) float64 {
	cells := pl.Cells()
	if len(cells) == 0 {
		return 0
	}
	total := 0.0
	for _, c := range cells {
		total += float64(countNearbyOwned(g, player, c)) * densityScale
	}
	return total / float64(len(cells))
}

// EdgeControlBonus grants a fixed positional bonus for border and
// corner cells, which cannot be flanked.
func EdgeControlBonus(g Grid, pl Placement) float64 {
	bonus := 0.0
	for _, c := range pl.Cells() {
		if !g.InBounds(c.X, c.Y) {
			continue
		}
		onVertical := c.X == 0 || c.X == g.Width()-1
		onHorizontal := c.Y == 0 || c.Y == g.Height()-1
		switch {
		case onVertical && onHorizontal:
			bonus += cornerBonus
		case onVertical || onHorizontal:
			bonus += edgeBonus
		}
	}
	return bonus
}

func countAdjacentOwned(g Grid, p Player, c Point) int {
	count := 0
	for _, n := range [4]Point{{X: c.X + 1, Y: c.Y}, {X: c.X - 1, Y: c.Y}, {X: c.X, Y: c.Y + 1}, {X: c.X, Y: c.Y - 1}} {
		if g.InBounds(n.X, n.Y) && g.At(n.X, n.Y).OwnedBy(p) {
			count++
		}
	}
	return count
}

func countNearbyOwned(g Grid, p Player, center Point) int {
	count := 0
	for dy := -densityRadius; dy <= densityRadius; dy++ {
		for dx := -densityRadius; dx <= densityRadius; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if abs(dx)+abs(dy) > densityRadius {
				continue
			}
			x := center.X + dx
			y := center.Y + dy
			if g.InBounds(x, y) && g.At(x, y).OwnedBy(p) {
				count++
			}
		}
	}
	return count
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
