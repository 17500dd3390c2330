package main

// FloodFillEstimate projects the territory reachable after applying
// the placement: a breadth-first search starts from the placed cells,
// expands through empty cells, and stops at opponent territory. The
// count covers the placed cells, every reachable empty cell, and own
// cells met on the frontier, approximating the long-term maximum
// territory behind this move.
//
// The search is iterative with an index-based visited array and a
// slice queue, so memory stays proportional to the grid regardless of
// region shape.
func FloodFillEstimate(g Grid, player Player, pl Placement) int {
	sim := applyPlacement(g, player, pl)
	width := sim.Width()
	height := sim.Height()
	visited := make([]bool, width*height)
	queue := make([]int, 0, len(pl.Cells()))

	count := 0
	for _, c := range pl.Cells() {
		idx := c.Y*width + c.X
		if visited[idx] {
			continue
		}
		visited[idx] = true
		queue = append(queue, idx)
		count++
	}

	for head := 0; head < len(queue); head++ {
		idx := queue[head]
		x := idx % width
		y := idx / width
		for _, n := range [4]Point{{X: x + 1, Y: y}, {X: x - 1, Y: y}, {X: x, Y: y + 1}, {X: x, Y: y - 1}} {
			if !sim.InBounds(n.X, n.Y) {
				continue
			}
			nIdx := n.Y*width + n.X
			if visited[nIdx] {
				continue
			}
			cell := sim.At(n.X, n.Y)
			switch {
			case cell == CellEmpty:
				visited[nIdx] = true
				count++
				queue = append(queue, nIdx)
			case cell.OwnedBy(player):
				// Counted as already-secured territory but not
				// expanded through; anything behind it is reachable
				// from the player's own frontier anyway.
				visited[nIdx] = true
				count++
			}
		}
	}
	return count
}
