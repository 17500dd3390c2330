package main

import "sort"

// GenerateCandidates returns every anchor at which the piece can be
// legally placed, in raster order. Rather than probing all
// width*height anchors, it derives the anchors that could produce a
// territory contact: for each owned cell and each shape offset, the
// anchor putting that offset on the owned cell. Every legal placement
// has exactly one contact, so the enumeration is complete.
//
// The result is a fresh slice each call; nothing is retained between
// turns. An empty slice means the player cannot move.
func GenerateCandidates(g Grid, player Player, shape Shape) []Placement {
	if shape.Empty() {
		return nil
	}
	owned := g.PlayerCells(player)
	if len(owned) == 0 {
		return nil
	}
	width := g.Width()
	height := g.Height()
	seen := make([]bool, width*height)
	var anchors []Point
	for _, cell := range owned {
		for _, o := range shape.Offsets() {
			ax := cell.X - o.X
			ay := cell.Y - o.Y
			if ax < 0 || ay < 0 {
				continue
			}
			// Filled-extent prune before the full validation; empty
			// block columns past the grid edge are fine.
			if ax+shape.MaxDx() >= width || ay+shape.MaxDy() >= height {
				continue
			}
			idx := ay*width + ax
			if seen[idx] {
				continue
			}
			seen[idx] = true
			anchors = append(anchors, Point{X: ax, Y: ay})
		}
	}
	sort.Slice(anchors, func(i, j int) bool {
		if anchors[i].Y != anchors[j].Y {
			return anchors[i].Y < anchors[j].Y
		}
		return anchors[i].X < anchors[j].X
	})
	var placements []Placement
	for _, anchor := range anchors {
		pl := Placement{Anchor: anchor, Shape: shape}
		if ValidatePlacement(g, player, pl) == nil {
			placements = append(placements, pl)
		}
	}
	return placements
}
