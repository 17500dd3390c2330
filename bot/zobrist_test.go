package main

import "testing"

func TestGridHashDeterministic(t *testing.T) {
	rows := []string{
		".....",
		".@$..",
		"..@..",
	}
	a := GridFromRows(rows)
	b := GridFromRows(rows)
	if GridHash(a) != GridHash(b) {
		t.Fatalf("identical snapshots hash differently")
	}
}

func TestGridHashSensitivity(t *testing.T) {
	base := GridFromRows([]string{
		".....",
		".@...",
		".....",
	})
	moved := GridFromRows([]string{
		".....",
		"..@..",
		".....",
	})
	flipped := GridFromRows([]string{
		".....",
		".$...",
		".....",
	})
	h := GridHash(base)
	if h == GridHash(moved) {
		t.Fatalf("cell position change did not flip the hash")
	}
	if h == GridHash(flipped) {
		t.Fatalf("ownership change did not flip the hash")
	}
}

func TestNeighborhoodHashTranslationInvariant(t *testing.T) {
	// Two placements with identical local surroundings at different
	// anchors, both far enough from the border that the window never
	// leaves the grid.
	g := GridFromRows([]string{
		"..........",
		"..........",
		"..@.......",
		"..........",
		"..........",
		"..........",
		"......@...",
		"..........",
		"..........",
		"..........",
	})
	single := ShapeFromRows([]string{"O"})
	a := Placement{Anchor: Point{X: 2, Y: 3}, Shape: single}
	b := Placement{Anchor: Point{X: 6, Y: 7}, Shape: single}
	if NeighborhoodHash(g, Player1, a) != NeighborhoodHash(g, Player1, b) {
		t.Fatalf("translated identical neighborhoods hash differently")
	}
}

func TestNeighborhoodHashDistinguishes(t *testing.T) {
	g := GridFromRows([]string{
		"..........",
		"..........",
		"..@.......",
		"..........",
		"..........",
	})
	single := ShapeFromRows([]string{"O"})
	domino := ShapeFromRows([]string{"OO"})
	pl := Placement{Anchor: Point{X: 2, Y: 3}, Shape: single}

	// Same window, other player: density would count different cells.
	if NeighborhoodHash(g, Player1, pl) == NeighborhoodHash(g, Player2, pl) {
		t.Fatalf("player identity not part of the hash")
	}
	// Same anchor, other shape.
	asDomino := Placement{Anchor: Point{X: 2, Y: 3}, Shape: domino}
	if NeighborhoodHash(g, Player1, pl) == NeighborhoodHash(g, Player1, asDomino) {
		t.Fatalf("shape not part of the hash")
	}
	// A window clipped by the border is not the same pattern as an
	// all-empty window mid-board.
	blank := GridFromRows([]string{
		"..........",
		"..........",
		"..........",
		"..........",
		"..........",
	})
	nearEdge := Placement{Anchor: Point{X: 5, Y: 1}, Shape: single}
	midBoard := Placement{Anchor: Point{X: 5, Y: 2}, Shape: single}
	if NeighborhoodHash(blank, Player1, nearEdge) == NeighborhoodHash(blank, Player1, midBoard) {
		t.Fatalf("border clipping not part of the hash")
	}
}

func TestZobristTableSharedPerGeometry(t *testing.T) {
	if GetZobrist(12, 9) != GetZobrist(12, 9) {
		t.Fatalf("same geometry produced distinct tables")
	}
	if GetZobrist(12, 9) == GetZobrist(9, 12) {
		t.Fatalf("transposed geometry shared a table")
	}
}
