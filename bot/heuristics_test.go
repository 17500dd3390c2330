package main

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCellsAdded(t *testing.T) {
	g := GridFromRows([]string{
		".....",
		".@...",
		".....",
	})
	domino := ShapeFromRows([]string{"OO"})
	pl := Placement{Anchor: Point{X: 1, Y: 1}, Shape: domino}
	if got := CellsAdded(g, Player1, pl); got != 1 {
		t.Fatalf("one cell overlaps territory: got %d want 1", got)
	}
	free := Placement{Anchor: Point{X: 2, Y: 2}, Shape: domino}
	if got := CellsAdded(g, Player1, free); got != 2 {
		t.Fatalf("fully free placement: got %d want 2", got)
	}
}

func TestWeakPositionBonusTiers(t *testing.T) {
	single := ShapeFromRows([]string{"O"})

	// One adjacent opponent cell: strong tier.
	g := GridFromRows([]string{
		".....",
		"..$..",
		".$$..",
		".....",
	})
	sparse := Placement{Anchor: Point{X: 2, Y: 3}, Shape: single}
	if got := WeakPositionBonus(g, Player1, sparse); !almostEqual(got, weakPositionHigh) {
		t.Fatalf("sparse opponent: got %v want %v", got, weakPositionHigh)
	}

	// Two adjacent opponent cells: medium tier.
	medium := Placement{Anchor: Point{X: 1, Y: 1}, Shape: single}
	if got := WeakPositionBonus(g, Player1, medium); !almostEqual(got, weakPositionMedium) {
		t.Fatalf("medium opponent density: got %v want %v", got, weakPositionMedium)
	}

	// Fully surrounded: no bonus.
	ring := GridFromRows([]string{
		".$.",
		"$.$",
		".$.",
	})
	surrounded := Placement{Anchor: Point{X: 1, Y: 1}, Shape: single}
	if got := WeakPositionBonus(ring, Player1, surrounded); got != 0 {
		t.Fatalf("surrounded cell: got %v want 0", got)
	}
}

func TestDensityBonus(t *testing.T) {
	g := GridFromRows([]string{
		"@@...",
		"@....",
		".....",
	})
	pl := Placement{Anchor: Point{X: 1, Y: 1}, Shape: ShapeFromRows([]string{"O"})}
	// Own cells within Manhattan distance 2 of (1,1): (1,0), (0,1)
	// at distance 1 and (0,0) at distance 2.
	want := 3 * densityScale
	if got := DensityBonus(g, Player1, pl); !almostEqual(got, want) {
		t.Fatalf("density: got %v want %v", got, want)
	}
}

func TestDensityBonusAveragesOverFootprint(t *testing.T) {
	g := GridFromRows([]string{
		"@....",
		".....",
		".....",
	})
	pl := Placement{Anchor: Point{X: 1, Y: 0}, Shape: ShapeFromRows([]string{"OO"})}
	// (1,0) sees the own cell at distance 1, (2,0) at distance 2:
	// (0.8 + 0.8) / 2.
	want := (densityScale + densityScale) / 2
	if got := DensityBonus(g, Player1, pl); !almostEqual(got, want) {
		t.Fatalf("averaged density: got %v want %v", got, want)
	}
}

func TestEdgeControlBonus(t *testing.T) {
	g := GridFromRows([]string{
		".....",
		".....",
		".....",
		".....",
		".....",
	})
	single := ShapeFromRows([]string{"O"})

	corner := Placement{Anchor: Point{X: 0, Y: 0}, Shape: single}
	edge := Placement{Anchor: Point{X: 2, Y: 0}, Shape: single}
	interior := Placement{Anchor: Point{X: 2, Y: 2}, Shape: single}

	cornerScore := EdgeControlBonus(g, corner)
	edgeScore := EdgeControlBonus(g, edge)
	interiorScore := EdgeControlBonus(g, interior)

	if !almostEqual(cornerScore, cornerBonus) {
		t.Fatalf("corner: got %v want %v", cornerScore, cornerBonus)
	}
	if !almostEqual(edgeScore, edgeBonus) {
		t.Fatalf("edge: got %v want %v", edgeScore, edgeBonus)
	}
	if interiorScore != 0 {
		t.Fatalf("interior: got %v want 0", interiorScore)
	}
	if cornerScore <= edgeScore || edgeScore <= interiorScore {
		t.Fatalf("expected corner > edge > interior, got %v/%v/%v", cornerScore, edgeScore, interiorScore)
	}
}

func TestEdgeControlBonusMultiCell(t *testing.T) {
	g := GridFromRows([]string{
		".....",
		".....",
		".....",
	})
	pl := Placement{Anchor: Point{X: 3, Y: 0}, Shape: ShapeFromRows([]string{"OO"})}
	// (3,0) is an edge cell, (4,0) a corner.
	want := edgeBonus + cornerBonus
	if got := EdgeControlBonus(g, pl); !almostEqual(got, want) {
		t.Fatalf("multi-cell edge control: got %v want %v", got, want)
	}
}
