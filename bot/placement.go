package main

import "errors"

// Illegality taxonomy. These are expected, high-frequency outcomes of
// probing anchors, not failures; the candidate generator consumes them
// and never surfaces them to the caller.
var (
	ErrEmptyShape            = errors.New("piece has no filled cells")
	ErrOutOfBounds           = errors.New("placement extends outside the grid")
	ErrCollisionWithOpponent = errors.New("placement overlaps opponent territory")
	ErrCollisionWithSelf     = errors.New("placement claims the same cell twice")
	ErrNoTerritoryContact    = errors.New("placement touches no own territory")
	ErrMultipleContacts      = errors.New("placement touches own territory more than once")
)

// Placement is a candidate anchor for the current piece. Absolute
// filled cells are the anchor plus each shape offset.
type Placement struct {
	Anchor Point
	Shape  Shape
}

func (p Placement) Cells() []Point {
	offsets := p.Shape.Offsets()
	cells := make([]Point, len(offsets))
	for i, o := range offsets {
		cells[i] = Point{X: p.Anchor.X + o.X, Y: p.Anchor.Y + o.Y}
	}
	return cells
}

// ValidatePlacement is the single source of truth for placement
// legality. Checks run cheapest first and short-circuit:
//
//  1. the shape must have at least one filled cell
//  2. every absolute cell must be in bounds
//  3. no absolute cell may land on opponent territory
//  4. no two offsets may map to the same absolute cell
//  5. exactly one absolute cell must land on own territory
//
// A nil return means the placement is legal.
func ValidatePlacement(g Grid, player Player, pl Placement) error {
	offsets := pl.Shape.Offsets()
	if len(offsets) == 0 {
		return ErrEmptyShape
	}
	opponent := player.Opponent()
	contacts := 0
	seen := make(map[Point]struct{}, len(offsets))
	for _, o := range offsets {
		x := pl.Anchor.X + o.X
		y := pl.Anchor.Y + o.Y
		if !g.InBounds(x, y) {
			return ErrOutOfBounds
		}
		cell := g.At(x, y)
		if cell.OwnedBy(opponent) {
			return ErrCollisionWithOpponent
		}
		p := Point{X: x, Y: y}
		if _, dup := seen[p]; dup {
			return ErrCollisionWithSelf
		}
		seen[p] = struct{}{}
		if cell.OwnedBy(player) {
			contacts++
		}
	}
	switch contacts {
	case 0:
		return ErrNoTerritoryContact
	case 1:
		return nil
	default:
		return ErrMultipleContacts
	}
}

// ContactCount counts absolute cells landing on own territory. For a
// legal placement this is always exactly one.
func ContactCount(g Grid, player Player, pl Placement) int {
	contacts := 0
	for _, c := range pl.Cells() {
		if g.InBounds(c.X, c.Y) && g.At(c.X, c.Y).OwnedBy(player) {
			contacts++
		}
	}
	return contacts
}

// applyPlacement marks the placement's cells as the player's freshly
// placed territory on a clone of the grid. Used for hypothetical
// "what if placed here" analysis only; the turn's grid is never
// mutated in place.
func applyPlacement(g Grid, player Player, pl Placement) Grid {
	next := g.Clone()
	mark := CellPlayer1Last
	if player == Player2 {
		mark = CellPlayer2Last
	}
	for _, c := range pl.Cells() {
		next.Set(c.X, c.Y, mark)
	}
	return next
}
