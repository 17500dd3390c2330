package main

import "sync"

const fnv64Offset = 1469598103934665603
const fnv64Prime = 1099511628211

// ZobristTable holds one random 64-bit value per (cell, state) pair
// for a given grid geometry. Tables are built lazily per geometry and
// shared, so every snapshot of the same board size hashes through the
// same values.
type ZobristTable struct {
	width  int
	height int
	cells  []uint64
}

type zobristStore struct {
	mu     sync.Mutex
	tables map[[2]int]*ZobristTable
}

var zobristTables = &zobristStore{tables: make(map[[2]int]*ZobristTable)}

const zobristStates = 4 // non-empty cell states

func GetZobrist(width, height int) *ZobristTable {
	zobristTables.mu.Lock()
	defer zobristTables.mu.Unlock()
	key := [2]int{width, height}
	if table, ok := zobristTables.tables[key]; ok {
		return table
	}
	rng := splitmix64{state: uint64(0x9e3779b97f4a7c15) ^ uint64(width)<<32 ^ uint64(height)}
	table := &ZobristTable{
		width:  width,
		height: height,
		cells:  make([]uint64, width*height*zobristStates),
	}
	for i := range table.cells {
		table.cells[i] = rng.next()
	}
	zobristTables.tables[key] = table
	return table
}

func (z *ZobristTable) cell(x, y int, state Cell) uint64 {
	return z.cells[(y*z.width+x)*zobristStates+int(state)-1]
}

// GridHash fingerprints the full grid contents. Identical snapshots
// hash identically; any ownership change flips the hash.
func GridHash(g Grid) uint64 {
	z := GetZobrist(g.Width(), g.Height())
	var hash uint64
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			cell := g.At(x, y)
			if cell == CellEmpty {
				continue
			}
			hash ^= z.cell(x, y, cell)
		}
	}
	return hash
}

// NeighborhoodHash fingerprints the cells surrounding a placement:
// the footprint's bounding box expanded by the density radius, read
// in window-relative coordinates. Two placements of the same shape
// whose local surroundings match produce the same hash even at
// different anchors, which is what lets the coarse cache tier reuse
// neighborhood-local signals across candidates.
func NeighborhoodHash(g Grid, player Player, pl Placement) uint64 {
	cells := pl.Cells()
	if len(cells) == 0 {
		return 0
	}
	minX, minY := cells[0].X, cells[0].Y
	maxX, maxY := minX, minY
	for _, c := range cells[1:] {
		if c.X < minX {
			minX = c.X
		}
		if c.X > maxX {
			maxX = c.X
		}
		if c.Y < minY {
			minY = c.Y
		}
		if c.Y > maxY {
			maxY = c.Y
		}
	}
	hash := uint64(fnv64Offset)
	mix := func(v uint64) {
		for i := 0; i < 8; i++ {
			hash ^= uint64(byte(v >> (8 * i)))
			hash *= fnv64Prime
		}
	}
	mix(uint64(player))
	mix(pl.Shape.Hash())
	for y := minY - densityRadius; y <= maxY+densityRadius; y++ {
		for x := minX - densityRadius; x <= maxX+densityRadius; x++ {
			// Out-of-grid cells are part of the pattern: a window
			// against the border is not the same as one mid-board.
			state := uint64(0xff)
			if g.InBounds(x, y) {
				state = uint64(g.At(x, y))
			}
			mix(state)
		}
	}
	return hash
}

type splitmix64 struct {
	state uint64
}

func (s *splitmix64) next() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
