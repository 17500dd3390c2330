package main

import "strings"

type Cell int

const (
	CellEmpty Cell = iota
	CellPlayer1
	CellPlayer2
	CellPlayer1Last
	CellPlayer2Last
)

type Player int

const (
	Player1 Player = 1
	Player2 Player = 2
)

func (p Player) Opponent() Player {
	if p == Player1 {
		return Player2
	}
	return Player1
}

func (p Player) String() string {
	if p == Player2 {
		return "p2"
	}
	return "p1"
}

// Wire characters used by the referee: '.' empty, '@'/'a' player one,
// '$'/'s' player two. Lowercase marks the most recent piece.
func CellFromChar(ch byte) Cell {
	switch ch {
	case '@':
		return CellPlayer1
	case '$':
		return CellPlayer2
	case 'a':
		return CellPlayer1Last
	case 's':
		return CellPlayer2Last
	default:
		return CellEmpty
	}
}

func (c Cell) Char() byte {
	switch c {
	case CellPlayer1:
		return '@'
	case CellPlayer2:
		return '$'
	case CellPlayer1Last:
		return 'a'
	case CellPlayer2Last:
		return 's'
	default:
		return '.'
	}
}

// OwnedBy reports whether the cell belongs to the given player. The
// "last placed" variants keep ownership semantics.
func (c Cell) OwnedBy(p Player) bool {
	if p == Player1 {
		return c == CellPlayer1 || c == CellPlayer1Last
	}
	return c == CellPlayer2 || c == CellPlayer2Last
}

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Grid struct {
	width  int
	height int
	cells  []Cell
}

func NewGrid(width, height int) Grid {
	return Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
}

// GridFromRows builds a grid from wire-format rows. Rows are assumed
// rectangular; the parser enforces that before calling.
func GridFromRows(rows []string) Grid {
	height := len(rows)
	width := 0
	if height > 0 {
		width = len(rows[0])
	}
	g := NewGrid(width, height)
	for y, row := range rows {
		for x := 0; x < width && x < len(row); x++ {
			g.cells[y*width+x] = CellFromChar(row[x])
		}
	}
	return g
}

func (g Grid) Width() int {
	return g.width
}

func (g Grid) Height() int {
	return g.height
}

func (g Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

func (g Grid) At(x, y int) Cell {
	return g.cells[g.index(x, y)]
}

func (g *Grid) Set(x, y int, value Cell) {
	g.cells[g.index(x, y)] = value
}

func (g Grid) Clone() Grid {
	clone := Grid{width: g.width, height: g.height}
	clone.cells = make([]Cell, len(g.cells))
	copy(clone.cells, g.cells)
	return clone
}

// PlayerCells returns every cell owned by the player in raster order
// (top to bottom, left to right).
func (g Grid) PlayerCells(p Player) []Point {
	var points []Point
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.cells[y*g.width+x].OwnedBy(p) {
				points = append(points, Point{X: x, Y: y})
			}
		}
	}
	return points
}

func (g Grid) CountTerritory(p Player) int {
	count := 0
	for _, cell := range g.cells {
		if cell.OwnedBy(p) {
			count++
		}
	}
	return count
}

func (g Grid) CountEmpty() int {
	count := 0
	for _, cell := range g.cells {
		if cell == CellEmpty {
			count++
		}
	}
	return count
}

func (g Grid) String() string {
	var sb strings.Builder
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			sb.WriteByte(g.cells[y*g.width+x].Char())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (g Grid) index(x, y int) int {
	return y*g.width + x
}
