package main

// Shape is a piece described by the relative offsets of its filled
// cells. Offsets are measured from the top-left of the piece block as
// sent by the referee, so they are always non-negative and the anchor
// written back is the block's own origin.
type Shape struct {
	width   int
	height  int
	maxDx   int
	maxDy   int
	offsets []Point
	hash    uint64
}

func NewShape(width, height int, offsets []Point) Shape {
	s := Shape{width: width, height: height}
	s.offsets = make([]Point, len(offsets))
	copy(s.offsets, offsets)
	for _, o := range s.offsets {
		if o.X > s.maxDx {
			s.maxDx = o.X
		}
		if o.Y > s.maxDy {
			s.maxDy = o.Y
		}
	}
	s.hash = shapeHash(width, height, s.offsets)
	return s
}

// ShapeFromRows builds a shape from wire-format rows where any
// non-'.' character is a filled cell.
func ShapeFromRows(rows []string) Shape {
	height := len(rows)
	width := 0
	if height > 0 {
		width = len(rows[0])
	}
	var offsets []Point
	for y, row := range rows {
		for x := 0; x < len(row); x++ {
			if row[x] != '.' {
				offsets = append(offsets, Point{X: x, Y: y})
			}
		}
	}
	return NewShape(width, height, offsets)
}

func (s Shape) Width() int {
	return s.width
}

func (s Shape) Height() int {
	return s.height
}

func (s Shape) Empty() bool {
	return len(s.offsets) == 0
}

func (s Shape) CellCount() int {
	return len(s.offsets)
}

func (s Shape) Offsets() []Point {
	return s.offsets
}

// MaxDx and MaxDy are the largest filled offsets; the piece block may
// extend further with empty cells, which never affects legality.
func (s Shape) MaxDx() int {
	return s.maxDx
}

func (s Shape) MaxDy() int {
	return s.maxDy
}

// Hash identifies the shape for cache keys. Two shapes with the same
// dimensions and filled cells always hash alike.
func (s Shape) Hash() uint64 {
	return s.hash
}

func shapeHash(width, height int, offsets []Point) uint64 {
	hash := uint64(fnv64Offset)
	mix := func(v uint64) {
		for i := 0; i < 8; i++ {
			hash ^= uint64(byte(v >> (8 * i)))
			hash *= fnv64Prime
		}
	}
	mix(uint64(width))
	mix(uint64(height))
	for _, o := range offsets {
		mix(uint64(o.Y)<<32 | uint64(uint32(o.X)))
	}
	return hash
}
