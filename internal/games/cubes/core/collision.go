package core

// Collision answers point occupancy queries.
type Collision interface {
	Occupied(p Point) bool
	Put(p Point)
}

// NeighborhoodOf returns which of the eight cells around p are occupied in c.
func NeighborhoodOf(c Collision, p Point) Neighborhood {
	var n Neighborhood
	for _, a := range Arounds {
		if c.Occupied(p.Add(a.Offset())) {
			n = n.With(a)
		}
	}
	return n
}

// SetCollision is an unbounded occupancy set.
type SetCollision map[Point]struct{}

// NewSetCollision returns a set holding the given points.
func NewSetCollision(points ...Point) SetCollision {
	c := make(SetCollision, len(points))
	for _, p := range points {
		c.Put(p)
	}
	return c
}

// Occupied reports whether p was put into the set.
func (c SetCollision) Occupied(p Point) bool {
	_, ok := c[p]
	return ok
}

// Put adds p to the set.
func (c SetCollision) Put(p Point) {
	c[p] = struct{}{}
}

const bitmapWord = 64

// BitmapCollision is a fixed-size occupancy grid packed into 64-bit words.
// Points outside the grid are neither occupied nor available.
type BitmapCollision struct {
	width  int
	height int
	bits   []uint64
}

// NewBitmapCollision allocates an empty grid. Dimensions below 1 are raised to 1.
func NewBitmapCollision(width, height int) *BitmapCollision {
	width = max(width, 1)
	height = max(height, 1)
	return &BitmapCollision{
		width:  width,
		height: height,
		bits:   make([]uint64, (width*height+bitmapWord-1)/bitmapWord),
	}
}

// Width returns the grid width.
func (b *BitmapCollision) Width() int {
	return b.width
}

// Height returns the grid height.
func (b *BitmapCollision) Height() int {
	return b.height
}

func (b *BitmapCollision) locate(p Point) (word int, bit uint, ok bool) {
	if p.X < 0 || p.X >= b.width || p.Y < 0 || p.Y >= b.height {
		return 0, 0, false
	}
	index := p.X + p.Y*b.width
	return index / bitmapWord, uint(index % bitmapWord), true
}

// Occupied reports whether p is inside the grid and set.
func (b *BitmapCollision) Occupied(p Point) bool {
	word, bit, ok := b.locate(p)
	return ok && b.bits[word]&(1<<bit) != 0
}

// Available reports whether p is inside the grid and not set.
func (b *BitmapCollision) Available(p Point) bool {
	word, bit, ok := b.locate(p)
	return ok && b.bits[word]&(1<<bit) == 0
}

// Put marks p as occupied. Points outside the grid are ignored.
func (b *BitmapCollision) Put(p Point) {
	if word, bit, ok := b.locate(p); ok {
		b.bits[word] |= 1 << bit
	}
}
