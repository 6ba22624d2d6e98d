package core

// FrozenUnit is one cell of the static background.
type FrozenUnit struct {
	Position     Point
	Neighborhood Neighborhood
}

// Frozen is the immutable background built once from unscripted White cubes.
// It is shared by every Collection and Snapshot derived from the same seed
// and must never be mutated after construction.
type Frozen struct {
	units     []FrozenUnit
	collision *BitmapCollision
}

// NewFrozen builds the background of a width x height grid from cube bodies.
// Neighborhoods are computed per body, so two touching bodies keep their seams.
func NewFrozen(width, height int, bodies [][]Point) *Frozen {
	f := &Frozen{collision: NewBitmapCollision(width, height)}
	for _, body := range bodies {
		c := NewSetCollision(body...)
		for _, p := range body {
			f.units = append(f.units, FrozenUnit{Position: p, Neighborhood: NeighborhoodOf(c, p)})
		}
	}
	for _, u := range f.units {
		f.collision.Put(u.Position)
	}
	return f
}

// Blocked reports whether p is a background cell or lies outside the grid.
func (f *Frozen) Blocked(p Point) bool {
	return !f.collision.Available(p)
}

// Occupied reports whether p is a background cell. Unlike Blocked, cells
// outside the grid are not occupied.
func (f *Frozen) Occupied(p Point) bool {
	return f.collision.Occupied(p)
}

// Units returns the background cells. The slice must not be modified.
func (f *Frozen) Units() []FrozenUnit {
	return f.units
}

// Len returns the number of background cells.
func (f *Frozen) Len() int {
	return len(f.units)
}

// Width returns the grid width.
func (f *Frozen) Width() int {
	return f.collision.Width()
}

// Height returns the grid height.
func (f *Frozen) Height() int {
	return f.collision.Height()
}
