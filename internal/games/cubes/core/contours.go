package core

// Contours caches, for every cell of a cube, the outside cell next to it in each
// direction where the cube has no cell of its own. Offsets are stored relative
// to the cube's first cell, so translating the cube never invalidates them.
// A Contours value is immutable and shared between clones of the cube.
type Contours struct {
	bounds  [3]int // ends of the Left, Down and Up buckets
	offsets []Point
}

// NewContours computes the contours of a set of cells whose neighborhoods
// are already known.
func NewContours(cells []Cell) *Contours {
	var count [4]int
	for _, u := range cells {
		for i, m := range Movements {
			if !u.Neighborhood.Has(m.adjacence()) {
				count[i]++
			}
		}
	}
	for i := 1; i < len(count); i++ {
		count[i] += count[i-1]
	}

	next := [4]int{0, count[0], count[1], count[2]}
	offsets := make([]Point, count[3])
	first := anchorOf(cells)
	for _, u := range cells {
		for i, m := range Movements {
			if !u.Neighborhood.Has(m.adjacence()) {
				offsets[next[i]] = u.Position.Step(m).Sub(first)
				next[i]++
			}
		}
	}
	return &Contours{
		bounds:  [3]int{count[0], count[1], count[2]},
		offsets: offsets,
	}
}

// One returns the frontline of a cube anchored at anchor facing m:
// the cells it would enter by moving one step in that direction.
func (c *Contours) One(anchor Point, m Movement) []Point {
	var bucket []Point
	switch m {
	case Left:
		bucket = c.offsets[:c.bounds[0]]
	case Down:
		bucket = c.offsets[c.bounds[0]:c.bounds[1]]
	case Up:
		bucket = c.offsets[c.bounds[1]:c.bounds[2]]
	case Right:
		bucket = c.offsets[c.bounds[2]:]
	default:
		return nil
	}
	return translate(anchor, bucket)
}

// All returns every outside cell adjacent to the cube anchored at anchor,
// bucket by bucket. Cells touching several sides appear once per side.
func (c *Contours) All(anchor Point) []Point {
	return translate(anchor, c.offsets)
}

func translate(anchor Point, offsets []Point) []Point {
	points := make([]Point, len(offsets))
	for i, o := range offsets {
		points[i] = anchor.Add(o)
	}
	return points
}

// anchorOf returns the position of the first cell, or the origin.
func anchorOf(cells []Cell) Point {
	if len(cells) == 0 {
		return Point{}
	}
	return cells[0].Position
}
