package core

// Territory maps the border cells of a set of cubes to their slot.
type Territory map[Point]int

// NewTerritory indexes the border units of the given cubes. Later cubes win
// when two claim the same cell.
func NewTerritory(cubes []*cube) Territory {
	t := make(Territory)
	for _, c := range cubes {
		for _, u := range c.units {
			if u.Neighborhood.IsBorder() {
				t[u.Position] = c.index
			}
		}
	}
	return t
}

// Neighbors returns the slots of cubes touching c on any side, with repeats.
func (t Territory) Neighbors(c *cube) []int {
	return t.lookup(c.contours.All(c.anchor()))
}

// InFront returns the distinct slots of cubes occupying c's frontline.
func (t Territory) InFront(c *cube) []int {
	found := t.lookup(c.frontlines())
	seen := make(map[int]struct{}, len(found))
	distinct := found[:0]
	for _, slot := range found {
		if _, ok := seen[slot]; !ok {
			seen[slot] = struct{}{}
			distinct = append(distinct, slot)
		}
	}
	return distinct
}

func (t Territory) lookup(points []Point) []int {
	var slots []int
	for _, p := range points {
		if slot, ok := t[p]; ok {
			slots = append(slots, slot)
		}
	}
	return slots
}

// quarterCorners are the four sub-cells of a doubled-resolution cell.
var quarterCorners = [...]Point{{0, 0}, {0, 1}, {1, 0}, {1, 1}}

// QuarterTerritory is a Territory at doubled resolution where every moving
// cube is shifted half a cell along its movement. Cubes that would touch
// halfway through this tick's move are neighbors here.
type QuarterTerritory map[Point]int

// NewQuarterTerritory indexes the shifted border units of the given cubes.
func NewQuarterTerritory(cubes []*cube) QuarterTerritory {
	t := make(QuarterTerritory)
	for _, c := range cubes {
		delta := c.halfStep()
		for _, u := range c.units {
			if !u.Neighborhood.IsBorder() {
				continue
			}
			base := u.Position.Scale(2).Add(delta)
			for _, corner := range quarterCorners {
				t[base.Add(corner)] = c.index
			}
		}
	}
	return t
}

// facing returns the two sub-cells of a neighboring doubled cell that touch
// a cube looking towards it in direction m.
func facing(m Movement) [2]Point {
	switch m {
	case Left:
		return [2]Point{{1, 0}, {1, 1}}
	case Down:
		return [2]Point{{0, 0}, {1, 0}}
	case Up:
		return [2]Point{{0, 1}, {1, 1}}
	default:
		return [2]Point{{0, 0}, {0, 1}}
	}
}

// Neighbors returns the slots of cubes touching c at the half step, with repeats.
func (t QuarterTerritory) Neighbors(c *cube) []int {
	var slots []int
	delta := c.halfStep()
	anchor := c.anchor()
	for _, m := range Movements {
		sides := facing(m)
		for _, p := range c.contours.One(anchor, m) {
			base := p.Scale(2).Add(delta)
			for _, side := range sides {
				if slot, ok := t[base.Add(side)]; ok {
					slots = append(slots, slot)
				}
			}
		}
	}
	return slots
}
