package core

// Entry describes one cube when building a Collection.
type Entry struct {
	Kind   Kind
	Body   []Point
	Motion Motion
}

// Report summarizes what happened during one tick.
type Report struct {
	Merged  int // groups folded into a single cube
	Draws   int // three color groups left unmerged
	Stopped int // cubes blocked by the background or a neighbor
	Locked  int // cubes stuck in an unresolved contest
	Slapped int // cubes that lost a contest
	Removed int // cubes fully absorbed
}

// Collection is the complete dynamic state of a level at one instant: every
// cube that can still move or merge, plus the shared frozen background.
type Collection struct {
	cubes  []*cube
	area   *Frozen
	player Kind
	report Report
}

// NewCollection builds the initial state of a width x height level.
// Unscripted White entries become frozen background; every other entry becomes
// a cube whose cells receive consecutive unit ids in entry order.
func NewCollection(width, height int, player Kind, entries []Entry) *Collection {
	c := &Collection{player: player}
	var background [][]Point
	next := 0
	for _, e := range entries {
		if e.Kind == White && e.Motion.IsStill() {
			background = append(background, e.Body)
			continue
		}
		collision := NewSetCollision(e.Body...)
		units := make([]Cell, len(e.Body))
		for i, p := range e.Body {
			units[i] = Cell{
				Index:        next + i,
				Position:     p,
				Neighborhood: NeighborhoodOf(collision, p),
			}
		}
		next += len(e.Body)
		c.cubes = append(c.cubes, newCube(len(c.cubes), e.Kind, units, e.Motion.Clone()))
	}
	c.area = NewFrozen(width, height, background)
	return c
}

// Clone returns a deep copy that shares only the immutable background and contours.
func (c *Collection) Clone() *Collection {
	cubes := make([]*cube, len(c.cubes))
	for i, cb := range c.cubes {
		cubes[i] = cb.clone()
	}
	return &Collection{cubes: cubes, area: c.area, player: c.player, report: c.report}
}

// Frozen returns the shared background.
func (c *Collection) Frozen() *Frozen {
	return c.area
}

// Len returns the number of live cubes.
func (c *Collection) Len() int {
	return len(c.cubes)
}

// Report returns the summary of the last Commit.
func (c *Collection) Report() Report {
	return c.report
}

// Snapshot materializes the externally visible units, ordered by unit id.
func (c *Collection) Snapshot() *Snapshot {
	size := 0
	for _, cb := range c.cubes {
		size += len(cb.units)
	}
	active := make([]Unit, size)
	for _, cb := range c.cubes {
		for _, u := range cb.units {
			active[u.Index] = Unit{
				ID:           u.Index,
				Kind:         cb.kind,
				Position:     u.Position,
				Movement:     cb.movement,
				Constraint:   cb.constraint,
				Neighborhood: u.Neighborhood,
			}
		}
	}
	return &Snapshot{active: active, frozen: c.area}
}

// Commit advances the collection by one tick. input overrides the movement of
// every cube of the player kind unless it is Idle.
func (c *Collection) Commit(input Movement) Report {
	c.report = Report{}

	c.advance()
	c.steer(input)
	c.absorbTouching()
	successors := c.block()
	competed := c.contest(successors)
	c.settle(successors, competed)
	c.move()
	c.compact()

	return c.report
}

func (c *Collection) advance() {
	for _, cb := range c.cubes {
		cb.balanced = false
		cb.movement, _ = cb.motion.Next()
		cb.constraint = Free
	}
}

func (c *Collection) steer(input Movement) {
	if input == Idle {
		return
	}
	for _, cb := range c.cubes {
		if cb.kind == c.player {
			cb.movement = input
		}
	}
}

func (c *Collection) unstable() []*cube {
	var out []*cube
	for _, cb := range c.cubes {
		if cb.unstable() {
			out = append(out, cb)
		}
	}
	return out
}

// connect groups cubes that each root can absorb, transitively through the
// neighbors reported by the given index.
func (c *Collection) connect(roots []*cube, neighbors func(*cube) []int) *DisjointSet {
	conn := NewDisjointSet(len(c.cubes))
	visit := make([]bool, len(c.cubes))
	for _, root := range roots {
		queue := []*cube{root}
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]
			for _, slot := range neighbors(current) {
				other := c.cubes[slot]
				if !root.absorbs(other) {
					continue
				}
				if !visit[slot] {
					visit[slot] = true
					queue = append(queue, other)
				}
				conn.Join(root.index, slot)
			}
		}
	}
	return conn
}

// fight runs the arena over a group, stopping as soon as all colors are seen.
func (c *Collection) fight(group []int) (ArenaResult, Kind) {
	var a Arena
	for _, slot := range group {
		if !a.Input(c.cubes[slot].kind) {
			break
		}
	}
	return a.Output()
}

// absorbTouching merges touching cubes of absorbing colors before anything moves.
func (c *Collection) absorbTouching() {
	unstable := c.unstable()
	territory := NewTerritory(unstable)
	conn := c.connect(unstable, territory.Neighbors)

	for _, group := range conn.Groups() {
		switch result, kind := c.fight(group); result {
		case ArenaHave:
			c.merge(group, kind)
		case ArenaDraw:
			c.balance(group)
		}
	}
}

func (c *Collection) balance(group []int) {
	for _, slot := range group {
		c.cubes[slot].balanced = true
	}
	c.report.Draws++
}

// block stops every cube whose way is barred and returns the successor graph
// of cubes following each other in the same direction.
func (c *Collection) block() *Digraph {
	conn := NewDisjointSet(len(c.cubes))
	successors := NewDigraph()
	territory := NewTerritory(c.cubes)

	var stopped []int
	for _, cb := range c.cubes {
		if !cb.moving() {
			continue
		}

		blocked := false
		for _, p := range cb.frontlines() {
			if c.area.Blocked(p) {
				blocked = true
				break
			}
		}

		if !blocked {
			neighbors := territory.InFront(cb)
			for _, slot := range neighbors {
				other := c.cubes[slot]
				if other.movement != cb.movement && !cb.links(other) {
					blocked = true
					break
				}
			}
			if !blocked {
				for _, slot := range neighbors {
					other := c.cubes[slot]
					if other.movement != cb.movement && cb.links(other) {
						blocked = true
						stopped = append(stopped, slot)
						conn.Join(cb.index, slot)
					}
				}
			}
			if !blocked {
				for _, slot := range neighbors {
					if c.cubes[slot].movement == cb.movement {
						successors.Add(slot, cb.index)
					}
				}
			}
		}

		if blocked {
			stopped = append(stopped, cb.index)
		}
	}

	for _, slot := range c.conduct(stopped, successors, Stop, conn) {
		c.cubes[slot].raise(Stop)
		c.report.Stopped++
	}
	c.link(conn)

	return successors
}

// contest locks cubes racing perpendicular rivals they cannot absorb into the
// same cell and returns the head-on pairs left for settle, dominant side first.
func (c *Collection) contest(successors *Digraph) [][2]int {
	conn := NewDisjointSet(len(c.cubes))
	conflict := make(Conflict)
	for _, cb := range c.cubes {
		if cb.constraint <= Lock && cb.moving() {
			conflict.Put(cb.index, cb.movement, cb.frontlines())
		}
	}

	locked := make(map[int]bool)
	var lockedOrder []int
	seen := make(map[[2]int]bool)
	var competed [][2]int
	for _, r := range conflict.Overlaps() {
		for i := range r {
			it := r[i]
			if it < 0 || locked[it] {
				continue
			}

			prev, next := r[(i+3)%4], r[(i+1)%4]
			if c.lockedBy(it, prev) || c.lockedBy(it, next) {
				locked[it] = true
				lockedOrder = append(lockedOrder, it)
				continue
			}

			oppo := r[(i+2)%4]
			if oppo < 0 {
				continue
			}
			var pair [2]int
			switch {
			case c.cubes[it].absorbs(c.cubes[oppo]):
				pair = [2]int{it, oppo}
			case c.cubes[oppo].absorbs(c.cubes[it]):
				pair = [2]int{oppo, it}
			default:
				pair = [2]int{min(it, oppo), max(it, oppo)}
			}
			if !seen[pair] {
				seen[pair] = true
				competed = append(competed, pair)
			}
		}
	}

	for _, slot := range c.conduct(lockedOrder, successors, Lock, conn) {
		c.cubes[slot].raise(Lock)
		c.report.Locked++
	}
	c.link(conn)

	return competed
}

// lockedBy reports whether a rival entering the same cell from a perpendicular
// side keeps cube it from moving.
func (c *Collection) lockedBy(it, rival int) bool {
	return rival >= 0 && !c.cubes[it].absorbs(c.cubes[rival])
}

// settle resolves cubes that would meet halfway through their move and the
// head-on pairs found by contest. Losers are slapped.
func (c *Collection) settle(successors *Digraph, competed [][2]int) {
	for _, cb := range c.cubes {
		cb.balanced = false
	}

	unstable := c.unstable()
	territory := NewQuarterTerritory(unstable)
	conn := c.connect(unstable, territory.Neighbors)

	losers := make(map[int]bool)
	var order []int
	lose := func(slot int) {
		if !losers[slot] {
			losers[slot] = true
			order = append(order, slot)
		}
	}

	for _, group := range conn.Groups() {
		switch result, kind := c.fight(group); result {
		case ArenaHave:
			var vote Agreement
			for _, slot := range group {
				cb := c.cubes[slot]
				if cb.kind == kind && cb.constraint < Slap {
					vote.Submit(cb.movement)
				}
			}
			m, ok := vote.Result()
			if !ok || m == Idle {
				continue
			}
			for _, slot := range group {
				cb := c.cubes[slot]
				if cb.kind != kind && cb.constraint < Slap && cb.movement != m {
					lose(slot)
				}
			}
		case ArenaDraw:
			c.balance(group)
		}
	}

	for _, pair := range competed {
		l, r := c.cubes[pair[0]], c.cubes[pair[1]]
		if l.constraint < Slap && r.constraint < Slap {
			lose(pair[1])
			if !l.absorbs(r) {
				lose(pair[0])
			}
		}
	}

	for _, slot := range c.conduct(order, successors, Lock, nil) {
		c.cubes[slot].raise(Slap)
		c.report.Slapped++
	}
}

// conduct spreads a constraint from the determined cubes to everything that
// follows them, skipping cubes already constrained beyond limit. When conn is
// set, linkable followers are joined to their leader. It returns the visited
// slots in visiting order.
func (c *Collection) conduct(determined []int, successors *Digraph, limit Constraint, conn *DisjointSet) []int {
	visit := make([]bool, len(c.cubes))
	var visited []int
	var queue []int
	for _, slot := range determined {
		if c.cubes[slot].constraint <= limit && !visit[slot] {
			visit[slot] = true
			visited = append(visited, slot)
			queue = append(queue, slot)
		}

		for len(queue) > 0 {
			precursor := queue[0]
			queue = queue[1:]
			for _, next := range successors.Children(precursor) {
				successor := c.cubes[next]
				if successor.constraint > limit {
					continue
				}
				if !visit[next] {
					visit[next] = true
					visited = append(visited, next)
					queue = append(queue, next)
				}
				if conn != nil && c.cubes[precursor].links(successor) {
					conn.Join(precursor, next)
				}
			}
		}
	}
	return visited
}

// link merges every group of same-kind cubes joined during a phase.
func (c *Collection) link(conn *DisjointSet) {
	for _, group := range conn.Groups() {
		var a Arena
		for _, slot := range group {
			a.Input(c.cubes[slot].kind)
		}
		if result, kind := a.Output(); result == ArenaPure {
			c.merge(group, kind)
		}
	}
}

// merge folds every cube of the group into the first slot as a cube of kind.
// The other slots are left empty and removed by compact.
func (c *Collection) merge(group []int, kind Kind) {
	var units []Cell
	var motions []Motion
	var vote Agreement
	constraint := Free
	for _, slot := range group {
		cb := c.cubes[slot]
		units = append(units, cb.units...)
		cb.units = nil
		if cb.kind != kind {
			continue
		}
		motions = append(motions, cb.motion)
		cb.motion = Still()
		vote.Submit(cb.movement)
		constraint = max(constraint, cb.constraint)
	}

	positions := make([]Point, len(units))
	for i, u := range units {
		positions[i] = u.Position
	}
	collision := NewSetCollision(positions...)
	for i := range units {
		units[i].Neighborhood = NeighborhoodOf(collision, units[i].Position)
	}

	movement, _ := vote.Result()
	survivor := newCube(group[0], kind, units, Team(motions...))
	survivor.movement = movement
	survivor.constraint = constraint
	c.cubes[group[0]] = survivor
	c.report.Merged++
}

func (c *Collection) move() {
	for _, cb := range c.cubes {
		if cb.constraint != Free || cb.movement == Idle {
			continue
		}
		step := cb.movement.Vector()
		for i := range cb.units {
			cb.units[i].Position = cb.units[i].Position.Add(step)
		}
	}
}

func (c *Collection) compact() {
	alive := c.cubes[:0]
	for _, cb := range c.cubes {
		if cb.alive() {
			alive = append(alive, cb)
		} else {
			c.report.Removed++
		}
	}
	for i := len(alive); i < len(c.cubes); i++ {
		c.cubes[i] = nil
	}
	c.cubes = alive
	for i, cb := range c.cubes {
		cb.index = i
	}
}
