package core

import "sort"

// DisjointSet is a union-find over cube slots. Slots that were never joined
// do not appear in any group.
type DisjointSet struct {
	parent  []int // -1 for untouched slots
	touched []int
}

// NewDisjointSet returns a set over slots [0, size).
func NewDisjointSet(size int) *DisjointSet {
	parent := make([]int, size)
	for i := range parent {
		parent[i] = -1
	}
	return &DisjointSet{parent: parent}
}

// Join puts a and b into the same group. Out-of-range or equal slots are ignored.
func (d *DisjointSet) Join(a, b int) {
	if a == b || a < 0 || b < 0 || a >= len(d.parent) || b >= len(d.parent) {
		return
	}
	ra, rb := d.find(a), d.find(b)
	if ra != rb {
		d.parent[ra] = rb
	}
}

func (d *DisjointSet) touch(x int) {
	if d.parent[x] < 0 {
		d.parent[x] = x
		d.touched = append(d.touched, x)
	}
}

func (d *DisjointSet) find(x int) int {
	d.touch(x)
	root := x
	for d.parent[root] != root {
		root = d.parent[root]
	}
	for x != root {
		next := d.parent[x]
		d.parent[x] = root
		x = next
	}
	return root
}

// Groups returns every connected group with at least two slots.
// Members are ascending and groups are ordered by their smallest member.
func (d *DisjointSet) Groups() [][]int {
	byRoot := make(map[int][]int)
	for _, x := range d.touched {
		r := d.find(x)
		byRoot[r] = append(byRoot[r], x)
	}
	groups := make([][]int, 0, len(byRoot))
	for _, g := range byRoot {
		sort.Ints(g)
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i][0] < groups[j][0] })
	return groups
}
