package core

// Digraph records which cubes depend on another cube moving out of their way.
// An edge from -> to means to is directly behind from, travelling the same direction.
type Digraph struct {
	children map[int][]int
	edges    map[[2]int]struct{}
}

// NewDigraph returns an empty graph.
func NewDigraph() *Digraph {
	return &Digraph{
		children: make(map[int][]int),
		edges:    make(map[[2]int]struct{}),
	}
}

// Add inserts the edge from -> to. Duplicate edges are ignored.
func (g *Digraph) Add(from, to int) {
	key := [2]int{from, to}
	if _, ok := g.edges[key]; ok {
		return
	}
	g.edges[key] = struct{}{}
	g.children[from] = append(g.children[from], to)
}

// Children returns the direct dependents of from in insertion order.
func (g *Digraph) Children(from int) []int {
	return g.children[from]
}

// Len returns the number of edges.
func (g *Digraph) Len() int {
	return len(g.edges)
}
