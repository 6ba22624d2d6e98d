package core

import "fmt"

// Point is a cell on the grid.
// X increases to the right, Y increases downward (screen coordinates).
type Point struct {
	X int
	Y int
}

// P is a convenience constructor for Point.
func P(x, y int) Point {
	return Point{X: x, Y: y}
}

// String returns a string representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Add returns the sum of two points.
func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns the difference of two points.
func (p Point) Sub(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// Scale multiplies both coordinates by n.
func (p Point) Scale(n int) Point {
	return Point{X: p.X * n, Y: p.Y * n}
}

// Step returns the neighboring point in the given direction.
// Idle returns p unchanged.
func (p Point) Step(m Movement) Point {
	return p.Add(m.Vector())
}
