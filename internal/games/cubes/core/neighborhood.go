package core

// Adjacence is a single bit naming one of the eight cells around a point.
type Adjacence uint8

const (
	AdjLeftBottom  Adjacence = 0x01
	AdjBottom      Adjacence = 0x02
	AdjRightBottom Adjacence = 0x04
	AdjRight       Adjacence = 0x08
	AdjRightTop    Adjacence = 0x10
	AdjTop         Adjacence = 0x20
	AdjLeftTop     Adjacence = 0x40
	AdjLeft        Adjacence = 0x80
)

// Arounds lists the eight adjacences clockwise starting from the left.
var Arounds = [...]Adjacence{
	AdjLeft, AdjLeftTop, AdjTop, AdjRightTop,
	AdjRight, AdjRightBottom, AdjBottom, AdjLeftBottom,
}

// Offset returns the relative position of the adjacent cell.
func (a Adjacence) Offset() Point {
	switch a {
	case AdjLeft:
		return Point{X: -1}
	case AdjLeftTop:
		return Point{X: -1, Y: -1}
	case AdjTop:
		return Point{Y: -1}
	case AdjRightTop:
		return Point{X: 1, Y: -1}
	case AdjRight:
		return Point{X: 1}
	case AdjRightBottom:
		return Point{X: 1, Y: 1}
	case AdjBottom:
		return Point{Y: 1}
	case AdjLeftBottom:
		return Point{X: -1, Y: 1}
	default:
		return Point{}
	}
}

// Neighborhood records which of the eight surrounding cells were occupied
// when it was computed. It is a cached fact and is not kept up to date.
type Neighborhood uint8

// Cross is the neighborhood with all four orthogonal neighbors present.
const Cross = Neighborhood(AdjLeft | AdjTop | AdjRight | AdjBottom)

// Has reports whether the given neighbor is present.
func (n Neighborhood) Has(a Adjacence) bool {
	return uint8(n)&uint8(a) != 0
}

// With returns n with the given neighbor set.
func (n Neighborhood) With(a Adjacence) Neighborhood {
	return n | Neighborhood(a)
}

// Contains reports whether every neighbor of other is also in n.
func (n Neighborhood) Contains(other Neighborhood) bool {
	return n&other == other
}

// IsBorder reports whether a cell with this neighborhood lies on its cube's
// edge, that is, at least one orthogonal neighbor is missing.
func (n Neighborhood) IsBorder() bool {
	return !n.Contains(Cross)
}
