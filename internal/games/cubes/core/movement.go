package core

import (
	"fmt"
	"strings"
)

// Movement is the direction a cube travels during one tick.
// The zero value Idle means the cube does not move.
type Movement uint8

const (
	Idle Movement = iota
	Left
	Down
	Up
	Right
)

// Movements lists the four directions in contour bucket order.
var Movements = [...]Movement{Left, Down, Up, Right}

// String returns the name of the movement.
func (m Movement) String() string {
	switch m {
	case Idle:
		return "Idle"
	case Left:
		return "Left"
	case Down:
		return "Down"
	case Up:
		return "Up"
	case Right:
		return "Right"
	default:
		return "Unknown"
	}
}

// ParseMovement parses a movement name as returned by String, ignoring case.
func ParseMovement(s string) (Movement, error) {
	for _, m := range [...]Movement{Idle, Left, Down, Up, Right} {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return Idle, fmt.Errorf("unknown movement %q", s)
}

// Vector returns the unit offset for one step in this direction.
// Up decreases Y, Down increases Y (screen coordinates).
func (m Movement) Vector() Point {
	switch m {
	case Left:
		return Point{X: -1}
	case Down:
		return Point{Y: 1}
	case Up:
		return Point{Y: -1}
	case Right:
		return Point{X: 1}
	default:
		return Point{}
	}
}

// Opposite returns the reverse direction. Idle stays Idle.
func (m Movement) Opposite() Movement {
	switch m {
	case Left:
		return Right
	case Down:
		return Up
	case Up:
		return Down
	case Right:
		return Left
	default:
		return Idle
	}
}

// adjacence returns the neighborhood bit facing this direction.
func (m Movement) adjacence() Adjacence {
	switch m {
	case Left:
		return AdjLeft
	case Down:
		return AdjBottom
	case Up:
		return AdjTop
	case Right:
		return AdjRight
	default:
		return 0
	}
}

// Constraint restricts whether a cube may move during the current tick.
// Constraints are ordered by severity and only ever escalate within a tick.
type Constraint uint8

const (
	Free Constraint = iota // cube moves
	Slap                   // lost a contest; shown as a bump
	Lock                   // contested cell could not be resolved
	Stop                   // blocked by the background or a neighbor
)

// String returns the name of the constraint.
func (c Constraint) String() string {
	switch c {
	case Free:
		return "Free"
	case Slap:
		return "Slap"
	case Lock:
		return "Lock"
	case Stop:
		return "Stop"
	default:
		return "Unknown"
	}
}
