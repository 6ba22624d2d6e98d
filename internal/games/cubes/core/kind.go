package core

import (
	"fmt"
	"strings"
)

// Kind is the color of a cube.
type Kind uint8

const (
	White Kind = iota
	Green
	Blue
	Red
)

// Kinds lists every kind in declaration order.
var Kinds = [...]Kind{White, Green, Blue, Red}

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case White:
		return "white"
	case Green:
		return "green"
	case Blue:
		return "blue"
	case Red:
		return "red"
	default:
		return "unknown"
	}
}

// ParseKind parses a kind name (case-insensitive) or its single letter marker.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "w":
		return White, nil
	case "green", "g":
		return Green, nil
	case "blue", "b":
		return Blue, nil
	case "red", "r":
		return Red, nil
	}
	return White, fmt.Errorf("unknown kind %q", s)
}

// Absorbs reports whether k consumes other on contact.
// Green absorbs Blue, Blue absorbs Red, Red absorbs Green. White never takes part.
func (k Kind) Absorbs(other Kind) bool {
	switch k {
	case Green:
		return other == Blue
	case Blue:
		return other == Red
	case Red:
		return other == Green
	default:
		return false
	}
}

// Links reports whether two cubes of these kinds fuse into one rigid body
// when they block each other.
func (k Kind) Links(other Kind) bool {
	return k != White && k == other
}
