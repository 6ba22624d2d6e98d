package core

import "sort"

// ArenaResult is the outcome of pitting the colors of a connected group.
type ArenaResult uint8

const (
	ArenaNone ArenaResult = iota // no colored member
	ArenaPure                    // a single color
	ArenaHave                    // two colors, one absorbs the other
	ArenaDraw                    // all three colors, nobody wins
)

// Arena collects the colors present in a group of cubes.
type Arena struct {
	red, blue, green bool
}

// Input adds a kind. It returns false once all three colors have been seen,
// at which point further input cannot change the outcome. White is ignored.
func (a *Arena) Input(k Kind) bool {
	switch k {
	case Red:
		a.red = true
	case Blue:
		a.blue = true
	case Green:
		a.green = true
	}
	return !(a.red && a.blue && a.green)
}

// Output returns the outcome and, for ArenaPure and ArenaHave, the winning kind.
func (a Arena) Output() (ArenaResult, Kind) {
	switch {
	case a.red && a.blue && a.green:
		return ArenaDraw, White
	case a.red && a.green:
		return ArenaHave, Red
	case a.red && a.blue:
		return ArenaHave, Blue
	case a.blue && a.green:
		return ArenaHave, Green
	case a.red:
		return ArenaPure, Red
	case a.blue:
		return ArenaPure, Blue
	case a.green:
		return ArenaPure, Green
	default:
		return ArenaNone, White
	}
}

// race holds, for one contested cell, the slot of the cube entering it from
// each direction, or -1. Indices run Left, Down, Right, Up so that i+2 is the
// opposite side and i±1 are the perpendicular sides.
type race [4]int

var emptyRace = race{-1, -1, -1, -1}

func raceIndex(m Movement) int {
	switch m {
	case Left:
		return 0
	case Down:
		return 1
	case Right:
		return 2
	default:
		return 3
	}
}

// Conflict records which moving cubes want to enter each cell.
type Conflict map[Point]race

// Put registers the frontline of the cube in slot moving in direction m.
func (c Conflict) Put(slot int, m Movement, frontline []Point) {
	i := raceIndex(m)
	for _, p := range frontline {
		r, ok := c[p]
		if !ok {
			r = emptyRace
		}
		r[i] = slot
		c[p] = r
	}
}

// Overlaps returns the distinct races with at least two contenders in a
// stable order.
func (c Conflict) Overlaps() []race {
	seen := make(map[race]struct{})
	var races []race
	for _, r := range c {
		n := 0
		for _, slot := range r {
			if slot >= 0 {
				n++
			}
		}
		if n < 2 {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		races = append(races, r)
	}
	sort.Slice(races, func(i, j int) bool {
		for k := range races[i] {
			if races[i][k] != races[j][k] {
				return races[i][k] < races[j][k]
			}
		}
		return false
	})
	return races
}
