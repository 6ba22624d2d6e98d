package core

import "slices"

// Cell is one grid cell owned by a cube. Index is the stable unit id assigned
// when the seed is loaded; it survives merges and compaction.
type Cell struct {
	Index        int
	Position     Point
	Neighborhood Neighborhood
}

// cube is a cluster of cells moving as one body. Its index is the slot in the
// owning Collection and is only meaningful within a single tick.
type cube struct {
	index      int
	kind       Kind
	units      []Cell
	motion     Motion
	contours   *Contours // shared, recomputed only when units change
	balanced   bool      // part of a three color draw this tick
	movement   Movement
	constraint Constraint
}

func newCube(index int, kind Kind, units []Cell, motion Motion) *cube {
	return &cube{
		index:    index,
		kind:     kind,
		units:    units,
		motion:   motion,
		contours: NewContours(units),
	}
}

func (c *cube) clone() *cube {
	cp := *c
	cp.units = slices.Clone(c.units)
	cp.motion = c.motion.Clone()
	return &cp
}

func (c *cube) alive() bool {
	return len(c.units) > 0
}

// unstable reports whether the cube may still take part in absorption.
func (c *cube) unstable() bool {
	return c.alive() && !c.balanced && c.kind != White
}

func (c *cube) moving() bool {
	return c.alive() && c.movement != Idle
}

func (c *cube) absorbs(other *cube) bool {
	return !c.balanced && !other.balanced && c.kind.Absorbs(other.kind)
}

func (c *cube) links(other *cube) bool {
	return c.kind.Links(other.kind)
}

func (c *cube) anchor() Point {
	return anchorOf(c.units)
}

// frontlines returns the cells the cube would enter this tick.
func (c *cube) frontlines() []Point {
	return c.contours.One(c.anchor(), c.movement)
}

// halfStep is the offset of the cube in a QuarterTerritory: one doubled-grid
// cell along its movement if it may still move, otherwise zero.
func (c *cube) halfStep() Point {
	if c.movement != Idle && c.constraint <= Slap {
		return c.movement.Vector()
	}
	return Point{}
}

func (c *cube) raise(to Constraint) {
	c.constraint = max(c.constraint, to)
}
