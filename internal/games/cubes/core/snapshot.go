package core

import (
	"fmt"
	"hash/fnv"
)

// Unit is the externally visible state of one cell.
type Unit struct {
	ID           int
	Kind         Kind
	Position     Point
	Movement     Movement
	Constraint   Constraint
	Neighborhood Neighborhood
}

// Diff lists the fields of a unit that changed between two snapshots.
// Nil fields are unchanged.
type Diff struct {
	ID           int
	Kind         *Kind
	Position     *Point
	Movement     *Movement
	Constraint   *Constraint
	Neighborhood *Neighborhood
}

// Apply copies the changed fields onto u.
func (d Diff) Apply(u *Unit) {
	if d.Kind != nil {
		u.Kind = *d.Kind
	}
	if d.Position != nil {
		u.Position = *d.Position
	}
	if d.Movement != nil {
		u.Movement = *d.Movement
	}
	if d.Constraint != nil {
		u.Constraint = *d.Constraint
	}
	if d.Neighborhood != nil {
		u.Neighborhood = *d.Neighborhood
	}
}

// Snapshot is an immutable view of a Collection at one instant.
type Snapshot struct {
	active []Unit // indexed by unit id
	frozen *Frozen
}

// Contains reports whether p is covered by a unit or by the background.
// Cells outside the grid are never covered.
func (s *Snapshot) Contains(p Point) bool {
	for _, u := range s.active {
		if u.Position == p {
			return true
		}
	}
	return s.frozen.Occupied(p)
}

// Active returns a copy of the units that belong to cubes, indexed by id.
func (s *Snapshot) Active() []Unit {
	return append([]Unit(nil), s.active...)
}

// Len returns the number of units, background included.
func (s *Snapshot) Len() int {
	return len(s.active) + s.frozen.Len()
}

// Units returns every unit: active ones by id, then background cells with ids
// continuing after them as idle White units.
func (s *Snapshot) Units() []Unit {
	units := make([]Unit, 0, s.Len())
	units = append(units, s.active...)
	for i, f := range s.frozen.Units() {
		units = append(units, Unit{
			ID:           len(s.active) + i,
			Kind:         White,
			Position:     f.Position,
			Neighborhood: f.Neighborhood,
		})
	}
	return units
}

// Differ returns the changes from s to other. Snapshots are only comparable
// when they share a background and hold the same number of active units;
// otherwise, or when other is s itself, the result is empty.
func (s *Snapshot) Differ(other *Snapshot) []Diff {
	if s == other || s.frozen != other.frozen || len(s.active) != len(other.active) {
		return nil
	}
	var diffs []Diff
	for i := range s.active {
		l, r := s.active[i], other.active[i]
		if l == r {
			continue
		}
		d := Diff{ID: r.ID}
		if l.Kind != r.Kind {
			d.Kind = &r.Kind
		}
		if l.Position != r.Position {
			d.Position = &r.Position
		}
		if l.Movement != r.Movement {
			d.Movement = &r.Movement
		}
		if l.Constraint != r.Constraint {
			d.Constraint = &r.Constraint
		}
		if l.Neighborhood != r.Neighborhood {
			d.Neighborhood = &r.Neighborhood
		}
		diffs = append(diffs, d)
	}
	return diffs
}

// Digest returns a hash of the active units for determinism checks.
func (s *Snapshot) Digest() uint64 {
	h := fnv.New64a()
	for _, u := range s.active {
		fmt.Fprintf(h, "%d:%d:%d,%d:%d:%d:%d;",
			u.ID, u.Kind, u.Position.X, u.Position.Y, u.Movement, u.Constraint, u.Neighborhood)
	}
	return h.Sum64()
}
