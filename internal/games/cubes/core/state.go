package core

// options configures a State.
type options struct {
	player Kind
}

// Option customizes a State.
type Option func(*options)

// WithPlayer sets the kind steered by player input. Defaults to Green.
func WithPlayer(k Kind) Option {
	return func(o *options) {
		o.player = k
	}
}

// frame is a collection together with its snapshot.
type frame struct {
	collection *Collection
	snapshot   *Snapshot
}

// State runs a level. It keeps the current frame and the one before it, so
// the latest tick can be recomputed with a different input.
type State struct {
	destinations []Point
	last         *frame
	base         frame
}

// New builds the initial state of a level.
func New(seed Seed, opts ...Option) *State {
	o := options{player: Green}
	for _, opt := range opts {
		opt(&o)
	}

	entries := make([]Entry, len(seed.Cubes))
	for i, c := range seed.Cubes {
		entries[i] = Entry{Kind: c.Kind, Body: c.Body, Motion: c.Motion()}
	}
	collection := NewCollection(max(seed.Size.Width, 1), max(seed.Size.Height, 1), o.player, entries)

	return &State{
		destinations: append([]Point(nil), seed.Destinations...),
		base:         frame{collection: collection, snapshot: collection.Snapshot()},
	}
}

// Width returns the grid width.
func (s *State) Width() int {
	return s.base.collection.Frozen().Width()
}

// Height returns the grid height.
func (s *State) Height() int {
	return s.base.collection.Frozen().Height()
}

// Snapshot returns the current snapshot.
func (s *State) Snapshot() *Snapshot {
	return s.base.snapshot
}

// Units returns every unit of the current snapshot.
func (s *State) Units() []Unit {
	return s.base.snapshot.Units()
}

// Report returns the summary of the tick that produced the current frame.
func (s *State) Report() Report {
	return s.base.collection.Report()
}

// Commit runs one tick with the given player input and returns what changed.
func (s *State) Commit(input Movement) []Diff {
	next := s.base.collection.Clone()
	next.Commit(input)

	prev := s.base
	s.base = frame{collection: next, snapshot: next.Snapshot()}
	s.last = &prev
	return prev.snapshot.Differ(s.base.snapshot)
}

// Remake recomputes the latest tick from the previous frame with a corrected
// input and returns the changes relative to the frame it replaces. Before the
// first Commit there is nothing to recompute and the result is empty.
func (s *State) Remake(input Movement) []Diff {
	if s.last == nil {
		return nil
	}
	next := s.last.collection.Clone()
	next.Commit(input)

	replaced := s.base.snapshot
	s.base = frame{collection: next, snapshot: next.Snapshot()}
	return replaced.Differ(s.base.snapshot)
}

// Goal is a destination and whether it is currently covered.
type Goal struct {
	Point   Point
	Covered bool
}

// Goals reports, for every destination, whether it is covered.
func (s *State) Goals() []Goal {
	goals := make([]Goal, len(s.destinations))
	for i, p := range s.destinations {
		goals[i] = Goal{Point: p, Covered: s.base.snapshot.Contains(p)}
	}
	return goals
}

// Progress returns the number of covered destinations and the total.
func (s *State) Progress() (covered, total int) {
	for _, g := range s.Goals() {
		if g.Covered {
			covered++
		}
	}
	return covered, len(s.destinations)
}

// Solved reports whether the level has destinations and all are covered.
func (s *State) Solved() bool {
	covered, total := s.Progress()
	return total > 0 && covered == total
}
