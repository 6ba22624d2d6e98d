package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/cube-arcade/internal/games/cubes/core"
)

// busySeed has a player cube, a blue it can absorb, a shuttling white block and
// a red patrolling the bottom row behind a wall.
func busySeed() core.Seed {
	wall := make([]core.Point, 6)
	for x := range wall {
		wall[x] = core.P(x, 3)
	}
	return core.Seed{
		Size: core.Size{Width: 6, Height: 5},
		Cubes: []core.CubeSeed{
			{Kind: core.Green, Body: []core.Point{core.P(0, 0)}},
			{Kind: core.Blue, Body: []core.Point{core.P(0, 2), core.P(1, 2)}},
			{
				Kind:    core.White,
				Body:    []core.Point{core.P(5, 0)},
				Command: &core.Command{Loop: true, Steps: []core.Step{{Movement: core.Down, Count: 2}, {Movement: core.Up, Count: 2}}},
			},
			{Kind: core.White, Body: wall},
			{
				Kind:    core.Red,
				Body:    []core.Point{core.P(0, 4)},
				Command: &core.Command{Loop: true, Steps: []core.Step{{Movement: core.Right, Count: 3}, {Movement: core.Left, Count: 3}}},
			},
		},
		Destinations: []core.Point{core.P(3, 4)},
	}
}

var busyInputs = []core.Movement{
	core.Right, core.Right, core.Down, core.Idle, core.Left,
	core.Up, core.Right, core.Right, core.Right, core.Down,
}

func runBusy(t *testing.T, ticks int, check func(prev, next *core.Snapshot, diffs []core.Diff)) {
	t.Helper()
	s := core.New(busySeed())
	for i := range ticks {
		prev := s.Snapshot()
		diffs := s.Commit(busyInputs[i%len(busyInputs)])
		check(prev, s.Snapshot(), diffs)
	}
}

func TestNoOverlap(t *testing.T) {
	runBusy(t, 40, func(_, next *core.Snapshot, _ []core.Diff) {
		active := next.Active()
		background := make(map[core.Point]bool)
		for _, u := range next.Units()[len(active):] {
			background[u.Position] = true
		}

		seen := make(map[core.Point]int)
		for _, u := range active {
			other, dup := seen[u.Position]
			require.False(t, dup, "units %d and %d share %s", other, u.ID, u.Position)
			seen[u.Position] = u.ID
			require.False(t, background[u.Position], "unit %d inside the background", u.ID)
			require.True(t, u.Position.X >= 0 && u.Position.X < 6 && u.Position.Y >= 0 && u.Position.Y < 5,
				"unit %d left the grid: %s", u.ID, u.Position)
		}
	})
}

func TestUnitConservation(t *testing.T) {
	runBusy(t, 40, func(prev, next *core.Snapshot, _ []core.Diff) {
		before, after := prev.Active(), next.Active()
		require.Len(t, after, len(before))
		for i, u := range after {
			require.Equal(t, i, u.ID)
		}
	})
}

func TestUnitsIdempotent(t *testing.T) {
	runBusy(t, 10, func(_, next *core.Snapshot, _ []core.Diff) {
		assert.Equal(t, next.Units(), next.Units())
	})
}

func TestDiffRoundTrip(t *testing.T) {
	runBusy(t, 40, func(prev, next *core.Snapshot, diffs []core.Diff) {
		view := prev.Active()
		for _, d := range diffs {
			d.Apply(&view[d.ID])
		}
		require.Equal(t, next.Active(), view)
	})
}

func TestDeterminism(t *testing.T) {
	a := core.New(busySeed())
	b := core.New(busySeed())
	for i := range 30 {
		in := busyInputs[i%len(busyInputs)]
		a.Commit(in)
		b.Commit(in)
		require.Equal(t, a.Snapshot().Digest(), b.Snapshot().Digest(), "tick %d", i)
	}
}

func TestDifferRequiresSameGeneration(t *testing.T) {
	a := core.New(busySeed())
	b := core.New(busySeed())
	b.Commit(core.Right)

	assert.Empty(t, a.Snapshot().Differ(b.Snapshot()), "different backgrounds")
	assert.Empty(t, a.Snapshot().Differ(a.Snapshot()), "same snapshot")
}
