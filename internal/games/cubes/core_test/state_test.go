package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/cube-arcade/internal/games/cubes/core"
)

// cornerSeed is a 3x3 level:
//
//	GW
//	B
//	x
func cornerSeed() core.Seed {
	return core.Seed{
		Info: core.Info{Title: "test", Author: "test"},
		Size: core.Size{Width: 3, Height: 3},
		Cubes: []core.CubeSeed{
			{Kind: core.Green, Body: []core.Point{core.P(0, 0)}},
			{Kind: core.Blue, Body: []core.Point{core.P(0, 1)}},
			{Kind: core.White, Body: []core.Point{core.P(1, 0)}},
		},
		Destinations: []core.Point{core.P(1, 0), core.P(0, 2)},
	}
}

func ptr[T any](v T) *T {
	return &v
}

func covered(s *core.State) int {
	n, _ := s.Progress()
	return n
}

func TestStateCornerScenario(t *testing.T) {
	s := core.New(cornerSeed())

	assert.Equal(t, []core.Unit{
		{ID: 0, Kind: core.Green, Position: core.P(0, 0)},
		{ID: 1, Kind: core.Blue, Position: core.P(0, 1)},
		{ID: 2, Kind: core.White, Position: core.P(1, 0)},
	}, s.Units())
	assert.Equal(t, 1, covered(s))

	diffs := s.Commit(core.Right)
	assert.Equal(t, []core.Diff{
		{
			ID:           0,
			Movement:     ptr(core.Right),
			Constraint:   ptr(core.Stop),
			Neighborhood: ptr(core.Neighborhood(core.AdjBottom)),
		},
		{
			ID:           1,
			Kind:         ptr(core.Green),
			Movement:     ptr(core.Right),
			Constraint:   ptr(core.Stop),
			Neighborhood: ptr(core.Neighborhood(core.AdjTop)),
		},
	}, diffs)
	assert.Equal(t, 1, covered(s))

	diffs = s.Commit(core.Down)
	assert.Equal(t, []core.Diff{
		{
			ID:         0,
			Position:   ptr(core.P(0, 1)),
			Movement:   ptr(core.Down),
			Constraint: ptr(core.Free),
		},
		{
			ID:         1,
			Position:   ptr(core.P(0, 2)),
			Movement:   ptr(core.Down),
			Constraint: ptr(core.Free),
		},
	}, diffs)
	assert.Equal(t, 2, covered(s))
	assert.True(t, s.Solved())
}

func TestStateLoopingScript(t *testing.T) {
	s := core.New(core.Seed{
		Size: core.Size{Width: 5, Height: 5},
		Cubes: []core.CubeSeed{{
			Kind:    core.Red,
			Body:    []core.Point{core.P(2, 2)},
			Command: &core.Command{Loop: true, Steps: []core.Step{{Movement: core.Left, Count: 1}, {Movement: core.Up, Count: 1}}},
		}},
	})

	var moves []core.Movement
	var path []core.Point
	for range 4 {
		s.Commit(core.Idle)
		u := s.Units()[0]
		moves = append(moves, u.Movement)
		path = append(path, u.Position)
	}
	assert.Equal(t, []core.Movement{core.Left, core.Up, core.Left, core.Up}, moves)
	assert.Equal(t, []core.Point{core.P(1, 2), core.P(1, 1), core.P(0, 1), core.P(0, 0)}, path)

	s.Commit(core.Idle)
	u := s.Units()[0]
	assert.Equal(t, core.Left, u.Movement, "the loop keeps going after hitting the corner")
	assert.Equal(t, core.Stop, u.Constraint)
	assert.Equal(t, core.P(0, 0), u.Position)
}

func TestStateThreeColorDraw(t *testing.T) {
	s := core.New(core.Seed{
		Size: core.Size{Width: 3, Height: 3},
		Cubes: []core.CubeSeed{
			{Kind: core.Red, Body: []core.Point{core.P(0, 0)}},
			{Kind: core.Blue, Body: []core.Point{core.P(1, 0)}},
			{Kind: core.Green, Body: []core.Point{core.P(0, 1)}},
		},
	})

	assert.Empty(t, s.Commit(core.Idle))
	assert.Equal(t, 2, s.Report().Draws)
	kinds := []core.Kind{}
	for _, u := range s.Snapshot().Active() {
		kinds = append(kinds, u.Kind)
	}
	assert.Equal(t, []core.Kind{core.Red, core.Blue, core.Green}, kinds)
}

func TestStateRemake(t *testing.T) {
	s := core.New(cornerSeed())
	assert.Empty(t, s.Remake(core.Right), "nothing to remake before the first commit")

	s.Commit(core.Idle)
	idle := s.Snapshot()

	diffs := s.Remake(core.Right)
	require.NotEmpty(t, diffs)

	fresh := core.New(cornerSeed())
	fresh.Commit(core.Right)
	assert.Equal(t, fresh.Snapshot().Digest(), s.Snapshot().Digest())

	view := idle.Active()
	for _, d := range diffs {
		d.Apply(&view[d.ID])
	}
	assert.Equal(t, s.Snapshot().Active(), view)

	again := s.Remake(core.Right)
	assert.Empty(t, again, "remaking with the same input changes nothing")
	assert.Equal(t, fresh.Snapshot().Digest(), s.Snapshot().Digest())
}

func TestStateGoals(t *testing.T) {
	seed := cornerSeed()
	seed.Destinations = append(seed.Destinations, core.P(7, 7))
	s := core.New(seed)

	assert.Equal(t, []core.Goal{
		{Point: core.P(1, 0), Covered: true},
		{Point: core.P(0, 2), Covered: false},
		{Point: core.P(7, 7), Covered: false},
	}, s.Goals())
	assert.False(t, s.Solved())

	empty := core.New(core.Seed{})
	assert.Equal(t, 1, empty.Width())
	assert.Equal(t, 1, empty.Height())
	assert.False(t, empty.Solved())
}

func TestStatePlayerOption(t *testing.T) {
	s := core.New(cornerSeed(), core.WithPlayer(core.Blue))
	s.Commit(core.Down)

	units := s.Snapshot().Active()
	assert.Equal(t, core.Green, units[1].Kind, "green still absorbs blue")
	assert.Equal(t, core.Idle, units[0].Movement, "green follows its own motion")
}
