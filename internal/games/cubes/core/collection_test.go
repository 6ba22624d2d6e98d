package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func still(kind Kind, body ...Point) Entry {
	return Entry{Kind: kind, Body: body, Motion: Still()}
}

func scripted(kind Kind, loop bool, steps []Step, body ...Point) Entry {
	return Entry{Kind: kind, Body: body, Motion: Script(loop, steps)}
}

func unitsByID(c *Collection) []Unit {
	return c.Snapshot().Active()
}

func TestCollectionSplitsBackground(t *testing.T) {
	c := NewCollection(4, 4, Green, []Entry{
		still(Green, P(0, 0)),
		still(White, P(1, 0), P(2, 0)),
		scripted(White, true, []Step{{Down, 1}}, P(3, 0)),
		still(Red, P(0, 3), P(1, 3)),
	})

	require.Equal(t, 3, c.Len(), "scripted white stays active")
	assert.Equal(t, 2, c.Frozen().Len())

	units := unitsByID(c)
	require.Len(t, units, 4)
	assert.Equal(t, P(3, 0), units[1].Position)
	assert.Equal(t, White, units[1].Kind)
	assert.Equal(t, Neighborhood(AdjRight), units[2].Neighborhood)
}

func TestCollectionThreeColorDraw(t *testing.T) {
	c := NewCollection(3, 3, Green, []Entry{
		still(Red, P(0, 0)),
		still(Blue, P(1, 0)),
		still(Green, P(0, 1)),
	})

	report := c.Commit(Idle)

	require.Equal(t, 3, c.Len())
	assert.Equal(t, 2, report.Draws, "drawn before and after the move")
	assert.Zero(t, report.Merged)
	for _, cb := range c.cubes {
		assert.True(t, cb.balanced)
	}
	assert.Equal(t, []Kind{Red, Blue, Green}, []Kind{c.cubes[0].kind, c.cubes[1].kind, c.cubes[2].kind})
}

func TestCollectionAbsorbOnContact(t *testing.T) {
	c := NewCollection(2, 1, Green, []Entry{
		still(Green, P(0, 0)),
		still(Blue, P(1, 0)),
	})

	report := c.Commit(Idle)

	assert.Equal(t, 1, report.Merged)
	assert.Equal(t, 1, report.Removed)
	require.Equal(t, 1, c.Len())

	units := unitsByID(c)
	assert.Equal(t, Green, units[0].Kind)
	assert.Equal(t, Green, units[1].Kind)
	assert.Equal(t, Neighborhood(AdjRight), units[0].Neighborhood)
	assert.Equal(t, Neighborhood(AdjLeft), units[1].Neighborhood)
}

func TestCollectionFollowersStopTogether(t *testing.T) {
	right := []Step{{Right, 1}}
	c := NewCollection(3, 1, Green, []Entry{
		scripted(White, true, right, P(0, 0)),
		scripted(White, true, right, P(1, 0)),
	})

	c.Commit(Idle)
	units := unitsByID(c)
	assert.Equal(t, P(1, 0), units[0].Position, "follower moves into the vacated cell")
	assert.Equal(t, P(2, 0), units[1].Position)
	assert.Equal(t, Free, units[0].Constraint)

	report := c.Commit(Idle)
	units = unitsByID(c)
	assert.Equal(t, 2, report.Stopped)
	assert.Equal(t, Stop, units[0].Constraint)
	assert.Equal(t, Stop, units[1].Constraint)
	assert.Equal(t, P(1, 0), units[0].Position)
	assert.Equal(t, P(2, 0), units[1].Position)
}

func TestCollectionPerpendicularRaceLocks(t *testing.T) {
	c := NewCollection(3, 3, Green, []Entry{
		scripted(White, true, []Step{{Right, 1}}, P(0, 1)),
		scripted(White, true, []Step{{Down, 1}}, P(1, 0)),
	})

	report := c.Commit(Idle)

	assert.Equal(t, 2, report.Locked)
	units := unitsByID(c)
	assert.Equal(t, Lock, units[0].Constraint)
	assert.Equal(t, Lock, units[1].Constraint)
	assert.Equal(t, P(0, 1), units[0].Position)
	assert.Equal(t, P(1, 0), units[1].Position)
}

func TestCollectionHeadOnWhitesSlap(t *testing.T) {
	c := NewCollection(3, 1, Green, []Entry{
		scripted(White, true, []Step{{Right, 1}}, P(0, 0)),
		scripted(White, true, []Step{{Left, 1}}, P(2, 0)),
	})

	report := c.Commit(Idle)

	assert.Equal(t, 2, report.Slapped)
	for _, u := range unitsByID(c) {
		assert.Equal(t, Slap, u.Constraint)
	}
}

func TestCollectionHeadOnAbsorber(t *testing.T) {
	c := NewCollection(3, 1, Green, []Entry{
		still(Green, P(0, 0)),
		scripted(Blue, false, []Step{{Left, 1}}, P(2, 0)),
	})

	c.Commit(Right)
	units := unitsByID(c)
	assert.Equal(t, P(1, 0), units[0].Position, "absorber takes the cell")
	assert.Equal(t, Free, units[0].Constraint)
	assert.Equal(t, P(2, 0), units[1].Position)
	assert.Equal(t, Slap, units[1].Constraint)
	assert.Equal(t, Left, units[1].Movement)

	report := c.Commit(Idle)
	assert.Equal(t, 1, report.Merged)
	require.Equal(t, 1, c.Len())
	units = unitsByID(c)
	assert.Equal(t, Green, units[1].Kind)
	assert.Equal(t, Idle, units[1].Movement)
}

func TestCollectionHalfwayContactSlapsLoser(t *testing.T) {
	// The cubes never share a target cell; they only touch halfway
	// through the move, diagonally adjacent before it.
	c := NewCollection(2, 2, Green, []Entry{
		still(Green, P(0, 0)),
		scripted(Blue, false, []Step{{Up, 1}}, P(1, 1)),
	})

	report := c.Commit(Down)
	assert.Equal(t, 1, report.Slapped)

	units := unitsByID(c)
	require.Len(t, units, 2)
	assert.Equal(t, Green, units[0].Kind)
	assert.Equal(t, P(0, 1), units[0].Position)
	assert.Equal(t, Free, units[0].Constraint)
	assert.Equal(t, Blue, units[1].Kind)
	assert.Equal(t, P(1, 1), units[1].Position)
	assert.Equal(t, Slap, units[1].Constraint)
}

func TestCollectionLinksBlockedSameKind(t *testing.T) {
	c := NewCollection(3, 2, Green, []Entry{
		scripted(Red, true, []Step{{Right, 1}}, P(0, 0)),
		still(Red, P(1, 0)),
	})

	report := c.Commit(Idle)
	assert.Equal(t, 1, report.Merged)
	require.Equal(t, 1, c.Len())
	units := unitsByID(c)
	assert.Equal(t, Stop, units[0].Constraint)
	assert.Equal(t, Idle, units[0].Movement, "members disagreed on the movement")
	assert.Equal(t, P(0, 0), units[0].Position)

	c.Commit(Idle)
	units = unitsByID(c)
	assert.Equal(t, P(1, 0), units[0].Position, "merged cube inherits the script")
	assert.Equal(t, P(2, 0), units[1].Position)
	assert.Equal(t, Right, units[1].Movement)
}

func TestCollectionPlayerKind(t *testing.T) {
	c := NewCollection(3, 3, Red, []Entry{
		still(Red, P(0, 0)),
		still(Green, P(2, 2)),
	})

	c.Commit(Down)
	units := unitsByID(c)
	assert.Equal(t, P(0, 1), units[0].Position)
	assert.Equal(t, P(2, 2), units[1].Position)
	assert.Equal(t, Idle, units[1].Movement)
}

func TestCollectionCloneIsDeep(t *testing.T) {
	c := NewCollection(3, 1, Green, []Entry{
		scripted(Blue, true, []Step{{Right, 1}}, P(0, 0)),
	})
	before := c.Snapshot().Digest()

	next := c.Clone()
	next.Commit(Idle)

	assert.Equal(t, before, c.Snapshot().Digest())
	assert.NotEqual(t, before, next.Snapshot().Digest())
	assert.Same(t, c.Frozen(), next.Frozen())
}
