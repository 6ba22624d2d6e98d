package cubes

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	platformcore "github.com/vovakirdan/cube-arcade/internal/core"
	"github.com/vovakirdan/cube-arcade/internal/games/cubes/core"
	"github.com/vovakirdan/cube-arcade/internal/games/cubes/levels"
	"github.com/vovakirdan/cube-arcade/internal/registry"
	"github.com/vovakirdan/cube-arcade/internal/replay"
)

// corridor returns a one-row level "G" followed by gap empty cells and a goal.
func corridor(id string, gap int) levels.Level {
	width := gap + 2
	return levels.Level{
		ID:    id,
		Title: strings.ToUpper(id),
		Seed: core.Seed{
			Info:         core.Info{Title: id},
			Size:         core.Size{Width: width, Height: 1},
			Cubes:        []core.CubeSeed{{Kind: core.Green, Body: []core.Point{core.P(0, 0)}}},
			Destinations: []core.Point{core.P(width-1, 0)},
		},
	}
}

func frame(actions ...platformcore.Action) platformcore.InputFrame {
	f := platformcore.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func newGame(t *testing.T, opts ...Option) *Game {
	t.Helper()
	opts = append([]Option{
		WithLevels([]levels.Level{corridor("a", 2), corridor("b", 1)}),
		WithTiming(2, 1),
	}, opts...)
	g := New(opts...)
	g.Reset(platformcore.DefaultConfig())
	return g
}

func playerX(g *Game) int {
	for _, u := range g.Engine().Snapshot().Active() {
		if u.Kind == core.Green {
			return u.Position.X
		}
	}
	return -1
}

type fakeRecorder struct{ records []replay.Record }

func (r *fakeRecorder) Record(rec replay.Record) error {
	r.records = append(r.records, rec)
	return nil
}

type fakeObserver struct {
	ticks  int
	solved []string
}

func (o *fakeObserver) TickCommitted(string, core.Report, time.Duration) { o.ticks++ }
func (o *fakeObserver) LevelSolved(level string) { o.solved = append(o.solved, level) }

func TestGameCommitsEveryStepFrames(t *testing.T) {
	g := newGame(t)

	res := g.Step(frame(platformcore.ActionRight))
	assert.True(t, res.Has(platformcore.EventLevelStarted))
	assert.Equal(t, 0, res.State.Ticks, "input is queued until the step frame")
	assert.Equal(t, 0, playerX(g))

	res = g.Step(frame())
	assert.Equal(t, 1, res.State.Ticks)
	assert.Equal(t, 1, res.State.Moves)
	assert.Equal(t, 1, playerX(g))
	assert.Equal(t, "a", res.State.Level)
}

func TestGameLatestDirectionWins(t *testing.T) {
	g := newGame(t)

	g.Step(frame(platformcore.ActionLeft, platformcore.ActionRight))
	g.Step(frame())
	assert.Equal(t, 1, playerX(g))
}

func TestGameRemakesIdleTick(t *testing.T) {
	g := newGame(t)

	g.Step(frame())
	res := g.Step(frame())
	require.Equal(t, 1, res.State.Ticks)
	require.Equal(t, 0, playerX(g))

	res = g.Step(frame(platformcore.ActionRight))
	assert.Equal(t, 1, res.State.Ticks, "a remake does not add a tick")
	assert.Equal(t, 1, res.State.Moves)
	assert.Equal(t, 1, playerX(g))
}

func TestGameRemakeWindowExpires(t *testing.T) {
	g := newGame(t)

	g.Step(frame())
	g.Step(frame())
	g.Step(frame())
	res := g.Step(frame(platformcore.ActionRight))
	assert.Equal(t, 2, res.State.Ticks)
	assert.Equal(t, 1, playerX(g))
}

func TestGameSolveAndAdvance(t *testing.T) {
	obs := &fakeObserver{}
	g := newGame(t, WithObserver(obs))

	var res platformcore.StepResult
	for i := 0; i < 3; i++ {
		g.Step(frame(platformcore.ActionRight))
		res = g.Step(frame())
	}
	require.True(t, res.State.Solved)
	assert.True(t, res.Has(platformcore.EventLevelSolved))
	assert.False(t, res.State.GameOver)
	assert.Equal(t, 1, res.State.Score)
	assert.Equal(t, []string{"a"}, obs.solved)
	assert.Equal(t, 3, obs.ticks)

	// Solved levels wait for confirmation.
	res = g.Step(frame(platformcore.ActionRight))
	assert.Equal(t, 3, res.State.Ticks)

	res = g.Step(frame(platformcore.ActionConfirm))
	assert.Equal(t, "b", res.State.Level)
	assert.Equal(t, 0, res.State.Ticks)
	assert.False(t, res.State.Solved)

	for i := 0; i < 2; i++ {
		g.Step(frame(platformcore.ActionRight))
		res = g.Step(frame())
	}
	assert.True(t, res.State.GameOver)
	assert.True(t, res.Has(platformcore.EventGameOver))
	assert.Equal(t, 2, res.State.Score)

	res = g.Step(frame(platformcore.ActionRestart))
	assert.False(t, res.State.GameOver)
	assert.Equal(t, "a", res.State.Level)
}

func TestGameReportsEventsOnce(t *testing.T) {
	g := newGame(t)

	res := g.Step(frame())
	assert.True(t, res.Has(platformcore.EventLevelStarted), "reset event reaches the first frame")
	res = g.Step(frame())
	assert.False(t, res.Has(platformcore.EventLevelStarted))

	solvedFrames := 0
	for i := 0; i < 8; i++ {
		res = g.Step(frame(platformcore.ActionRight))
		if res.Has(platformcore.EventLevelSolved) {
			solvedFrames++
		}
		res = g.Step(frame())
		if res.Has(platformcore.EventLevelSolved) {
			solvedFrames++
		}
	}
	require.True(t, res.State.Solved)
	assert.Equal(t, 1, solvedFrames)

	res = g.Step(frame(platformcore.ActionConfirm))
	assert.True(t, res.Has(platformcore.EventLevelStarted))
	res = g.Step(frame())
	assert.False(t, res.Has(platformcore.EventLevelStarted))
}

func TestGamePauseAndRestart(t *testing.T) {
	g := newGame(t)

	g.Step(frame(platformcore.ActionRight))
	g.Step(frame())
	require.Equal(t, 1, playerX(g))

	res := g.Step(frame(platformcore.ActionPause))
	assert.True(t, res.State.Paused)
	for i := 0; i < 4; i++ {
		res = g.Step(frame(platformcore.ActionRight))
	}
	assert.Equal(t, 1, res.State.Ticks)

	res = g.Step(frame(platformcore.ActionPause))
	assert.False(t, res.State.Paused)

	res = g.Step(frame(platformcore.ActionRestart))
	assert.Equal(t, 0, res.State.Ticks)
	assert.Equal(t, 0, res.State.Moves)
	assert.Equal(t, 0, playerX(g))
}

func TestGameStartLevel(t *testing.T) {
	g := newGame(t, WithStartLevel("b"))
	assert.Equal(t, "b", g.State().Level)

	g = newGame(t, WithStartLevel("missing"))
	assert.Equal(t, "a", g.State().Level)
}

func TestGameRecordingVerifies(t *testing.T) {
	rec := &fakeRecorder{}
	g := newGame(t, WithRecorder(rec))

	g.Step(frame())
	g.Step(frame())
	g.Step(frame(platformcore.ActionRight)) // remake
	g.Step(frame(platformcore.ActionRight))
	g.Step(frame())

	require.Len(t, rec.records, 3)
	assert.True(t, rec.records[1].Remake)
	assert.Equal(t, "Right", rec.records[1].Input)

	lvl, _ := g.Level()
	div, err := replay.Verify(lvl.Seed, rec.records)
	require.NoError(t, err)
	assert.Nil(t, div)
}

func TestGameReload(t *testing.T) {
	g := newGame(t)
	g.Step(frame(platformcore.ActionRight))
	g.Step(frame())

	assert.False(t, g.Reload(corridor("zzz", 1)))
	require.True(t, g.Reload(corridor("a", 5)))

	res := g.Step(frame())
	assert.True(t, res.Has(platformcore.EventLevelReloaded))
	assert.Equal(t, 0, res.State.Ticks)
	assert.Equal(t, 7, g.Engine().Width())
}

func TestGameWithoutLevels(t *testing.T) {
	g := New(WithLevels([]levels.Level{}))
	g.Reset(platformcore.DefaultConfig())

	res := g.Step(frame(platformcore.ActionRight))
	assert.Nil(t, g.Engine())
	assert.False(t, res.State.GameOver)

	s := platformcore.NewScreen(40, 10)
	g.Render(s)
	assert.Contains(t, s.String(), "No levels found")
}

func TestGameStuckWithoutPlayer(t *testing.T) {
	lvl := corridor("a", 2)
	lvl.Seed.Cubes[0].Kind = core.Blue
	g := New(WithLevels([]levels.Level{lvl}))
	g.Reset(platformcore.DefaultConfig())

	s := platformcore.NewScreen(60, 12)
	g.Render(s)
	assert.Contains(t, s.String(), "No cube left to steer")
}

func TestGameRender(t *testing.T) {
	g := newGame(t)
	s := platformcore.NewScreen(40, 12)
	g.Render(s)

	assert.True(t, strings.HasPrefix(s.Row(0), " Cubes | A | Level 1/2 | Goals 0/1"))

	// Board is 10x3 centered in rows 2..10, so the grid starts at (16, 6).
	assert.Equal(t, platformcore.Cell{Rune: '█', Color: platformcore.ColorGreen}, s.GetCell(16, 6))
	assert.Equal(t, platformcore.Cell{Rune: '█', Color: platformcore.ColorGreen}, s.GetCell(17, 6))
	assert.Equal(t, platformcore.Cell{Rune: 'x', Color: platformcore.ColorYellow}, s.GetCell(22, 6))
	assert.Equal(t, '┌', s.Get(15, 5))

	small := platformcore.NewScreen(30, 4)
	g.Render(small)
	assert.Contains(t, small.String(), "Window too small")
}

func TestRegistryCreatesConfiguredGame(t *testing.T) {
	Configure(WithLevels([]levels.Level{corridor("only", 1)}))
	defer Configure()

	game, err := registry.Create(ID)
	require.NoError(t, err)
	g, ok := game.(*Game)
	require.True(t, ok)
	require.Len(t, g.Levels(), 1)

	Configure()
	game, err = registry.Create(ID)
	require.NoError(t, err)
	assert.Len(t, game.(*Game).Levels(), 6, "built-in levels by default")
}
