// Package cubes provides the Cubes puzzle game for the arcade platform.
//
// The game drives the deterministic engine in the core subpackage on a fixed
// frame timer: the engine commits one tick every few frames with whatever
// direction the player pressed, and a press that arrives shortly after an
// idle tick corrects that tick instead of waiting for the next one.
package cubes

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	platformcore "github.com/vovakirdan/cube-arcade/internal/core"
	"github.com/vovakirdan/cube-arcade/internal/games/cubes/core"
	"github.com/vovakirdan/cube-arcade/internal/games/cubes/levels"
	"github.com/vovakirdan/cube-arcade/internal/registry"
	"github.com/vovakirdan/cube-arcade/internal/replay"
)

// ID is the registry id of the game.
const ID = "cubes"

func init() {
	registry.Register(ID, func() registry.Game {
		return New(configured()...)
	})
}

// Game implements the Cubes puzzle game.
type Game struct {
	// configuration
	levels       []levels.Level
	start        string
	player       core.Kind
	stepFrames   int
	remakeFrames int
	recorder     Recorder
	observer     Observer
	logger       *log.Logger

	// current level
	index int
	state *core.State

	// timing
	frame      int           // frames since the last commit
	pending    core.Movement // input queued for the next commit
	idleCommit bool          // the last commit had no input and may be remade

	// status
	ticks    int
	moves    int
	solved   bool
	gameOver bool
	paused   bool
	stuck    bool
	events   []platformcore.Event

	screenW int
	screenH int
}

// New creates a new game. Without WithLevels it plays the built-in levels.
func New(opts ...Option) *Game {
	g := &Game{
		player:       core.Green,
		stepFrames:   DefaultStepFrames,
		remakeFrames: DefaultRemakeFrames,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.levels == nil {
		//nolint:errcheck // Built-in levels are checked by tests
		g.levels, _ = levels.Builtin().LoadAll()
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	return g
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Cubes"
}

// Levels returns the levels in play order.
func (g *Game) Levels() []levels.Level {
	return g.levels
}

// Level returns the level being played, if any.
func (g *Game) Level() (levels.Level, bool) {
	if g.index < 0 || g.index >= len(g.levels) {
		return levels.Level{}, false
	}
	return g.levels[g.index], true
}

// Engine returns the engine state of the current level, or nil.
func (g *Game) Engine() *core.State {
	return g.state
}

// Reset starts over from the start level.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.gameOver = false
	g.paused = false
	g.events = nil

	g.index = 0
	for i, lvl := range g.levels {
		if lvl.ID == g.start {
			g.index = i
			break
		}
	}
	g.loadLevel()
}

// loadLevel builds a fresh engine state for the level at index.
func (g *Game) loadLevel() {
	g.frame = 0
	g.pending = core.Idle
	g.idleCommit = false
	g.ticks = 0
	g.moves = 0
	g.solved = false
	g.stuck = false

	lvl, ok := g.Level()
	if !ok {
		g.state = nil
		return
	}
	g.state = lvl.NewState(core.WithPlayer(g.player))
	g.stuck = !g.hasPlayer()
	g.emit(platformcore.EventLevelStarted)
	g.logger.Debug("level started", "id", lvl.ID, "title", lvl.Title)
}

// Reload replaces a level with a new version of the same id. When it is the
// level being played, the level restarts. It reports whether the id is known.
func (g *Game) Reload(lvl levels.Level) bool {
	for i := range g.levels {
		if g.levels[i].ID != lvl.ID {
			continue
		}
		g.levels[i] = lvl
		if i == g.index && !g.gameOver {
			g.loadLevel()
			g.emit(platformcore.EventLevelReloaded)
			g.logger.Info("level reloaded", "id", lvl.ID)
		}
		return true
	}
	return false
}

// Step advances the game by one frame.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	events := g.events
	g.events = nil
	result := func() platformcore.StepResult {
		out := append(events, g.events...)
		g.events = nil
		return platformcore.StepResult{State: g.State(), Events: out}
	}

	if g.state == nil {
		return result()
	}

	if in.Has(platformcore.ActionRestart) {
		if g.gameOver {
			g.gameOver = false
			g.index = 0
		}
		g.paused = false
		g.loadLevel()
		return result()
	}

	if g.gameOver {
		return result()
	}

	if in.Has(platformcore.ActionPause) && !g.solved {
		g.paused = !g.paused
	}
	if g.paused {
		return result()
	}

	if g.solved {
		if in.Has(platformcore.ActionConfirm) {
			g.index++
			g.loadLevel()
		}
		return result()
	}

	if m, ok := direction(in); ok {
		g.input(m)
	}

	g.frame++
	if g.frame >= g.stepFrames {
		g.commit()
	}
	return result()
}

// direction returns the movement of the latest direction key in the frame.
func direction(in platformcore.InputFrame) (core.Movement, bool) {
	a, ok := in.Last(platformcore.ActionLeft, platformcore.ActionDown, platformcore.ActionUp, platformcore.ActionRight)
	if !ok {
		return core.Idle, false
	}
	switch a {
	case platformcore.ActionLeft:
		return core.Left, true
	case platformcore.ActionDown:
		return core.Down, true
	case platformcore.ActionUp:
		return core.Up, true
	default:
		return core.Right, true
	}
}

// input either corrects the last idle tick or queues m for the next one.
func (g *Game) input(m core.Movement) {
	if g.idleCommit && g.frame < g.remakeFrames {
		g.remake(m)
		return
	}
	g.pending = m
}

func (g *Game) commit() {
	m := g.pending
	g.pending = core.Idle
	g.frame = 0

	start := time.Now()
	g.state.Commit(m)
	elapsed := time.Since(start)

	g.ticks++
	if m != core.Idle {
		g.moves++
	}
	g.idleCommit = m == core.Idle
	g.afterTick(m, false, elapsed)
}

func (g *Game) remake(m core.Movement) {
	start := time.Now()
	g.state.Remake(m)
	elapsed := time.Since(start)

	g.moves++
	g.idleCommit = false
	g.afterTick(m, true, elapsed)
}

func (g *Game) afterTick(m core.Movement, remade bool, elapsed time.Duration) {
	lvl, _ := g.Level()

	if g.observer != nil {
		g.observer.TickCommitted(lvl.ID, g.state.Report(), elapsed)
	}
	if g.recorder != nil {
		err := g.recorder.Record(replay.Record{
			Tick:   g.ticks,
			Level:  lvl.ID,
			Input:  m.String(),
			Remake: remade,
			Digest: g.state.Snapshot().Digest(),
		})
		if err != nil {
			g.logger.Error("cannot record tick", "err", err)
			g.recorder = nil
		}
	}

	g.stuck = !g.hasPlayer()
	if !g.state.Solved() {
		return
	}

	g.solved = true
	g.emit(platformcore.EventLevelSolved)
	if g.observer != nil {
		g.observer.LevelSolved(lvl.ID)
	}
	g.logger.Info("level solved", "id", lvl.ID, "ticks", g.ticks, "moves", g.moves)

	if g.index == len(g.levels)-1 {
		g.gameOver = true
		g.emit(platformcore.EventGameOver)
	}
}

// hasPlayer reports whether any cube of the player's kind remains.
func (g *Game) hasPlayer() bool {
	for _, u := range g.state.Snapshot().Active() {
		if u.Kind == g.player {
			return true
		}
	}
	return false
}

func (g *Game) emit(e platformcore.Event) {
	g.events = append(g.events, e)
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	lvl, _ := g.Level()
	return platformcore.GameState{
		Score:    g.score(),
		GameOver: g.gameOver,
		Paused:   g.paused,
		Level:    lvl.ID,
		Ticks:    g.ticks,
		Moves:    g.moves,
		Solved:   g.solved,
	}
}

// score counts solved levels, the current one included once solved.
func (g *Game) score() int {
	if g.solved {
		return g.index + 1
	}
	return g.index
}
