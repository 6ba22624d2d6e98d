package cubes

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cube-arcade/internal/games/cubes/core"
	"github.com/vovakirdan/cube-arcade/internal/games/cubes/levels"
	"github.com/vovakirdan/cube-arcade/internal/replay"
)

// Default frame counts at 60 frames per second.
const (
	DefaultStepFrames   = 12 // five engine ticks per second
	DefaultRemakeFrames = 4
)

// Observer receives engine activity, typically to export metrics.
type Observer interface {
	TickCommitted(level string, r core.Report, elapsed time.Duration)
	LevelSolved(level string)
}

// Recorder receives one record per committed or remade tick.
type Recorder interface {
	Record(rec replay.Record) error
}

// Option configures a Game.
type Option func(*Game)

// WithLevels sets the levels to play, in order.
func WithLevels(list []levels.Level) Option {
	return func(g *Game) {
		g.levels = make([]levels.Level, len(list))
		copy(g.levels, list)
	}
}

// WithStartLevel starts at the level with the given id instead of the first.
func WithStartLevel(id string) Option {
	return func(g *Game) {
		g.start = id
	}
}

// WithPlayer sets the kind steered by the player.
func WithPlayer(k core.Kind) Option {
	return func(g *Game) {
		g.player = k
	}
}

// WithTiming sets how many frames pass between engine ticks and how many
// frames after an idle tick an input still corrects it. Non-positive step
// values keep the default.
func WithTiming(stepFrames, remakeFrames int) Option {
	return func(g *Game) {
		if stepFrames > 0 {
			g.stepFrames = stepFrames
		}
		if remakeFrames >= 0 {
			g.remakeFrames = remakeFrames
		}
	}
}

// WithRecorder records every tick.
func WithRecorder(r Recorder) Option {
	return func(g *Game) {
		g.recorder = r
	}
}

// WithObserver reports engine activity to o.
func WithObserver(o Observer) Option {
	return func(g *Game) {
		g.observer = o
	}
}

// WithLogger sets the logger used for level lifecycle messages.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		g.logger = l
	}
}

var (
	defaultsMu sync.RWMutex
	defaults   []Option
)

// Configure sets the options applied to games created through the registry.
func Configure(opts ...Option) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	defaults = append([]Option(nil), opts...)
}

func configured() []Option {
	defaultsMu.RLock()
	defer defaultsMu.RUnlock()
	return append([]Option(nil), defaults...)
}
