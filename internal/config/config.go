// Package config provides YAML-based configuration loading for the cubes
// command and its game.
package config

import (
	"github.com/vovakirdan/cube-arcade/internal/games/cubes/core"
)

// CubesConfig contains all configuration for cubes.
type CubesConfig struct {
	Engine  EngineConfig  `yaml:"engine"`
	Timing  TimingConfig  `yaml:"timing"`
	Levels  LevelsConfig  `yaml:"levels"`
	Storage StorageConfig `yaml:"storage"`
	Serve   ServeConfig   `yaml:"serve"`
	Replay  ReplayConfig  `yaml:"replay"`
}

// EngineConfig defines rule engine parameters.
type EngineConfig struct {
	Player string `yaml:"player" validate:"required,kind"` // kind steered by the player
}

// TimingConfig defines how frames map to engine ticks.
type TimingConfig struct {
	StepFrames   int `yaml:"step_frames" validate:"gte=1,lte=600"`                // frames between ticks
	RemakeFrames int `yaml:"remake_frames" validate:"gte=0,ltefield=StepFrames"` // frames an idle tick stays correctable
}

// LevelsConfig defines where levels come from.
type LevelsConfig struct {
	Dir   string `yaml:"dir"`   // empty means the built-in levels
	Watch bool   `yaml:"watch"` // reload edited level files while playing
}

// StorageConfig defines the run database.
type StorageConfig struct {
	DB string `yaml:"db" validate:"required"`
}

// ServeConfig defines the SSH server and its metrics endpoint.
type ServeConfig struct {
	Addr        string `yaml:"addr" validate:"required"`
	MetricsAddr string `yaml:"metrics_addr"` // empty disables metrics
	HostKey     string `yaml:"host_key" validate:"required"`
}

// ReplayConfig defines where recordings are written.
type ReplayConfig struct {
	Dir string `yaml:"dir"`
}

// PlayerKind returns the configured player kind.
func (c CubesConfig) PlayerKind() core.Kind {
	k, err := core.ParseKind(c.Engine.Player)
	if err != nil {
		return core.Green
	}
	return k
}
