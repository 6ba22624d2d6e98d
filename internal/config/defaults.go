package config

import (
	_ "embed"
)

//go:embed defaults/cubes.yaml
var defaultCubesYAML []byte

// DefaultCubesConfig returns the default cubes configuration.
func DefaultCubesConfig() CubesConfig {
	return CubesConfig{
		Engine: EngineConfig{
			Player: "green",
		},
		Timing: TimingConfig{
			StepFrames:   12,
			RemakeFrames: 4,
		},
		Storage: StorageConfig{
			DB: "~/.cubes/cubes.db",
		},
		Serve: ServeConfig{
			Addr:        ":2222",
			MetricsAddr: ":9090",
			HostKey:     ".ssh/cubes_ed25519",
		},
		Replay: ReplayConfig{
			Dir: "~/.cubes/replays",
		},
	}
}
