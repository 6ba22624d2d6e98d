package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/cube-arcade/internal/games/cubes/core"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "cubes.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg := DefaultCubesConfig()
	require.NoError(t, yaml.Unmarshal(defaultCubesYAML, &cfg))
	assert.Equal(t, DefaultCubesConfig(), cfg)
	assert.NoError(t, Validate(cfg))
}

func TestLoadCustomPartialFile(t *testing.T) {
	p := writeConfig(t, `
engine:
  player: blue
timing:
  step_frames: 30
levels:
  dir: ./levels
  watch: true
`)

	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, core.Blue, cfg.PlayerKind())
	assert.Equal(t, 30, cfg.Timing.StepFrames)
	assert.Equal(t, 4, cfg.Timing.RemakeFrames, "unset keys keep their defaults")
	assert.Equal(t, "./levels", cfg.Levels.Dir)
	assert.True(t, cfg.Levels.Watch)
	assert.Equal(t, DefaultCubesConfig().Storage, cfg.Storage)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"unknown player", "engine:\n  player: purple\n", "Engine.Player"},
		{"white player", "engine:\n  player: white\n", "Engine.Player"},
		{"zero step", "timing:\n  step_frames: 0\n  remake_frames: 0\n", "Timing.StepFrames"},
		{"remake longer than step", "timing:\n  step_frames: 4\n  remake_frames: 5\n", "Timing.RemakeFrames"},
		{"empty db", "storage:\n  db: \"\"\n", "Storage.DB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config")

	_, err = Load(writeConfig(t, "engine: [unclosed"))
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestPlayerKindFallsBackToGreen(t *testing.T) {
	cfg := DefaultCubesConfig()
	cfg.Engine.Player = "R"
	assert.Equal(t, core.Red, cfg.PlayerKind())

	cfg.Engine.Player = "nope"
	assert.Equal(t, core.Green, cfg.PlayerKind())
}

func TestPace(t *testing.T) {
	tests := []struct {
		name         string
		step, remake int
	}{
		{"relaxed", 20, 6},
		{"normal", 12, 4},
		{"fast", 6, 2},
		{"", 12, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pace, err := ParsePace(tt.name)
			require.NoError(t, err)

			cfg := DefaultCubesConfig()
			ApplyPace(&cfg, pace)
			assert.Equal(t, tt.step, cfg.Timing.StepFrames)
			assert.Equal(t, tt.remake, cfg.Timing.RemakeFrames)
			assert.NoError(t, Validate(cfg))
		})
	}

	_, err := ParsePace("ludicrous")
	assert.Error(t, err)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandHome("~/.cubes/cubes.db")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".cubes", "cubes.db"), got)

	got, err = ExpandHome("/tmp/x.db")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.db", got)
}
