package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/cube-arcade/internal/config"
	"github.com/vovakirdan/cube-arcade/internal/games/cubes/levels"
	"github.com/vovakirdan/cube-arcade/internal/replay"
)

func TestLevelHelpers(t *testing.T) {
	list := []levels.Level{{ID: "a"}, {ID: "b"}}

	assert.True(t, hasLevel(list, "b"))
	assert.False(t, hasLevel(list, "c"))
	assert.Equal(t, "a", firstLevel(list, ""))
	assert.Equal(t, "b", firstLevel(list, "b"))
	assert.Equal(t, "", firstLevel(nil, ""))
}

func TestOpenRecordingUsesReplayDir(t *testing.T) {
	cfg := config.DefaultCubesConfig()
	cfg.Replay.Dir = t.TempDir()

	rec, err := openRecording("session.jsonl.zst", cfg, "01-first-steps")
	require.NoError(t, err)
	require.NoError(t, rec.Close())

	header, records, err := replay.Open(filepath.Join(cfg.Replay.Dir, "session.jsonl.zst"))
	require.NoError(t, err)
	assert.Equal(t, "01-first-steps", header.Level)
	assert.Empty(t, records)

	explicit := filepath.Join(t.TempDir(), "sub", "mine.jsonl.zst")
	rec, err = openRecording(explicit, cfg, "02-corridor")
	require.NoError(t, err)
	require.NoError(t, rec.Record(replay.Record{Tick: 1, Level: "02-corridor", Input: "right"}))
	require.NoError(t, rec.Close())

	header, records, err = replay.Open(explicit)
	require.NoError(t, err)
	assert.Equal(t, "02-corridor", header.Level)
	assert.Equal(t, "green", header.Player)
	assert.Len(t, records, 1)
}

func TestLevelDirPrefersFlag(t *testing.T) {
	appConfig = config.DefaultCubesConfig()
	appConfig.Levels.Dir = "/from/config"

	dir, err := levelDir("/from/flag")
	require.NoError(t, err)
	assert.Equal(t, "/from/flag", dir)

	dir, err = levelDir("")
	require.NoError(t, err)
	assert.Equal(t, "/from/config", dir)
}
