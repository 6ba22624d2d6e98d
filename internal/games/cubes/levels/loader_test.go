package levels

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/cube-arcade/internal/games/cubes/core"
	"github.com/vovakirdan/cube-arcade/internal/games/cubes/levels/formats"
)

const tinyLevel = `
[info]
title = "tiny"

[map]
raw = "G x"
`

func writeLevel(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestBuiltinLevels(t *testing.T) {
	all, err := Builtin().LoadAll()
	require.NoError(t, err)

	ids := make([]string, len(all))
	for i, lvl := range all {
		ids[i] = lvl.ID
		assert.NotEmpty(t, lvl.Title, lvl.ID)
		assert.Positive(t, lvl.Goals(), lvl.ID)
	}
	assert.Equal(t, []string{
		"01-first-steps", "02-corridor", "03-absorb", "04-patrol", "05-shuttle", "06-block",
	}, ids)

	failures, err := Builtin().Check()
	require.NoError(t, err)
	assert.Empty(t, failures)
}

func TestBuiltinFirstLevelIsSolvable(t *testing.T) {
	lvl, err := Builtin().LoadByID("01-first-steps")
	require.NoError(t, err)

	s := lvl.NewState()
	for i := 0; i < 3; i++ {
		s.Commit(core.Right)
		assert.False(t, s.Solved())
	}
	s.Commit(core.Right)
	assert.True(t, s.Solved())
}

func TestLoaderSortsAndSkipsInvalid(t *testing.T) {
	dir := t.TempDir()
	writeLevel(t, dir, "b.toml", tinyLevel)
	writeLevel(t, dir, "nested/a.yaml", "info:\n  title: a\nmap:\n  raw: G x\n")
	writeLevel(t, dir, "c.toml", "[info]\ntitle = \"broken\"\n[map]\nraw = \"G?\"\n")
	writeLevel(t, dir, "notes.txt", "ignored")

	l := NewLoader(dir)
	ids, err := l.ListIDs()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)

	failures, err := l.Check()
	require.NoError(t, err)
	require.Len(t, failures, 1)
	assert.Equal(t, filepath.Join(dir, "c.toml"), failures[0].Path)

	var pe formats.ParseError
	require.True(t, errors.As(failures[0], &pe))
	assert.Equal(t, formats.CodeInvalidMarker, pe.Code)
}

func TestLoaderLoadByID(t *testing.T) {
	dir := t.TempDir()
	writeLevel(t, dir, "tiny.toml", tinyLevel)
	l := NewLoader(dir)

	lvl, err := l.LoadByID("tiny")
	require.NoError(t, err)
	assert.Equal(t, "tiny", lvl.Title)
	assert.Equal(t, filepath.Join(dir, "tiny.toml"), lvl.FilePath)
	assert.Equal(t, core.Size{Width: 3, Height: 1}, lvl.Seed.Size)

	_, err = l.LoadByID("missing")
	assert.ErrorIs(t, err, ErrLevelNotFound)
}

func TestLoaderLoadFile(t *testing.T) {
	dir := t.TempDir()
	p := writeLevel(t, dir, "tiny.toml", tinyLevel)

	fromRoot, err := NewLoader(dir).LoadFile("tiny.toml")
	require.NoError(t, err)
	fromDisk, err := Builtin().LoadFile(p)
	require.NoError(t, err)

	assert.Equal(t, fromRoot.Seed, fromDisk.Seed)
	assert.Equal(t, "tiny", fromDisk.ID)
}

func TestOpen(t *testing.T) {
	assert.Equal(t, "", Open("").Root)
	assert.Equal(t, "levels", Open("levels").Root)
}

func TestWatchReloadsChangedLevel(t *testing.T) {
	dir := t.TempDir()
	p := writeLevel(t, dir, "tiny.toml", tinyLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu       sync.Mutex
		reloaded []Level
	)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, dir, 20*time.Millisecond, func(lvl Level, err error) {
			if err != nil {
				return
			}
			mu.Lock()
			reloaded = append(reloaded, lvl)
			mu.Unlock()
		})
	}()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(p, []byte(`
[info]
title = "edited"

[map]
raw = "G  x"
`), 0o644))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(reloaded) > 0 && reloaded[len(reloaded)-1].Title == "edited"
	}, 3*time.Second, 20*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}
